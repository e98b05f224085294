package router

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func waitResult(t *testing.T, results <-chan LoadResult) LoadResult {
	t.Helper()
	select {
	case res := <-results:
		return res
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a load result")
		return LoadResult{}
	}
}

func TestLoaderLoad(t *testing.T) {
	route := testRoute("/users", "users/index.go")
	results := make(chan LoadResult, 8)

	l := NewLoader(nil, testLogger())
	l.OnResult(func(res LoadResult) { results <- res })
	l.Load(context.Background(), &route)

	first := waitResult(t, results)
	if first.State != Loading {
		t.Fatalf("first state = %v, want Loading", first.State)
	}

	second := waitResult(t, results)
	if second.State != Loaded {
		t.Fatalf("second state = %v, want Loaded", second.State)
	}
	if second.Page == nil || second.Page.Render == nil {
		t.Fatal("Loaded result carries no page module")
	}
}

func TestLoaderDiscardsStaleResults(t *testing.T) {
	release := make(chan struct{})
	slow := Route{
		File:     "slow.go",
		Path:     "/slow",
		Segments: ParsePattern("/slow"),
		ImportPage: func(ctx context.Context) (*PageModule, error) {
			<-release
			return &PageModule{Render: func(rc *RouteContext) View { return "slow" }}, nil
		},
	}
	fast := testRoute("/fast", "fast.go")

	results := make(chan LoadResult, 8)
	l := NewLoader(nil, testLogger())
	l.OnResult(func(res LoadResult) { results <- res })

	l.Load(context.Background(), &slow)
	if res := waitResult(t, results); res.State != Loading || res.Route.Path != "/slow" {
		t.Fatalf("unexpected first result: %+v", res)
	}

	// The second navigation supersedes the first while its import is
	// still in flight.
	l.Load(context.Background(), &fast)
	if res := waitResult(t, results); res.State != Loading || res.Route.Path != "/fast" {
		t.Fatalf("unexpected second result: %+v", res)
	}
	if res := waitResult(t, results); res.State != Loaded || res.Route.Path != "/fast" {
		t.Fatalf("unexpected third result: %+v", res)
	}

	// Releasing the superseded import must not surface its result.
	close(release)
	select {
	case res := <-results:
		t.Fatalf("stale result surfaced: %+v", res)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestLoaderReentrantLoadFromCallback(t *testing.T) {
	firstGate := make(chan struct{})
	first := Route{
		File:     "first.go",
		Path:     "/first",
		Segments: ParsePattern("/first"),
		ImportPage: func(ctx context.Context) (*PageModule, error) {
			<-firstGate
			return &PageModule{Render: func(rc *RouteContext) View { return "first" }}, nil
		},
	}
	second := testRoute("/second", "second.go")

	results := make(chan LoadResult, 8)
	l := NewLoader(nil, testLogger())
	var once sync.Once
	l.OnResult(func(res LoadResult) {
		results <- res
		if res.Route.Path == "/first" && res.State == Loading {
			once.Do(func() { l.Load(context.Background(), &second) })
		}
	})
	l.Load(context.Background(), &first)

	if res := waitResult(t, results); res.State != Loading || res.Route.Path != "/first" {
		t.Fatalf("unexpected first result: %+v", res)
	}
	if res := waitResult(t, results); res.State != Loading || res.Route.Path != "/second" {
		t.Fatalf("unexpected second result: %+v", res)
	}
	if res := waitResult(t, results); res.State != Loaded || res.Route.Path != "/second" {
		t.Fatalf("unexpected third result: %+v", res)
	}

	// The superseded first navigation commits nothing once released.
	close(firstGate)
	select {
	case res := <-results:
		t.Fatalf("superseded result surfaced: %+v", res)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestLoaderOrderingUnderSupersede(t *testing.T) {
	for i := 0; i < 200; i++ {
		release := make(chan struct{})
		done := make(chan struct{})
		slow := Route{
			File:     "slow.go",
			Path:     "/slow",
			Segments: ParsePattern("/slow"),
			ImportPage: func(ctx context.Context) (*PageModule, error) {
				<-release
				return &PageModule{Render: func(rc *RouteContext) View { return "slow" }}, nil
			},
		}
		fast := testRoute("/fast", "fast.go")

		var mu sync.Mutex
		var seen []LoadResult
		l := NewLoader(nil, testLogger())
		l.OnResult(func(res LoadResult) {
			mu.Lock()
			seen = append(seen, res)
			mu.Unlock()
			if res.State == Loaded && res.Route.Path == "/fast" {
				close(done)
			}
		})

		l.Load(context.Background(), &slow)
		go close(release)
		l.Load(context.Background(), &fast)

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for the second navigation to settle")
		}
		time.Sleep(time.Millisecond)

		// Once a result for the newer navigation is observed, nothing of
		// the superseded one may follow.
		mu.Lock()
		fastSeen := false
		for _, res := range seen {
			if res.Route.Path == "/fast" {
				fastSeen = true
				continue
			}
			if fastSeen {
				mu.Unlock()
				t.Fatalf("superseded result delivered after a newer navigation: %+v", res)
			}
		}
		mu.Unlock()
	}
}

func TestLoaderMissingRender(t *testing.T) {
	route := Route{
		File:     "broken.go",
		Path:     "/broken",
		Segments: ParsePattern("/broken"),
		ImportPage: func(ctx context.Context) (*PageModule, error) {
			return &PageModule{}, nil
		},
	}

	results := make(chan LoadResult, 8)
	l := NewLoader(nil, testLogger())
	l.OnResult(func(res LoadResult) { results <- res })
	l.Load(context.Background(), &route)

	waitResult(t, results) // Loading
	res := waitResult(t, results)
	if res.State != LoadFailed {
		t.Fatalf("state = %v, want LoadFailed", res.State)
	}
	if !errors.Is(res.Err, ErrMissingRender) {
		t.Errorf("Err = %v, want ErrMissingRender", res.Err)
	}
}

func TestLoaderImportError(t *testing.T) {
	importErr := errors.New("chunk fetch failed")
	route := Route{
		File:     "flaky.go",
		Path:     "/flaky",
		Segments: ParsePattern("/flaky"),
		ImportPage: func(ctx context.Context) (*PageModule, error) {
			return nil, importErr
		},
	}

	results := make(chan LoadResult, 8)
	l := NewLoader(nil, testLogger())
	l.OnResult(func(res LoadResult) { results <- res })
	l.Load(context.Background(), &route)

	waitResult(t, results) // Loading
	res := waitResult(t, results)
	if res.State != LoadFailed {
		t.Fatalf("state = %v, want LoadFailed", res.State)
	}
	if !errors.Is(res.Err, importErr) {
		t.Errorf("Err = %v, want wrapped import error", res.Err)
	}
}

func layoutRoute(selector LayoutSelector) Route {
	return Route{
		File:     "page.go",
		Path:     "/page",
		Segments: ParsePattern("/page"),
		ImportPage: func(ctx context.Context) (*PageModule, error) {
			return &PageModule{
				Render: func(rc *RouteContext) View { return "page" },
				Layout: selector,
			}, nil
		},
	}
}

func TestLoaderResolvesLayout(t *testing.T) {
	layouts := LayoutManifest{
		"marketing": func(ctx context.Context) (*LayoutModule, error) {
			return &LayoutModule{
				Render: func(rc *RouteContext, children View) View { return children },
			}, nil
		},
	}
	route := layoutRoute(LayoutName("marketing"))

	results := make(chan LoadResult, 8)
	l := NewLoader(layouts, testLogger())
	l.OnResult(func(res LoadResult) { results <- res })
	l.Load(context.Background(), &route)

	waitResult(t, results) // Loading
	res := waitResult(t, results)
	if res.State != Loaded {
		t.Fatalf("state = %v, want Loaded", res.State)
	}
	if res.Layout == nil {
		t.Fatal("Loaded result carries no layout")
	}
}

func TestLoaderUnknownLayoutIsNonFatal(t *testing.T) {
	route := layoutRoute(LayoutName("missing"))

	results := make(chan LoadResult, 8)
	l := NewLoader(LayoutManifest{}, testLogger())
	l.OnResult(func(res LoadResult) { results <- res })
	l.Load(context.Background(), &route)

	waitResult(t, results) // Loading
	res := waitResult(t, results)
	if res.State != Loaded {
		t.Fatalf("state = %v, want Loaded despite the unknown layout", res.State)
	}
	if res.Layout != nil {
		t.Error("unknown layout name should resolve to no layout")
	}
}

func TestLoaderLayoutSelectorPanicMeansNoLayout(t *testing.T) {
	route := layoutRoute(LayoutFunc(func() string { panic("undecidable") }))

	results := make(chan LoadResult, 8)
	l := NewLoader(LayoutManifest{}, testLogger())
	l.OnResult(func(res LoadResult) { results <- res })
	l.Load(context.Background(), &route)

	waitResult(t, results) // Loading
	res := waitResult(t, results)
	if res.State != Loaded {
		t.Fatalf("state = %v, want Loaded", res.State)
	}
	if res.Layout != nil {
		t.Error("a failing selector should resolve to no layout")
	}
}

func TestLoaderLayoutLoaderErrorIsFatal(t *testing.T) {
	layoutErr := errors.New("layout chunk failed")
	layouts := LayoutManifest{
		"marketing": func(ctx context.Context) (*LayoutModule, error) {
			return nil, layoutErr
		},
	}
	route := layoutRoute(LayoutName("marketing"))

	results := make(chan LoadResult, 8)
	l := NewLoader(layouts, testLogger())
	l.OnResult(func(res LoadResult) { results <- res })
	l.Load(context.Background(), &route)

	waitResult(t, results) // Loading
	res := waitResult(t, results)
	if res.State != LoadFailed {
		t.Fatalf("state = %v, want LoadFailed", res.State)
	}
	if !errors.Is(res.Err, layoutErr) {
		t.Errorf("Err = %v, want wrapped layout error", res.Err)
	}
}

func TestLoadPageAppliesMeta(t *testing.T) {
	route := Route{
		File:     "about.go",
		Path:     "/about",
		Segments: ParsePattern("/about"),
		ImportPage: func(ctx context.Context) (*PageModule, error) {
			return &PageModule{
				Render: func(rc *RouteContext) View { return "about" },
				Meta:   &PageMeta{Title: "About", Description: "About us"},
			}, nil
		},
	}

	doc := NewMemoryDocument()
	page, err := LoadPage(context.Background(), &route, doc)
	if err != nil {
		t.Fatalf("LoadPage() error: %v", err)
	}
	if page == nil {
		t.Fatal("LoadPage() returned nil page")
	}
	if got := doc.Title(); got != "About" {
		t.Errorf("Title() = %q, want %q", got, "About")
	}
}

func TestLoadStateString(t *testing.T) {
	tests := []struct {
		state LoadState
		want  string
	}{
		{Loading, "loading"},
		{Loaded, "loaded"},
		{LoadFailed, "error"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", int(tt.state), got, tt.want)
		}
	}
}
