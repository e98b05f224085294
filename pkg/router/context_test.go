package router

import (
	"context"
	"testing"
)

func TestFromContext(t *testing.T) {
	rc := &RouteContext{
		Pathname: "/users/42",
		Search:   "tab=posts",
		Params:   Params{"id": paramValue("42")},
		Query:    ParseQuery("tab=posts"),
	}
	ctx := NewContext(context.Background(), rc)

	got := FromContext(ctx)
	if got != rc {
		t.Errorf("FromContext returned %+v, want the installed context", got)
	}
	if got.Params.Get("id") != "42" {
		t.Errorf("Params.Get(%q) = %q, want %q", "id", got.Params.Get("id"), "42")
	}
}

func TestFromContextPanicsOutsideRouter(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("FromContext should panic without an installed route context")
		}
	}()
	FromContext(context.Background())
}

func TestContextAccessors(t *testing.T) {
	rc := &RouteContext{
		Pathname: "/users/42",
		Params:   Params{"id": paramValue("42")},
		Query:    ParseQuery("tab=posts"),
		Navigate: func(to string) error { return nil },
	}
	ctx := NewContext(context.Background(), rc)

	if got := ParamsFrom(ctx).Get("id"); got != "42" {
		t.Errorf("ParamsFrom(ctx).Get(%q) = %q, want %q", "id", got, "42")
	}
	if got := QueryFrom(ctx).Get("tab"); got != "posts" {
		t.Errorf("QueryFrom(ctx).Get(%q) = %q, want %q", "tab", got, "posts")
	}
	if NavigateFrom(ctx) == nil {
		t.Error("NavigateFrom(ctx) = nil, want the navigate function")
	}
}
