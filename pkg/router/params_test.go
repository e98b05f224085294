package router

import (
	"testing"
)

func TestParamsGet(t *testing.T) {
	params := Params{
		"id":   paramValue("42"),
		"slug": catchAllValue([]string{"a", "b"}),
	}

	if got := params.Get("id"); got != "42" {
		t.Errorf("Get(%q) = %q, want %q", "id", got, "42")
	}
	if got := params.Get("slug"); got != "a/b" {
		t.Errorf("Get(%q) = %q, want %q", "slug", got, "a/b")
	}
	if got := params.Get("missing"); got != "" {
		t.Errorf("Get(%q) = %q, want empty", "missing", got)
	}
}

func TestParamsGetAll(t *testing.T) {
	params := Params{
		"id":    paramValue("42"),
		"slug":  catchAllValue([]string{"a", "b"}),
		"empty": catchAllValue(nil),
	}

	if got := params.GetAll("missing"); got != nil {
		t.Errorf("GetAll(%q) = %v, want nil", "missing", got)
	}

	got := params.GetAll("empty")
	if got == nil {
		t.Error("GetAll on an empty catch-all should be non-nil")
	}
	if len(got) != 0 {
		t.Errorf("GetAll(%q) = %v, want empty", "empty", got)
	}

	all := params.GetAll("slug")
	if len(all) != 2 || all[0] != "a" || all[1] != "b" {
		t.Errorf("GetAll(%q) = %v, want [a b]", "slug", all)
	}

	// The returned slice is a copy.
	all[0] = "mutated"
	if again := params.GetAll("slug"); again[0] != "a" {
		t.Error("GetAll should return a copy, not the internal slice")
	}
}

func TestParamsHas(t *testing.T) {
	params := Params{"id": paramValue("42")}
	if !params.Has("id") {
		t.Error("Has(id) = false, want true")
	}
	if params.Has("missing") {
		t.Error("Has(missing) = true, want false")
	}
}

func TestParseQuery(t *testing.T) {
	q := ParseQuery("?tag=a&tag=b&page=2")
	if got := q.Get("page"); got != "2" {
		t.Errorf("Get(%q) = %q, want %q", "page", got, "2")
	}
	tags := q["tag"]
	if len(tags) != 2 || tags[0] != "a" || tags[1] != "b" {
		t.Errorf("q[%q] = %v, want [a b]", "tag", tags)
	}

	// Leading ? is optional; empty search yields empty values.
	if got := ParseQuery("page=3").Get("page"); got != "3" {
		t.Errorf("Get(%q) = %q, want %q", "page", got, "3")
	}
	if got := ParseQuery(""); len(got) != 0 {
		t.Errorf("ParseQuery(\"\") = %v, want empty", got)
	}
}

func TestBind(t *testing.T) {
	type target struct {
		ID     int      `param:"id"`
		Slug   []string `param:"slug"`
		Name   string   `param:"name"`
		Active bool     `param:"active"`
	}

	params := Params{
		"id":     paramValue("42"),
		"slug":   catchAllValue([]string{"a", "b"}),
		"name":   paramValue("widget"),
		"active": paramValue("true"),
	}

	var got target
	if err := Bind(params, &got); err != nil {
		t.Fatalf("Bind() error: %v", err)
	}
	if got.ID != 42 {
		t.Errorf("ID = %d, want 42", got.ID)
	}
	if len(got.Slug) != 2 || got.Slug[0] != "a" {
		t.Errorf("Slug = %v, want [a b]", got.Slug)
	}
	if got.Name != "widget" {
		t.Errorf("Name = %q, want %q", got.Name, "widget")
	}
	if !got.Active {
		t.Error("Active = false, want true")
	}
}

func TestBindErrors(t *testing.T) {
	type target struct {
		ID int `param:"id"`
	}

	params := Params{"id": paramValue("not-a-number")}
	var got target
	if err := Bind(params, &got); err == nil {
		t.Error("Bind should fail on a non-numeric value for an int field")
	}

	if err := Bind(params, got); err == nil {
		t.Error("Bind should fail on a non-pointer target")
	}
}
