package router

import "testing"

func TestApplyMeta(t *testing.T) {
	doc := NewMemoryDocument()

	ApplyMeta(doc, &PageMeta{Title: "Users", Description: "All users"})

	if got := doc.Title(); got != "Users" {
		t.Errorf("Title() = %q, want %q", got, "Users")
	}
	desc, ok := doc.Description()
	if !ok {
		t.Fatal("Description() reported no description")
	}
	if desc != "All users" {
		t.Errorf("Description() = %q, want %q", desc, "All users")
	}
}

func TestApplyMetaUpsertsDescription(t *testing.T) {
	doc := NewMemoryDocument()

	ApplyMeta(doc, &PageMeta{Description: "first"})
	ApplyMeta(doc, &PageMeta{Description: "second"})

	desc, _ := doc.Description()
	if desc != "second" {
		t.Errorf("Description() = %q, want %q", desc, "second")
	}

	// The description is updated in place, never duplicated.
	if got := doc.DescriptionWrites(); got != 2 {
		t.Errorf("DescriptionWrites() = %d, want 2", got)
	}
}

func TestApplyMetaIdempotent(t *testing.T) {
	doc := NewMemoryDocument()
	meta := &PageMeta{Title: "Home", Description: "Welcome"}

	ApplyMeta(doc, meta)
	ApplyMeta(doc, meta)

	if got := doc.Title(); got != "Home" {
		t.Errorf("Title() = %q, want %q", got, "Home")
	}
	desc, _ := doc.Description()
	if desc != "Welcome" {
		t.Errorf("Description() = %q, want %q", desc, "Welcome")
	}
}

func TestApplyMetaNil(t *testing.T) {
	doc := NewMemoryDocument()
	doc.SetTitle("kept")

	// Nil meta and nil document are both no-ops.
	ApplyMeta(doc, nil)
	ApplyMeta(nil, &PageMeta{Title: "ignored"})

	if got := doc.Title(); got != "kept" {
		t.Errorf("Title() = %q, want %q", got, "kept")
	}
}

func TestApplyMetaEmptyFields(t *testing.T) {
	doc := NewMemoryDocument()
	doc.SetTitle("existing")

	// Empty fields leave the document untouched.
	ApplyMeta(doc, &PageMeta{})

	if got := doc.Title(); got != "existing" {
		t.Errorf("Title() = %q, want %q", got, "existing")
	}
	if _, ok := doc.Description(); ok {
		t.Error("Description() should report absent for an empty meta")
	}
}
