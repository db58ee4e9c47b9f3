package items

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/estimator/internal/models"
)

func item(id, desc string) models.LineItem {
	return models.LineItem{ID: id, EstimateID: "est-1", Description: desc, Quantity: decimal.NewFromInt(1)}
}

func ids(items []models.LineItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestStore(t *testing.T) {
	t.Run("Upsert appends new items in insertion order", func(t *testing.T) {
		s := NewStore()
		s.Upsert(item("c", "Concrete"))
		s.Upsert(item("a", "Rebar"))
		s.Upsert(item("b", "Forms"))

		if got, want := ids(s.All()), []string{"c", "a", "b"}; !equalIDs(got, want) {
			t.Errorf("All() order = %v, want %v", got, want)
		}
	})

	t.Run("Upsert replaces existing item in place", func(t *testing.T) {
		s := NewStore(item("a", "Concrete"), item("b", "Rebar"))
		s.Upsert(item("a", "Concrete 4000 psi"))

		if got, want := ids(s.All()), []string{"a", "b"}; !equalIDs(got, want) {
			t.Errorf("All() order = %v, want %v", got, want)
		}
		got, err := s.Get("a")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.Description != "Concrete 4000 psi" {
			t.Errorf("Description = %q, want %q", got.Description, "Concrete 4000 psi")
		}
	})

	t.Run("Get returns ErrNotFound for unknown id", func(t *testing.T) {
		s := NewStore()
		if _, err := s.Get("missing"); !errors.Is(err, ErrNotFound) {
			t.Errorf("Get error = %v, want ErrNotFound", err)
		}
	})

	t.Run("Remove deletes and preserves remaining order", func(t *testing.T) {
		s := NewStore(item("a", ""), item("b", ""), item("c", ""))
		if err := s.Remove("b"); err != nil {
			t.Fatalf("Remove failed: %v", err)
		}
		if got, want := ids(s.All()), []string{"a", "c"}; !equalIDs(got, want) {
			t.Errorf("All() order = %v, want %v", got, want)
		}
		if s.Has("b") {
			t.Error("expected b to be gone")
		}
		if err := s.Remove("b"); !errors.Is(err, ErrNotFound) {
			t.Errorf("second Remove error = %v, want ErrNotFound", err)
		}
	})

	t.Run("All returns a copy", func(t *testing.T) {
		s := NewStore(item("a", "Concrete"))
		all := s.All()
		all[0].Description = "changed"

		got, _ := s.Get("a")
		if got.Description != "Concrete" {
			t.Errorf("store mutated through All(): %q", got.Description)
		}
	})

	t.Run("Index and At follow iteration order", func(t *testing.T) {
		s := NewStore(item("a", ""), item("b", ""))
		if s.Index("b") != 1 {
			t.Errorf("Index(b) = %d, want 1", s.Index("b"))
		}
		if s.Index("zzz") != -1 {
			t.Errorf("Index(zzz) = %d, want -1", s.Index("zzz"))
		}
		if it, ok := s.At(0); !ok || it.ID != "a" {
			t.Errorf("At(0) = %v, %v", it.ID, ok)
		}
		if _, ok := s.At(2); ok {
			t.Error("At(2) should be out of range")
		}
		if s.Len() != 2 {
			t.Errorf("Len() = %d, want 2", s.Len())
		}
	})
}
