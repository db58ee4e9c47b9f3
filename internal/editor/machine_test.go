package editor

import (
	"errors"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/estimator/internal/estimate"
	"github.com/mmynk/estimator/internal/models"
)

func newSheet() *estimate.Sheet {
	row := func(id, desc, qty, price string) models.LineItem {
		item := models.NewLineItem(id, "est")
		item.Description = desc
		item.Quantity = decimal.RequireFromString(qty)
		item.UnitPrice = decimal.RequireFromString(price)
		return item
	}
	return estimate.New("est", []models.LineItem{
		row("r1", "Concrete", "10", "145"),
		row("r2", "Rebar", "2", "5"),
	})
}

func assertCell(t *testing.T, m *Machine, wantID string, wantField models.Field) {
	t.Helper()
	id, field, ok := m.Cell()
	if !ok {
		t.Fatalf("machine is %s, want editing %s.%s", m.State(), wantID, wantField)
	}
	if id != wantID || field != wantField {
		t.Errorf("cell = %s.%s, want %s.%s", id, field, wantID, wantField)
	}
}

func TestSelect(t *testing.T) {
	m := New(newSheet())
	if m.State() != Idle {
		t.Fatalf("initial state = %s", m.State())
	}

	if err := m.Select("r1", models.FieldQuantity); err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	assertCell(t, m, "r1", models.FieldQuantity)
	if m.Draft() != "10" {
		t.Errorf("Draft() = %q, want seeded 10", m.Draft())
	}

	if err := m.Select("r1", models.FieldTotalPrice); !errors.Is(err, ErrNotEditable) {
		t.Errorf("expected ErrNotEditable, got %v", err)
	}
	if err := m.Select("nope", models.FieldUnit); !errors.Is(err, ErrNoSuchItem) {
		t.Errorf("expected ErrNoSuchItem, got %v", err)
	}
}

func TestTypeDoesNotTouchStore(t *testing.T) {
	sheet := newSheet()
	before := sheet.Items()
	m := New(sheet)

	if err := m.Type("5"); !errors.Is(err, ErrNotEditing) {
		t.Errorf("Type while idle: expected ErrNotEditing, got %v", err)
	}

	m.Select("r1", models.FieldQuantity)
	m.Type("5")
	m.Type("50")
	if m.Draft() != "50" {
		t.Errorf("Draft() = %q", m.Draft())
	}
	if !reflect.DeepEqual(sheet.Items(), before) {
		t.Error("typing mutated the store")
	}

	m.Cancel()
	if m.State() != Idle {
		t.Errorf("state after cancel = %s", m.State())
	}
	if !reflect.DeepEqual(sheet.Items(), before) {
		t.Error("cancel mutated the store")
	}
}

func TestCommitNavigation(t *testing.T) {
	t.Run("enter moves down the column", func(t *testing.T) {
		sheet := newSheet()
		m := New(sheet)
		m.Select("r1", models.FieldQuantity)
		m.Type("12")

		item, err := m.Commit(KeyEnter)
		if err != nil {
			t.Fatalf("Commit failed: %v", err)
		}
		if !item.TotalPrice.Equal(decimal.NewFromInt(1740)) {
			t.Errorf("TotalPrice = %s, want 1740", item.TotalPrice)
		}
		assertCell(t, m, "r2", models.FieldQuantity)
		if m.Draft() != "2" {
			t.Errorf("Draft() = %q, want 2", m.Draft())
		}

		if _, err := m.Commit(KeyEnter); err != nil {
			t.Fatalf("Commit failed: %v", err)
		}
		if m.State() != Idle {
			t.Errorf("state after last row = %s, want idle", m.State())
		}
	})

	t.Run("tab moves across and wraps", func(t *testing.T) {
		m := New(newSheet())
		m.Select("r1", models.FieldUnitPrice)

		m.Commit(KeyTab)
		assertCell(t, m, "r1", models.FieldCategory)
		m.Commit(KeyTab)
		assertCell(t, m, "r1", models.FieldFormula)

		// totalPrice is skipped
		m.Commit(KeyTab)
		assertCell(t, m, "r1", models.FieldVendorName)

		m.Commit(KeyTab)
		assertCell(t, m, "r2", models.FieldDescription)
		if m.Draft() != "Rebar" {
			t.Errorf("Draft() = %q", m.Draft())
		}
	})

	t.Run("tab on the last cell goes idle", func(t *testing.T) {
		m := New(newSheet())
		m.Select("r2", models.FieldVendorName)
		m.Commit(KeyTab)
		if m.State() != Idle {
			t.Errorf("state = %s, want idle", m.State())
		}
	})

	t.Run("blur goes idle", func(t *testing.T) {
		m := New(newSheet())
		m.Select("r1", models.FieldDescription)
		m.Type("Footing concrete")
		item, err := m.Commit(KeyBlur)
		if err != nil {
			t.Fatalf("Commit failed: %v", err)
		}
		if item.Description != "Footing concrete" {
			t.Errorf("Description = %q", item.Description)
		}
		if m.State() != Idle {
			t.Errorf("state = %s, want idle", m.State())
		}
	})

	t.Run("commit while idle", func(t *testing.T) {
		m := New(newSheet())
		if _, err := m.Commit(KeyEnter); !errors.Is(err, ErrNotEditing) {
			t.Errorf("expected ErrNotEditing, got %v", err)
		}
	})
}

func TestRejectedCommit(t *testing.T) {
	sheet := newSheet()
	before := sheet.Items()
	m := New(sheet)

	m.Select("r2", models.FieldQuantity)
	m.Type("abc")
	_, err := m.Commit(KeyEnter)

	var rejected *models.EditRejected
	if !errors.As(err, &rejected) {
		t.Fatalf("expected EditRejected, got %v", err)
	}
	assertCell(t, m, "r2", models.FieldQuantity)
	if m.Draft() != "abc" {
		t.Errorf("Draft() = %q, want draft kept", m.Draft())
	}
	if m.Notice() != estimate.MsgInvalidNumber {
		t.Errorf("Notice() = %q", m.Notice())
	}
	if !reflect.DeepEqual(sheet.Items(), before) {
		t.Error("rejected commit mutated the store")
	}

	m.Type("3")
	if m.Notice() != "" {
		t.Errorf("Notice() = %q after typing, want cleared", m.Notice())
	}
	if _, err := m.Commit(KeyBlur); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
}

func TestSelectCommitsPreviousCell(t *testing.T) {
	sheet := newSheet()
	m := New(sheet)

	m.Select("r1", models.FieldUnit)
	m.Type("cy")
	if err := m.Select("r2", models.FieldUnit); err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	item, _ := sheet.Item("r1")
	if item.Unit != "cy" {
		t.Errorf("r1.Unit = %q, want cy", item.Unit)
	}
	assertCell(t, m, "r2", models.FieldUnit)

	m.Select("r2", models.FieldQuantity)
	m.Type("many")
	if err := m.Select("r1", models.FieldQuantity); err == nil {
		t.Error("expected rejected commit to block selection")
	}
	assertCell(t, m, "r2", models.FieldQuantity)
}
