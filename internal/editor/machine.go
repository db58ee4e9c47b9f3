// Package editor implements the interactive cell edit state machine: select a
// cell, type into a draft, then commit or cancel and move on.
package editor

import (
	"errors"
	"fmt"

	"github.com/mmynk/estimator/internal/models"
)

var (
	ErrNotEditing  = errors.New("no cell is being edited")
	ErrNotEditable = errors.New("field is not editable")
	ErrNoSuchItem  = errors.New("no such line item")
)

// State is the machine state.
type State int

const (
	Idle State = iota
	Editing
)

func (s State) String() string {
	if s == Editing {
		return "editing"
	}
	return "idle"
}

// Key is the gesture that commits a draft. It also decides where editing
// continues afterwards.
type Key int

const (
	// KeyEnter moves to the same field on the next row.
	KeyEnter Key = iota
	// KeyTab moves to the next editable field, wrapping to the next row.
	KeyTab
	// KeyBlur commits and stops editing.
	KeyBlur
)

// Committer applies committed drafts. *estimate.Sheet satisfies it.
type Committer interface {
	Items() []models.LineItem
	CommitFieldEdit(itemID string, field models.Field, raw string) (models.LineItem, error)
}

// Machine drives interactive edits of one estimate. It is the only path by
// which typed input reaches the Committer.
type Machine struct {
	sheet Committer

	state  State
	itemID string
	field  models.Field
	draft  string
	notice string
}

// New creates an idle machine.
func New(sheet Committer) *Machine {
	return &Machine{sheet: sheet}
}

func (m *Machine) State() State { return m.state }

// Cell returns the cell being edited.
func (m *Machine) Cell() (itemID string, field models.Field, ok bool) {
	return m.itemID, m.field, m.state == Editing
}

func (m *Machine) Draft() string { return m.draft }

// Notice is the transient message left by the last rejected commit. It is
// cleared by the next Type, Select, Commit or Cancel.
func (m *Machine) Notice() string { return m.notice }

// Select starts editing a cell, seeding the draft from its current value.
// Selecting while another cell is in edit commits that cell first, as a blur
// would; if that commit is rejected the machine stays on the old cell.
func (m *Machine) Select(itemID string, field models.Field) error {
	if !field.Editable() {
		return fmt.Errorf("%w: %s", ErrNotEditable, field)
	}
	if m.state == Editing {
		if _, err := m.Commit(KeyBlur); err != nil {
			return err
		}
	}

	all := m.sheet.Items()
	row := indexOf(all, itemID)
	if row < 0 {
		return fmt.Errorf("%w: %s", ErrNoSuchItem, itemID)
	}
	m.enter(all[row], field)
	return nil
}

// Type replaces the draft. The store is not touched.
func (m *Machine) Type(value string) error {
	if m.state != Editing {
		return ErrNotEditing
	}
	m.draft = value
	m.notice = ""
	return nil
}

// Cancel discards the draft and returns to Idle.
func (m *Machine) Cancel() {
	m.reset()
}

// Commit hands the draft to the Committer. On success the machine moves to
// the next cell for key, or to Idle when there is none. On rejection it stays
// on the cell with the draft intact and Notice set, and returns the error.
func (m *Machine) Commit(key Key) (models.LineItem, error) {
	if m.state != Editing {
		return models.LineItem{}, ErrNotEditing
	}

	item, err := m.sheet.CommitFieldEdit(m.itemID, m.field, m.draft)
	if err != nil {
		var rejected *models.EditRejected
		if errors.As(err, &rejected) {
			m.notice = rejected.Reason
		} else {
			m.notice = err.Error()
		}
		return models.LineItem{}, err
	}

	m.advance(key)
	return item, nil
}

func (m *Machine) advance(key Key) {
	if key == KeyBlur {
		m.reset()
		return
	}

	all := m.sheet.Items()
	row := indexOf(all, m.itemID)
	if row < 0 {
		m.reset()
		return
	}

	field := m.field
	switch key {
	case KeyEnter:
		row++
	case KeyTab:
		cols := models.EditableColumns()
		next := columnOf(cols, field) + 1
		if next >= len(cols) {
			next = 0
			row++
		}
		field = cols[next]
	}

	if row >= len(all) {
		m.reset()
		return
	}
	m.enter(all[row], field)
}

func (m *Machine) enter(item models.LineItem, field models.Field) {
	m.state = Editing
	m.itemID = item.ID
	m.field = field
	m.draft = item.Value(field)
	m.notice = ""
}

func (m *Machine) reset() {
	*m = Machine{sheet: m.sheet}
}

func indexOf(all []models.LineItem, id string) int {
	for i, item := range all {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func columnOf(cols []models.Field, f models.Field) int {
	for i, c := range cols {
		if c == f {
			return i
		}
	}
	return -1
}
