package calendar

import (
	"fmt"
	"time"
)

// Calendar is a stored calendar document: one floor calendar or active
// list for a (number, year) pair.
type Calendar struct {
	OID     string `json:"oid"` // "cal-<type>-<no>-<year>"
	No      int    `json:"no"`
	Session int    `json:"session"`
	Year    int    `json:"year"`
	Type    string `json:"type"` // "floor" | "active"

	Supplementals []*Supplemental `json:"supplementals,omitempty"`

	PublishDate  time.Time `json:"publish_date"`
	ModifiedDate time.Time `json:"modified_date"`

	DataSources []string `json:"data_sources,omitempty"`
}

// NewCalendar creates an empty calendar document.
func NewCalendar(no, session, year int, calType string) *Calendar {
	return &Calendar{
		OID:     fmt.Sprintf("cal-%s-%d-%d", calType, no, year),
		No:      no,
		Session: session,
		Year:    year,
		Type:    calType,
	}
}

// Supplemental is one release of a calendar: a set of sections and/or
// active-list sequences released together.
type Supplemental struct {
	ID             string    `json:"id"` // "<calendar-oid>-supp-<supplemental-id>"
	SupplementalID string    `json:"supplemental_id"`
	CalendarDate   time.Time `json:"calendar_date,omitempty"`
	ReleaseDate    time.Time `json:"release_date,omitempty"`

	Sections  []*Section  `json:"sections,omitempty"`
	Sequences []*Sequence `json:"sequences,omitempty"`
}

// Section groups calendar entries under a named heading
// (e.g. THIRD READING).
type Section struct {
	ID   string `json:"id"` // "<supplemental-id>-sect-<name>"
	Cd   string `json:"cd,omitempty"`
	Name string `json:"name"`
	Type string `json:"type,omitempty"`

	Entries []*Entry `json:"entries,omitempty"`
}

// Sequence is one active-list installment.
type Sequence struct {
	ID          string    `json:"id"` // "<supplemental-id>-seq-<no>"
	No          string    `json:"no"`
	ActCalDate  time.Time `json:"act_cal_date,omitempty"`
	ReleaseDate time.Time `json:"release_date,omitempty"`
	Notes       string    `json:"notes,omitempty"`

	Entries []*Entry `json:"entries,omitempty"`
}

// Entry is a single calendar number referencing a bill, and possibly the
// bill substituted for it.
type Entry struct {
	OID        string    `json:"oid"` // "<parent-id>-<no>"
	No         string    `json:"no"`
	MotionDate time.Time `json:"motion_date,omitempty"`
	BillID     string    `json:"bill_id,omitempty"`
	BillHigh   bool      `json:"bill_high,omitempty"`
	SubBillID  string    `json:"sub_bill_id,omitempty"`
}

// Published reports whether the calendar is visible downstream.
func (c *Calendar) Published() bool { return !c.PublishDate.IsZero() }

// AddDataSource records a contributing source file name, ignoring
// duplicates.
func (c *Calendar) AddDataSource(name string) {
	for _, s := range c.DataSources {
		if s == name {
			return
		}
	}
	c.DataSources = append(c.DataSources, name)
}

// FindSupplemental returns the supplemental with the given id, or nil.
func (c *Calendar) FindSupplemental(id string) *Supplemental {
	for _, s := range c.Supplementals {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// RemoveSupplemental deletes the supplemental with the given id.
func (c *Calendar) RemoveSupplemental(id string) {
	for i, s := range c.Supplementals {
		if s.ID == id {
			c.Supplementals = append(c.Supplementals[:i], c.Supplementals[i+1:]...)
			return
		}
	}
}

// RemoveSequence deletes the sequence with the given id from whichever
// supplemental holds it.
func (c *Calendar) RemoveSequence(id string) {
	for _, supp := range c.Supplementals {
		for i, seq := range supp.Sequences {
			if seq.ID == id {
				supp.Sequences = append(supp.Sequences[:i], supp.Sequences[i+1:]...)
				return
			}
		}
	}
}
