package calendar

import (
	"context"
	"encoding/xml"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/roach88/legisync/internal/process"
	"github.com/roach88/legisync/internal/sobi"
	"github.com/roach88/legisync/internal/store"
)

// Feed date layouts. Release timestamps arrive as separate date and time
// strings that are concatenated before parsing.
const (
	calDateLayout     = "2006-01-02"
	releaseDateLayout = "2006-01-0215:04:05"
)

// Processor folds calendar XML files into calendar documents, resolving
// referenced bills through the bill pipeline.
type Processor struct {
	store     *store.Store
	changelog *store.Changelog
	bills     *process.Processor
}

// New creates a calendar processor sharing the bill pipeline's store and
// changelog.
func New(st *store.Store, cl *store.Changelog, bills *process.Processor) *Processor {
	return &Processor{store: st, changelog: cl, bills: bills}
}

// Key builds the storage key for a calendar document.
func Key(c *Calendar) string {
	return fmt.Sprintf("%d/%s/%s", c.Year, store.KindCalendar, c.OID)
}

// GetCalendar loads a stored calendar by key. Returns (nil, nil) when the
// calendar does not exist.
func GetCalendar(ctx context.Context, st *store.Store, key string) (*Calendar, error) {
	var cal Calendar
	found, err := st.GetDocument(ctx, key, &cal)
	if err != nil || !found {
		return nil, err
	}
	return &cal, nil
}

// SetCalendar upserts a calendar document.
func SetCalendar(ctx context.Context, st *store.Store, cal *Calendar) error {
	return st.SetDocument(ctx, Key(cal), store.KindCalendar, cal.Session, cal)
}

// removeTarget identifies the sub-document to drop when a calendar element
// arrives with action="remove". The most specific object parsed wins: a
// sequence if one was present, otherwise the supplemental itself.
type removeTarget struct {
	kind string // "supplemental" | "sequence"
	id   string
}

// ProcessFile applies one calendar XML file to the store. Calendar files
// share the SOBI naming contract; a file whose name does not parse is still
// processed, just without an effective date on its documents.
func (p *Processor) ProcessFile(ctx context.Context, path string) error {
	name := filepath.Base(path)

	date, err := sobi.ParseFileDate(name)
	if err != nil {
		slog.Error("calendar file date unparsable", "file", name, "error", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	var feed xmlSenateData
	if err := xml.Unmarshal(data, &feed); err != nil {
		return fmt.Errorf("unmarshal %s: %w", name, err)
	}

	p.changelog.SetContext(name, date)

	for _, xc := range feed.Calendars {
		if err := p.processCalendar(ctx, xc, "floor", name, date); err != nil {
			slog.Error("calendar element failed", "file", name, "no", xc.No, "error", err)
		}
	}
	for _, xc := range feed.ActiveCalendars {
		if err := p.processCalendar(ctx, xc, "active", name, date); err != nil {
			slog.Error("active list element failed", "file", name, "no", xc.No, "error", err)
		}
	}
	return nil
}

func (p *Processor) processCalendar(ctx context.Context, xc xmlCalendar, calType, sourceFile string, date time.Time) error {
	cal, err := p.getCalendar(ctx, calType, xc)
	if err != nil {
		return err
	}
	if xc.Supplemental == nil {
		return fmt.Errorf("calendar %s has no supplemental", cal.OID)
	}

	supp, remove, err := p.parseSupplemental(ctx, cal, xc.Supplemental, date)
	if err != nil {
		return err
	}
	if (len(supp.Sequences) > 0 || len(supp.Sections) > 0) && cal.FindSupplemental(supp.ID) == nil {
		cal.Supplementals = append(cal.Supplementals, supp)
	}

	if xc.Action == "remove" && remove != nil {
		slog.Info("removing calendar sub-document", "kind", remove.kind, "id", remove.id)
		switch remove.kind {
		case "supplemental":
			cal.RemoveSupplemental(remove.id)
		case "sequence":
			cal.RemoveSequence(remove.id)
		}
	}

	cal.AddDataSource(sourceFile)
	cal.ModifiedDate = date
	if cal.PublishDate.IsZero() {
		cal.PublishDate = date
	}

	if err := SetCalendar(ctx, p.store, cal); err != nil {
		return err
	}
	return p.changelog.Record(ctx, Key(cal))
}

// getCalendar loads the existing calendar for (type, no, year) or creates
// an empty one.
func (p *Processor) getCalendar(ctx context.Context, calType string, xc xmlCalendar) (*Calendar, error) {
	no, err := strconv.Atoi(xc.No)
	if err != nil {
		return nil, fmt.Errorf("calendar no %q: %w", xc.No, err)
	}
	year, err := strconv.Atoi(xc.Year)
	if err != nil {
		return nil, fmt.Errorf("calendar year %q: %w", xc.Year, err)
	}
	session, err := strconv.Atoi(xc.SessYr)
	if err != nil {
		return nil, fmt.Errorf("calendar sessyr %q: %w", xc.SessYr, err)
	}

	fresh := NewCalendar(no, session, year, calType)
	cal, err := GetCalendar(ctx, p.store, Key(fresh))
	if err != nil {
		return nil, err
	}
	if cal == nil {
		return fresh, nil
	}
	return cal, nil
}

func (p *Processor) parseSupplemental(ctx context.Context, cal *Calendar, x *xmlSupplemental, date time.Time) (*Supplemental, *removeTarget, error) {
	id := cal.OID + "-supp-" + x.ID

	supp := cal.FindSupplemental(id)
	if supp == nil {
		supp = &Supplemental{ID: id, SupplementalID: x.ID}
	}
	remove := &removeTarget{kind: "supplemental", id: id}

	if x.CalDate != "" {
		if calDate, err := time.Parse(calDateLayout, x.CalDate); err != nil {
			slog.Error("unparsable caldate", "supplemental", id, "value", x.CalDate)
		} else {
			supp.CalendarDate = calDate
		}
	}
	if x.ReleaseDate != "" && x.ReleaseTime != "" {
		if rel, err := time.Parse(releaseDateLayout, x.ReleaseDate+x.ReleaseTime); err != nil {
			slog.Error("unparsable release date", "supplemental", id, "value", x.ReleaseDate+x.ReleaseTime)
		} else {
			supp.ReleaseDate = rel
		}
	}

	if x.Sections != nil {
		for i := range x.Sections.Section {
			section := p.parseSection(ctx, supp, &x.Sections.Section[i], cal.Session, date)
			if findSection(supp.Sections, section.ID) == nil {
				supp.Sections = append(supp.Sections, section)
			}
		}
	}

	if x.Sequence != nil {
		seq := p.parseSequence(ctx, supp, x.Sequence, cal.Session, date)
		if findSequence(supp.Sequences, seq.ID) == nil {
			supp.Sequences = append(supp.Sequences, seq)
		}
		remove = &removeTarget{kind: "sequence", id: seq.ID}
	}

	return supp, remove, nil
}

// parseSection builds a section from XML. Sections are sent whole each
// time, so the entry list is rebuilt rather than merged.
func (p *Processor) parseSection(ctx context.Context, supp *Supplemental, x *xmlSection, session int, date time.Time) *Section {
	section := &Section{
		ID:   supp.ID + "-sect-" + x.Name,
		Cd:   x.Cd,
		Name: x.Name,
		Type: x.Type,
	}
	if x.CalNos != nil {
		for i := range x.CalNos.CalNo {
			entry, err := p.parseCalNo(ctx, section.ID, &x.CalNos.CalNo[i], session, date)
			if err != nil {
				slog.Error("calendar entry failed", "section", section.ID, "error", err)
				continue
			}
			if findEntry(section.Entries, entry.OID) == nil {
				section.Entries = append(section.Entries, entry)
			}
		}
	}
	return section
}

func (p *Processor) parseSequence(ctx context.Context, supp *Supplemental, x *xmlSequence, session int, date time.Time) *Sequence {
	seq := &Sequence{
		ID:    supp.ID + "-seq-" + x.No,
		No:    x.No,
		Notes: strings.ReplaceAll(x.Notes, "\n", ""),
	}
	if x.ActCalDate != "" {
		if d, err := time.Parse(calDateLayout, x.ActCalDate); err != nil {
			slog.Error("unparsable actcaldate", "sequence", seq.ID, "value", x.ActCalDate)
		} else {
			seq.ActCalDate = d
		}
	}
	if x.ReleaseDate != "" && x.ReleaseTime != "" {
		if rel, err := time.Parse(releaseDateLayout, x.ReleaseDate+x.ReleaseTime); err != nil {
			slog.Error("unparsable sequence release date", "sequence", seq.ID, "value", x.ReleaseDate+x.ReleaseTime)
		} else {
			seq.ReleaseDate = rel
		}
	}
	if x.CalNos != nil {
		for i := range x.CalNos.CalNo {
			entry, err := p.parseCalNo(ctx, seq.ID, &x.CalNos.CalNo[i], session, date)
			if err != nil {
				slog.Error("calendar entry failed", "sequence", seq.ID, "error", err)
				continue
			}
			if findEntry(seq.Entries, entry.OID) == nil {
				seq.Entries = append(seq.Entries, entry)
			}
		}
	}
	return seq
}

func (p *Processor) parseCalNo(ctx context.Context, parentID string, x *xmlCalNo, session int, date time.Time) (*Entry, error) {
	entry := &Entry{
		OID: parentID + "-" + x.No,
		No:  strings.TrimLeft(x.No, "0"),
	}

	if x.MotionDate != "" {
		if d, err := time.Parse(calDateLayout, x.MotionDate); err != nil {
			slog.Error("unparsable motiondate", "entry", entry.OID, "value", x.MotionDate)
		} else {
			entry.MotionDate = d
		}
	}

	if x.Bill != nil && x.Bill.No != "" {
		b, err := p.bills.EnsureReferencedBill(ctx, x.Bill.No, session, x.Sponsor, date)
		if err != nil {
			return nil, err
		}
		entry.BillID = b.BillID
		entry.BillHigh = x.Bill.High
	}
	if x.SubBill != nil && x.SubBill.No != "" {
		b, err := p.bills.EnsureReferencedBill(ctx, x.SubBill.No, session, x.SubSponsor, date)
		if err != nil {
			return nil, err
		}
		entry.SubBillID = b.BillID
	}

	return entry, nil
}

func findSection(sections []*Section, id string) *Section {
	for _, s := range sections {
		if s.ID == id {
			return s
		}
	}
	return nil
}

func findSequence(seqs []*Sequence, id string) *Sequence {
	for _, s := range seqs {
		if s.ID == id {
			return s
		}
	}
	return nil
}

func findEntry(entries []*Entry, oid string) *Entry {
	for _, e := range entries {
		if e.OID == oid {
			return e
		}
	}
	return nil
}
