package bill

import (
	"fmt"
	"time"
)

// Bill is a single version of a legislative document: either a base bill or
// one of its lettered amendments. The zero PublishDate means unpublished.
type Bill struct {
	BillID string `json:"bill_id"`
	Year   int    `json:"year"` // session year

	Title      string `json:"title,omitempty"`
	Summary    string `json:"summary,omitempty"`
	Law        string `json:"law,omitempty"`
	LawSection string `json:"law_section,omitempty"`
	ActClause  string `json:"act_clause,omitempty"`

	SameAs  string `json:"same_as,omitempty"`
	UniBill bool   `json:"uni_bill,omitempty"`

	Sponsor       *Person  `json:"sponsor,omitempty"`
	CoSponsors    []Person `json:"co_sponsors,omitempty"`
	OtherSponsors []Person `json:"other_sponsors,omitempty"`
	MultiSponsors []Person `json:"multi_sponsors,omitempty"`

	FullText string `json:"full_text,omitempty"`
	MemoText string `json:"memo_text,omitempty"`

	Actions []Action `json:"actions,omitempty"`
	Votes   []*Vote  `json:"votes,omitempty"`

	// Amendments lists the bill ids of this bill's siblings, always
	// including the base bill id. The publisher keeps the lists symmetric
	// across all published members of a chain.
	Amendments       []string `json:"amendments,omitempty"`
	PreviousVersions []string `json:"previous_versions,omitempty"`

	PublishDate  time.Time `json:"publish_date"`
	ModifiedDate time.Time `json:"modified_date"`
	Active       bool      `json:"active"`

	CurrentCommittee string   `json:"current_committee,omitempty"`
	PastCommittees   []string `json:"past_committees,omitempty"`
	Stricken         bool     `json:"stricken,omitempty"`

	DataSources []string `json:"data_sources,omitempty"`

	// brandNew is true only for bills created during the current run that
	// have never been persisted. Unpublishing a brand new bill does not
	// emit a deletion changelog entry. Not serialized.
	brandNew bool
}

// New creates an in-memory bill that has not been persisted yet.
func New(billID string, year int) *Bill {
	return &Bill{BillID: billID, Year: year, brandNew: true}
}

// Session returns the session year the bill belongs to.
func (b *Bill) Session() int { return b.Year }

// Published reports whether the bill is visible downstream.
func (b *Bill) Published() bool { return !b.PublishDate.IsZero() }

// BrandNew reports whether the bill was created during this run and has
// never been persisted.
func (b *Bill) BrandNew() bool { return b.brandNew }

// MarkPersisted clears the brand-new flag. Called by the store after a
// successful write and on load.
func (b *Bill) MarkPersisted() { b.brandNew = false }

// AddAmendment appends a sibling bill id unless already present.
func (b *Bill) AddAmendment(billID string) {
	for _, id := range b.Amendments {
		if id == billID {
			return
		}
	}
	b.Amendments = append(b.Amendments, billID)
}

// AddAmendments appends each sibling id, skipping duplicates.
func (b *Bill) AddAmendments(billIDs []string) {
	for _, id := range billIDs {
		b.AddAmendment(id)
	}
}

// RemoveAmendment deletes a sibling bill id from the amendment list.
func (b *Bill) RemoveAmendment(billID string) {
	for i, id := range b.Amendments {
		if id == billID {
			b.Amendments = append(b.Amendments[:i], b.Amendments[i+1:]...)
			return
		}
	}
}

// UpdateVote upserts a vote by identity: an existing vote for the same roll
// call is replaced in place, otherwise the vote is appended.
func (b *Bill) UpdateVote(v *Vote) {
	for i, old := range b.Votes {
		if old.SameIdentity(v) {
			b.Votes[i] = v
			return
		}
	}
	b.Votes = append(b.Votes, v)
}

// FindVote returns the existing vote with the same identity, or nil.
func (b *Bill) FindVote(v *Vote) *Vote {
	for _, old := range b.Votes {
		if old.SameIdentity(v) {
			return old
		}
	}
	return nil
}

// AddDataSource records the name of a source file that contributed to this
// bill. Duplicates are ignored.
func (b *Bill) AddDataSource(name string) {
	for _, s := range b.DataSources {
		if s == name {
			return
		}
	}
	b.DataSources = append(b.DataSources, name)
}

func (b *Bill) String() string {
	return fmt.Sprintf("Bill[%s]", b.BillID)
}
