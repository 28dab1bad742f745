package process

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/roach88/legisync/internal/bill"
	"github.com/roach88/legisync/internal/sobi"
)

// resolveTarget finds or creates the bill a block applies to.
//
// Published bills and base bills are returned as-is. An unpublished
// amendment is seeded from its base bill first: its amendment list is reset
// to the base bill's chain and the broadcast fields (sponsors, summary, law)
// are copied down. Amendment-local fields (title, act clause, law section)
// are then pulled forward from the most recently modified active sibling,
// since a new amendment usually references metadata last properly set on
// the currently active version.
func (p *Processor) resolveTarget(ctx context.Context, block *sobi.Block, date time.Time) (*bill.Bill, error) {
	b, err := p.store.GetBill(ctx, block.PrintNo+block.Amendment, block.Year)
	if err != nil {
		return nil, err
	}
	if b == nil {
		b = bill.New(block.BillID(), block.Year)
		b.ModifiedDate = date
	}

	if b.Published() || block.Amendment == "" {
		return b, nil
	}

	baseBillID := fmt.Sprintf("%s-%d", block.PrintNo, block.Year)
	base, err := p.store.GetBill(ctx, block.PrintNo, block.Year)
	if err != nil {
		return nil, err
	}
	if base == nil {
		// Amendments should always arrive after their base bill.
		slog.Warn("amendment filed without base bill",
			"location", block.Location(), "header", block.Header)
		base = bill.New(baseBillID, block.Year)
		base.ModifiedDate = date
		if err := p.store.SetBill(ctx, base); err != nil {
			return nil, err
		}
	}

	// The base bill is always the first entry of an amendment chain.
	b.Amendments = []string{baseBillID}
	b.AddAmendments(base.Amendments)

	// Broadcast fields come down from the base bill.
	b.Sponsor = clonePerson(base.Sponsor)
	b.CoSponsors = clonePeople(base.CoSponsors)
	b.OtherSponsors = clonePeople(base.OtherSponsors)
	b.MultiSponsors = clonePeople(base.MultiSponsors)
	b.Summary = base.Summary
	b.Law = base.Law

	// Amendment-local fields track the latest active version until a
	// proper update for this amendment comes through. A re-published
	// version can be more recently modified than the active one, in which
	// case its values are left alone.
	for _, versionKey := range b.Amendments {
		sibling, err := p.store.GetBillByID(ctx, versionKey)
		if err != nil {
			return nil, err
		}
		if sibling == nil {
			slog.Warn("amendment list references missing bill",
				"bill_id", b.BillID, "missing", versionKey)
			continue
		}
		if sibling.Active && sibling.ModifiedDate.After(b.ModifiedDate) {
			b.Title = sibling.Title
			b.ActClause = sibling.ActClause
			b.LawSection = sibling.LawSection
		}
	}

	return b, nil
}

func clonePerson(p *bill.Person) *bill.Person {
	if p == nil {
		return nil
	}
	cp := *p
	return &cp
}

func clonePeople(people []bill.Person) []bill.Person {
	if people == nil {
		return nil
	}
	out := make([]bill.Person, len(people))
	copy(out, people)
	return out
}
