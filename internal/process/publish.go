package process

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/roach88/legisync/internal/bill"
	"github.com/roach88/legisync/internal/store"
)

// saveBill commits a bill after a field applier has run, keeping the whole
// amendment chain consistent.
//
// For a published bill: every sibling's amendment list is repaired to
// contain this bill, siblings are deactivated if this bill is active, and
// the broadcast fields (sponsors, law section, law, summary) are copied
// onto each sibling. Uni-bills additionally mirror full text with their
// same-as linked bill.
//
// For an unpublished bill: its id is removed from every sibling's amendment
// list, the last remaining sibling inherits the active flag if this bill
// held it, and the bill itself is deactivated. A previously-known bill gets
// a deletion changelog entry instead of a change entry.
func (p *Processor) saveBill(ctx context.Context, b *bill.Bill) error {
	slog.Info("saving bill", "bill_id", b.BillID)

	// Injected data fixes, applied before the publish decision: the feed
	// does not carry co-prime sponsor data for some historical bills, and
	// a few ids must never be published.
	if people, ok := p.cfg.OtherSponsorOverride(b.BillID); ok {
		b.OtherSponsors = people
	}
	if p.cfg.IsUnpublished(b.BillID) {
		b.PublishDate = time.Time{}
	}

	if b.Published() {
		return p.savePublished(ctx, b)
	}
	return p.saveUnpublished(ctx, b)
}

func (p *Processor) savePublished(ctx context.Context, b *bill.Bill) error {
	// Sponsor and summary data must stay in sync across all versions.
	// It is normally sent to the base bill and broadcast to amendments,
	// but older data sets are missing base versions, so the broadcast runs
	// from whichever version received the update.
	for _, versionKey := range b.Amendments {
		sibling, err := p.store.GetBillByID(ctx, versionKey)
		if err != nil {
			return err
		}
		if sibling == nil {
			slog.Warn("amendment list references missing bill",
				"bill_id", b.BillID, "missing", versionKey)
			continue
		}

		sibling.AddAmendment(b.BillID)
		if b.Active {
			sibling.Active = false
		}
		sibling.Sponsor = clonePerson(b.Sponsor)
		sibling.CoSponsors = clonePeople(b.CoSponsors)
		sibling.OtherSponsors = clonePeople(b.OtherSponsors)
		sibling.MultiSponsors = clonePeople(b.MultiSponsors)
		sibling.LawSection = b.LawSection
		sibling.Law = b.Law
		sibling.Summary = b.Summary

		if err := p.store.SetBill(ctx, sibling); err != nil {
			return err
		}
		if err := p.changelog.Record(ctx, store.BillKey(sibling)); err != nil {
			return err
		}
		slog.Info("broadcast to sibling", "bill_id", b.BillID, "sibling", sibling.BillID)
	}

	if b.UniBill {
		if err := p.mirrorUniBillText(ctx, b); err != nil {
			return err
		}
	}

	if err := p.store.SetBill(ctx, b); err != nil {
		return err
	}
	return p.changelog.Record(ctx, store.BillKey(b))
}

// mirrorUniBillText keeps full text shared between the two chambers'
// versions of a uni-bill. The senate-series document is authoritative:
// S/J/B/R ids push their text onto the linked bill, anything else pulls
// from it when the texts differ.
func (p *Processor) mirrorUniBillText(ctx context.Context, b *bill.Bill) error {
	if b.SameAs == "" {
		return nil
	}
	linked, err := p.store.GetBillByID(ctx, b.SameAs)
	if err != nil || linked == nil {
		return err
	}

	if strings.ContainsAny(b.BillID[:1], "SJBR") {
		linked.FullText = b.FullText
		if err := p.store.SetBill(ctx, linked); err != nil {
			return err
		}
		return p.changelog.Record(ctx, store.BillKey(linked))
	}
	if b.FullText != linked.FullText {
		b.FullText = linked.FullText
	}
	return nil
}

func (p *Processor) saveUnpublished(ctx context.Context, b *bill.Bill) error {
	if len(b.Amendments) > 0 {
		// The last entry on the list is assumed to be the most recent
		// version; it becomes the new active candidate. With multiple
		// substitutions in play this can pick the wrong one, but the
		// feed gives nothing better to go on.
		newActive := b.Amendments[len(b.Amendments)-1]

		for _, versionKey := range b.Amendments {
			sibling, err := p.store.GetBillByID(ctx, versionKey)
			if err != nil {
				return err
			}
			if sibling == nil {
				slog.Warn("amendment list references missing bill",
					"bill_id", b.BillID, "missing", versionKey)
				continue
			}
			sibling.RemoveAmendment(b.BillID)
			if b.Active && versionKey == newActive {
				sibling.Active = true
			}
			if err := p.store.SetBill(ctx, sibling); err != nil {
				return err
			}
			if err := p.changelog.Record(ctx, store.BillKey(sibling)); err != nil {
				return err
			}
		}
	}

	wasKnown := !b.BrandNew()
	b.Active = false
	if err := p.store.SetBill(ctx, b); err != nil {
		return err
	}
	if wasKnown {
		return p.changelog.Delete(ctx, store.BillKey(b))
	}
	return nil
}
