package process

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/roach88/legisync/internal/bill"
	"github.com/roach88/legisync/internal/sobi"
)

// billRefPattern splits a calendar bill reference like "S1234" or "S1234A".
var billRefPattern = regexp.MustCompile(`^([A-Z])([0-9]+)([A-Z]?)$`)

// EnsureReferencedBill resolves a bill referenced from outside the SOBI
// stream (calendar entries). Bills on a calendar should already exist, but
// missing change files make that untrue often enough that the reference
// creates and publishes the bill on first sight.
//
// A non-empty sponsors string is a comma-separated list: the first name is
// the sponsor, the rest are other sponsors. Other sponsors are replaced
// when a calendar is resent with a different list.
func (p *Processor) EnsureReferencedBill(ctx context.Context, printNo string, session int, sponsors string, date time.Time) (*bill.Bill, error) {
	m := billRefPattern.FindStringSubmatch(printNo)
	if m == nil {
		return nil, parseErrorf("bill reference %q not matched", printNo)
	}

	// Synthesize a status-line header so the reference goes through the
	// same resolver as a SOBI block.
	num, _ := strconv.Atoi(m[2])
	amendment := m[3]
	if amendment == "" {
		amendment = " "
	}
	line := fmt.Sprintf("%04d%s%05d%s1", session, m[1], num, amendment)
	block := sobi.ParseBlock("calendar-reference", 0, line)
	if block == nil {
		return nil, parseErrorf("bill reference %q produced no block", printNo)
	}

	b, err := p.resolveTarget(ctx, block, date)
	if err != nil {
		return nil, err
	}

	if sponsors != "" {
		names := strings.Split(strings.TrimSpace(sponsors), ",")
		sponsor := bill.NewPerson(names[0])
		b.Sponsor = &sponsor

		var others []bill.Person
		for _, name := range names[1:] {
			others = append(others, bill.NewPerson(name))
		}
		if !bill.PeopleEqual(b.OtherSponsors, others) {
			b.OtherSponsors = others
			if err := p.saveBill(ctx, b); err != nil {
				return nil, err
			}
		}
	}

	if !b.Published() {
		// It must be published if it is on a calendar.
		slog.Info("publishing bill referenced by calendar", "bill_id", b.BillID)
		b.PublishDate = date
		b.Active = true
		if err := p.saveBill(ctx, b); err != nil {
			return nil, err
		}
	}

	return b, nil
}
