package process

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/roach88/legisync/internal/bill"
)

var (
	// One event per line: "02/04/13 REFERRED TO FINANCE".
	billEventPattern = regexp.MustCompile(`^([0-9]{2}/[0-9]{2}/[0-9]{2}) (.*)$`)

	// Committee referrals, floor calendar events and substitutions are
	// derived from the event text, most specific first.
	committeeEventPattern  = regexp.MustCompile(`(REFERRED|COMMITTED|RECOMMIT) TO (.*)`)
	floorEventPattern      = regexp.MustCompile(`(REPORT CAL|THIRD READING|RULES REPORT)`)
	substituteEventPattern = regexp.MustCompile(`SUBSTITUTED (FOR|BY) (.*)`)
)

// eventDateLayout matches event dates, e.g. 02/04/13.
const eventDateLayout = "01/02/06"

// applyBillEvents fully replaces the bill's action history along with the
// facts derived from it: same-as substitutions, the stricken flag, and the
// current/past committees. The feed always sends the complete history, so
// nothing is merged. There is no defense against a truncated block erasing
// prior history; hardening that would diverge from established output.
//
// Identical events can legitimately occur on the same day (it happens every
// June). To keep the list strictly ordered the timestamp is bumped by one
// second until unique - duplicates are kept, just time-shifted. Events are
// assumed to arrive in chronological order.
func applyBillEvents(data string, b *bill.Bill) error {
	var actions []bill.Action
	sameAs := b.SameAs
	stricken := false
	currentCommittee := ""
	var pastCommittees []string

	for _, line := range strings.Split(data, "\n") {
		m := billEventPattern.FindStringSubmatch(line)
		if m == nil {
			return parseErrorf("bill event pattern not matched: %s", line)
		}
		eventDate, err := time.Parse(eventDateLayout, m[1])
		if err != nil {
			return parseErrorf("event date parse failure: %s", m[1])
		}
		text := strings.TrimSpace(m[2])

		ts := eventDate
		for _, prior := range actions {
			if prior.Date.Equal(ts) {
				ts = ts.Add(time.Second)
			}
		}
		actions = append(actions, bill.Action{Date: ts, Text: text})

		upper := strings.ToUpper(text)
		switch {
		case strings.Contains(upper, "ENACTING CLAUSE STRICKEN"):
			stricken = true
		case committeeEventPattern.MatchString(upper):
			if currentCommittee != "" {
				pastCommittees = append(pastCommittees, currentCommittee)
			}
			currentCommittee = committeeEventPattern.FindStringSubmatch(upper)[2]
		case floorEventPattern.MatchString(upper):
			if currentCommittee != "" {
				pastCommittees = append(pastCommittees, currentCommittee)
			}
			currentCommittee = ""
		case substituteEventPattern.MatchString(upper):
			ref := substituteEventPattern.FindStringSubmatch(upper)[2]
			sameAs = ref + "-" + strconv.Itoa(b.Session())
		}
	}

	b.Actions = actions
	b.SameAs = sameAs
	b.CurrentCommittee = currentCommittee
	b.PastCommittees = pastCommittees
	b.Stricken = stricken
	return nil
}
