package bill

import "time"

// Action is one entry in a bill's event history, e.g.
// "01/28/2013 REFERRED TO FINANCE". The stored date doubles as the ordering
// key: when the feed sends identical-date events, the applier shifts
// timestamps by one second to keep the list strictly ordered.
type Action struct {
	Date time.Time `json:"date"`
	Text string    `json:"text"`
}
