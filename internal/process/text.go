package process

import (
	"regexp"
	"strings"
	"time"

	"github.com/roach88/legisync/internal/bill"
)

// Text channels share one header grammar:
//
//	00000.SO DOC S 63                                     BTXT                 2011
//	00000.SO DOC S 63            *END*                    BTXT                 2011
//
// The action column is blank at start of segment, *END* to commit the
// buffer, *DELETE* to clear the field outright.
var textHeaderPattern = regexp.MustCompile(`00000\.SO DOC ([ASC]) ([0-9R/A-Z ]{13}) ([A-Z* ]{24}) ([A-Z ]{20}) ([0-9]{4})`)

// Text channel names carried in the header.
const (
	textTypeBill       = "BTXT"
	textTypeResolution = "RESO TEXT"
	textTypeMemo       = "MTXT"
)

// textFooterFixDate is the day the feed stopped sending text blocks with a
// missing footer. Files dated on or after it commit a dangling buffer;
// earlier files treat it as a hard error because silent partial commits
// from that era are not trusted.
var textFooterFixDate = time.Date(2011, time.April, 23, 0, 0, 0, 0, time.UTC)

// lineNumberWidth is the fixed-width line number prefixed to body lines.
const lineNumberWidth = 5

// applyText applies bill text, resolution text or memo text; all three
// share the header grammar so one state machine handles them. Body lines
// accumulate into a buffer between a start header and its *END* footer,
// with the line-number prefix stripped. A repeated start header while the
// buffer is open is harmless - the feed resends one every hundred lines or
// so - and is ignored.
func applyText(data string, b *bill.Bill, date time.Time) error {
	textType := ""
	var buf *strings.Builder

	for _, line := range strings.Split(data, "\n") {
		m := textHeaderPattern.FindStringSubmatch(line)
		if strings.HasPrefix(line, "00000") && m != nil {
			action := strings.TrimSpace(m[3])
			textType = strings.TrimSpace(m[4])

			if textType != textTypeBill && textType != textTypeResolution && textType != textTypeMemo {
				return parseErrorf("unknown text type found: %s", textType)
			}

			switch action {
			case "*DELETE*":
				setText(b, textType, "")
			case "*END*":
				if buf == nil {
					return parseErrorf("text end found before a body: %s", line)
				}
				setText(b, textType, buf.String())
				buf = nil
			case "":
				if buf == nil {
					buf = &strings.Builder{}
				}
				// Already open: repeated header, keep accumulating.
			default:
				return parseErrorf("unknown text action found: %s", action)
			}
			continue
		}

		if buf == nil {
			return parseErrorf("text body found before header: %s", line)
		}
		if len(line) > lineNumberWidth {
			buf.WriteString(line[lineNumberWidth:])
		}
		buf.WriteString("\n")
	}

	if buf != nil {
		if date.Before(textFooterFixDate) {
			return parseErrorf("finished text data without a footer")
		}
		// Commit what we have and move on.
		setText(b, textType, buf.String())
	}
	return nil
}

func setText(b *bill.Bill, textType, text string) {
	switch textType {
	case textTypeBill, textTypeResolution:
		b.FullText = text
	case textTypeMemo:
		b.MemoText = text
	}
}
