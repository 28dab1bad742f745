package process

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/roach88/legisync/internal/bill"
)

// Simple replace-in-full appliers. Every block arrives with its field sent
// in full, so these replace the target attribute completely.

var (
	// Same-as payload, e.g. "Same as Uni. A 372" or "Same as S 210-A".
	// Multiple same-as references can appear; only the first is used.
	sameAsPattern = regexp.MustCompile(`Same as( Uni\.)? ([A-Z] ?[0-9]{1,5}-?[A-Z]?)`)

	// Bill info payload: sponsor(20) reprint(6) blurb(33) oldbill(7)
	// lbd(8) year(rest).
	billInfoPattern = regexp.MustCompile("^(.{20})([0-9]{5}[ A-Z])(.{33})([ A-Z][0-9]{5}[ `A-Z0-9-])(.{8})(.*)$")

	// Trailing version junk on the previous-version print number.
	oldBillJunkPattern = regexp.MustCompile("[0-9`-]$")

	// Assembly "RULES COM <name>" sponsor encoding quirk (NYSS 7215).
	rulesComPattern     = regexp.MustCompile(`^RULES COM ([a-zA-Z-']+)( [A-Z])?(.*)$`)
	rulesRequestPattern = regexp.MustCompile(`^RULES \(REQUEST OF [a-zA-Z-']*\)$`)
)

// collapse flattens a multi-line payload into one trimmed line.
func collapse(data string) string {
	return strings.TrimSpace(strings.ReplaceAll(data, "\n", " "))
}

// applyTitle fully replaces the bill title.
// The title is a required field and cannot be deleted, only replaced.
func applyTitle(data string, b *bill.Bill) error {
	b.Title = collapse(data)
	return nil
}

// applySummary fully replaces the bill summary.
// Delete codes for this field are sent through the law block.
func applySummary(data string, b *bill.Bill) error {
	b.Summary = collapse(data)
	return nil
}

// applyLawSection fully replaces the law section.
// Cannot be deleted, only replaced.
func applyLawSection(data string, b *bill.Bill) error {
	b.LawSection = strings.TrimSpace(data)
	return nil
}

// applyActClause fully replaces the ACT TO clause.
// A DELETE payload clears it.
func applyActClause(data string, b *bill.Bill) error {
	if strings.TrimSpace(data) == "DELETE" {
		b.ActClause = ""
	} else {
		b.ActClause = collapse(data)
	}
	return nil
}

// applyLaw fully replaces the law field. A DELETE payload clears both law
// and summary. The match is a prefix match, not an exact one, because law
// blocks can be multi-line and could legitimately start with the word.
func applyLaw(data string, b *bill.Bill) error {
	if strings.HasPrefix(strings.TrimSpace(data), "DELETE") {
		b.Law = ""
		b.Summary = ""
	} else {
		b.Law = collapse(data)
	}
	return nil
}

// applyProgramInfo parses the program block, e.g. "029 Governor Program".
// The data is currently unused downstream, so this is a no-op by design.
func applyProgramInfo(string, *bill.Bill) error {
	return nil
}

// applySameAs fully replaces the same-as reference. "No same as" and
// "DELETE" clear it along with the uni-bill flag. A pattern miss is logged
// and leaves the field unchanged - the feed is noisy here.
func applySameAs(data string, b *bill.Bill) error {
	trimmed := strings.TrimSpace(data)
	if strings.EqualFold(trimmed, "No same as") || strings.EqualFold(trimmed, "DELETE") {
		b.SameAs = ""
		b.UniBill = false
		return nil
	}

	m := sameAsPattern.FindStringSubmatch(data)
	if m == nil {
		slog.Error("same-as pattern not matched", "data", data)
		return nil
	}
	if m[1] != "" {
		b.UniBill = true
	}
	ref := strings.NewReplacer("-", "", " ", "").Replace(m[2])
	b.SameAs = ref + "-" + strconv.Itoa(b.Session())
	return nil
}

// applySponsor fully replaces the sponsor. The tokenizer can coalesce
// consecutive sponsor blocks (the header repeats for each), so every line
// is its own logical update. DELETE clears sponsor, co-sponsors and
// multi-sponsors.
//
// When the current sponsor starts with "RULES ", the line rewrites the
// existing name instead of overwriting: "RULES COM <name>" becomes
// "RULES (REQUEST OF <name>)", anything else collapses to bare "RULES".
// This corrects a known upstream encoding quirk in the assembly data.
func applySponsor(data string, b *bill.Bill) error {
	for _, line := range strings.Split(data, "\n") {
		if strings.TrimSpace(line) == "DELETE" {
			b.Sponsor = nil
			b.CoSponsors = nil
			b.MultiSponsors = nil
			continue
		}

		if b.Sponsor != nil && strings.HasPrefix(b.Sponsor.FullName, "RULES ") {
			name := b.Sponsor.FullName
			if m := rulesComPattern.FindStringSubmatch(name); m != nil {
				b.Sponsor.FullName = strings.ToUpper("RULES (REQUEST OF " + m[1] + m[2] + ")")
			} else if !rulesRequestPattern.MatchString(name) {
				b.Sponsor.FullName = "RULES"
			}
			continue
		}

		sponsor := bill.NewPerson(line)
		b.Sponsor = &sponsor
	}
	return nil
}

// applyCoSponsors fully replaces the co-sponsor list from a comma-separated
// payload. Deletes come through the sponsor block.
func applyCoSponsors(data string, b *bill.Bill) error {
	b.CoSponsors = splitPeople(data)
	return nil
}

// applyMultiSponsors fully replaces the multi-sponsor list from a
// comma-separated payload. Deletes come through the sponsor block.
func applyMultiSponsors(data string, b *bill.Bill) error {
	b.MultiSponsors = splitPeople(data)
	return nil
}

func splitPeople(data string) []bill.Person {
	var people []bill.Person
	for _, name := range strings.Split(collapse(data), ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		people = append(people, bill.NewPerson(name))
	}
	return people
}

// applyBillInfo applies the bill status block. A DELETE payload unpublishes
// the bill (the publisher then runs the unpublish cascade). A status line
// for an unpublished bill republishes and activates it. The fixed-width
// payload fills in a blank sponsor (never replaces an existing one) and the
// previous-version reference.
func applyBillInfo(data string, b *bill.Bill, date time.Time) error {
	if strings.HasPrefix(data, "DELETE") {
		b.PublishDate = time.Time{}
		return nil
	}

	if !b.Published() {
		b.PublishDate = date
		b.Active = true
	}

	m := billInfoPattern.FindStringSubmatch(data)
	if m == nil {
		return parseErrorf("bill info pattern not matched by %q", data)
	}

	sponsor := strings.TrimSpace(m[1])
	oldBill := oldBillJunkPattern.ReplaceAllString(strings.TrimSpace(m[4]), "")
	oldYear := strings.TrimSpace(m[6])

	if sponsor != "" && (b.Sponsor == nil || b.Sponsor.FullName == "") {
		p := bill.NewPerson(sponsor)
		b.Sponsor = &p
	}
	if oldBill != "" && !strings.HasPrefix(oldBill, "0") {
		b.PreviousVersions = []string{oldBill + "-" + oldYear}
	}
	return nil
}
