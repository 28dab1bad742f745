package process

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/legisync/internal/bill"
)

func TestApplyTitleCollapsesLines(t *testing.T) {
	b := bill.New("S1234-2011", 2011)
	require.NoError(t, applyTitle("AN ACT to amend\nthe tax law ", b))
	assert.Equal(t, "AN ACT to amend the tax law", b.Title)
}

func TestApplyActClause(t *testing.T) {
	b := bill.New("S1234-2011", 2011)
	require.NoError(t, applyActClause("AN ACT to\namend", b))
	assert.Equal(t, "AN ACT to amend", b.ActClause)

	require.NoError(t, applyActClause(" DELETE ", b))
	assert.Equal(t, "", b.ActClause)
}

func TestApplyLawDeleteClearsSummaryToo(t *testing.T) {
	b := bill.New("S1234-2011", 2011)
	b.Summary = "old summary"
	require.NoError(t, applyLaw("Amd S100, Tax L", b))
	assert.Equal(t, "Amd S100, Tax L", b.Law)
	assert.Equal(t, "old summary", b.Summary)

	require.NoError(t, applyLaw("DELETE everything after is ignored", b))
	assert.Equal(t, "", b.Law)
	assert.Equal(t, "", b.Summary)
}

func TestApplySameAs(t *testing.T) {
	b := bill.New("S1234-2011", 2011)

	require.NoError(t, applySameAs("Same as A 372", b))
	assert.Equal(t, "A372-2011", b.SameAs)
	assert.False(t, b.UniBill)

	require.NoError(t, applySameAs("Same as Uni. A 1892-A", b))
	assert.Equal(t, "A1892A-2011", b.SameAs)
	assert.True(t, b.UniBill)

	require.NoError(t, applySameAs("No same as", b))
	assert.Equal(t, "", b.SameAs)
	assert.False(t, b.UniBill)

	require.NoError(t, applySameAs("Same as A 100", b))
	require.NoError(t, applySameAs("DELETE", b))
	assert.Equal(t, "", b.SameAs)

	// Noisy payloads are logged and skipped, never an error.
	b.SameAs = "A100-2011"
	require.NoError(t, applySameAs("garbage payload", b))
	assert.Equal(t, "A100-2011", b.SameAs)
}

func TestApplySponsor(t *testing.T) {
	b := bill.New("S1234-2011", 2011)

	require.NoError(t, applySponsor("MARTINS", b))
	require.NotNil(t, b.Sponsor)
	assert.Equal(t, "MARTINS", b.Sponsor.FullName)

	b.CoSponsors = []bill.Person{bill.NewPerson("SMITH")}
	b.MultiSponsors = []bill.Person{bill.NewPerson("JONES")}
	require.NoError(t, applySponsor("DELETE", b))
	assert.Nil(t, b.Sponsor)
	assert.Nil(t, b.CoSponsors)
	assert.Nil(t, b.MultiSponsors)
}

func TestApplySponsorRulesRewrite(t *testing.T) {
	b := bill.New("A1234-2011", 2011)
	sponsor := bill.NewPerson("RULES COM Gunther")
	b.Sponsor = &sponsor

	require.NoError(t, applySponsor("anything", b))
	assert.Equal(t, "RULES (REQUEST OF GUNTHER)", b.Sponsor.FullName)

	// Already rewritten: left alone.
	require.NoError(t, applySponsor("anything", b))
	assert.Equal(t, "RULES (REQUEST OF GUNTHER)", b.Sponsor.FullName)

	// Any other RULES form collapses to bare RULES.
	other := bill.NewPerson("RULES SOMETHING ELSE")
	b.Sponsor = &other
	require.NoError(t, applySponsor("anything", b))
	assert.Equal(t, "RULES", b.Sponsor.FullName)
}

func TestApplyCoSponsors(t *testing.T) {
	b := bill.New("S1234-2011", 2011)
	require.NoError(t, applyCoSponsors("SMITH, JONES,\nGRISANTI, ", b))
	assert.Equal(t, []bill.Person{
		bill.NewPerson("SMITH"),
		bill.NewPerson("JONES"),
		bill.NewPerson("GRISANTI"),
	}, b.CoSponsors)
}

func TestApplyMultiSponsors(t *testing.T) {
	b := bill.New("A1234-2011", 2011)
	require.NoError(t, applyMultiSponsors("CAHILL, GUNTHER", b))
	assert.Len(t, b.MultiSponsors, 2)
}

// billInfoData builds a fixed-width status payload:
// sponsor(20) reprint(6) blurb(33) oldbill(7) lbd(8) year. The old bill
// field must be exactly 7 characters; the feed sends " 00000 " when there
// is no previous version.
func billInfoData(sponsor, oldBill7, oldYear string) string {
	return sponsor + strings.Repeat(" ", 20-len(sponsor)) +
		"00000 " +
		strings.Repeat(" ", 33) +
		oldBill7 +
		"00000000" +
		oldYear
}

func TestApplyBillInfoPublishes(t *testing.T) {
	b := bill.New("S1234-2011", 2011)
	date := time.Date(2011, time.January, 5, 0, 0, 0, 0, time.UTC)

	require.NoError(t, applyBillInfo(billInfoData("MARTINS", " 00000 ", ""), b, date))
	assert.True(t, b.Published())
	assert.True(t, b.Active)
	assert.True(t, b.PublishDate.Equal(date))
	require.NotNil(t, b.Sponsor)
	assert.Equal(t, "MARTINS", b.Sponsor.FullName)
}

func TestApplyBillInfoNeverReplacesSponsor(t *testing.T) {
	b := bill.New("S1234-2011", 2011)
	existing := bill.NewPerson("SMITH")
	b.Sponsor = &existing
	date := time.Date(2011, time.January, 5, 0, 0, 0, 0, time.UTC)

	require.NoError(t, applyBillInfo(billInfoData("MARTINS", " 00000 ", ""), b, date))
	assert.Equal(t, "SMITH", b.Sponsor.FullName)
}

func TestApplyBillInfoPreviousVersion(t *testing.T) {
	b := bill.New("S1234-2011", 2011)
	date := time.Date(2011, time.January, 5, 0, 0, 0, 0, time.UTC)

	require.NoError(t, applyBillInfo(billInfoData("", "S06412C", "2009"), b, date))
	assert.Equal(t, []string{"S06412C-2009"}, b.PreviousVersions)

	// A zero-prefixed reference is feed junk and ignored.
	b2 := bill.New("S1234-2011", 2011)
	require.NoError(t, applyBillInfo(billInfoData("", " 06412 ", "2009"), b2, date))
	assert.Empty(t, b2.PreviousVersions)
}

func TestApplyBillInfoDeleteUnpublishes(t *testing.T) {
	b := bill.New("S1234-2011", 2011)
	b.PublishDate = time.Date(2011, time.January, 5, 0, 0, 0, 0, time.UTC)

	require.NoError(t, applyBillInfo("DELETE", b, time.Now()))
	assert.False(t, b.Published())
}

func TestApplyBillInfoPatternMissIsParseError(t *testing.T) {
	b := bill.New("S1234-2011", 2011)
	err := applyBillInfo("too short", b, time.Now())
	require.Error(t, err)
	assert.True(t, IsParseError(err))
}
