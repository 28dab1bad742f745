package process

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/legisync/internal/bill"
)

func voteHeader(printNo, date string) string {
	return fmt.Sprintf("Senate Vote    Bill: %-18s Date: %s", printNo, date)
}

// Roster lines pack voters in 20 character cells: code(4) space name(15).
func rosterLine(votes ...[2]string) string {
	var cells []string
	for _, v := range votes {
		cells = append(cells, fmt.Sprintf("%-4s %-15s", v[0], v[1]))
	}
	return strings.Join(cells, "")
}

func TestApplyVoteMemo(t *testing.T) {
	b := bill.New("S1892-2011", 2011)
	fileDate := time.Date(2011, time.January, 20, 0, 0, 0, 0, time.UTC)

	data := voteHeader("S1892", "01/19/2011") + "\n" +
		rosterLine([2]string{"Aye", "Adams"}, [2]string{"Nay", "Smith"}) + "\n" +
		rosterLine([2]string{"Abs", "Jones"}, [2]string{"Exc", "Brown"}) + "\n" +
		rosterLine([2]string{"Abd", "Davis"})

	require.NoError(t, applyVoteMemo(data, b, fileDate))
	require.Len(t, b.Votes, 1)

	v := b.Votes[0]
	assert.Equal(t, "S1892-2011", v.BillID)
	assert.Equal(t, bill.VoteFloor, v.Type)
	assert.Equal(t, "1", v.Sequence)
	assert.True(t, v.Date.Equal(time.Date(2011, time.January, 19, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, []bill.Person{bill.NewPerson("Adams")}, v.Ayes)
	assert.Equal(t, []bill.Person{bill.NewPerson("Smith")}, v.Nays)
	assert.Equal(t, []bill.Person{bill.NewPerson("Jones")}, v.Absent)
	assert.Equal(t, []bill.Person{bill.NewPerson("Brown")}, v.Excused)
	assert.Equal(t, []bill.Person{bill.NewPerson("Davis")}, v.Abstains)
	assert.True(t, v.PublishDate.Equal(fileDate))
}

func TestApplyVoteMemoKeepsOriginalPublishDate(t *testing.T) {
	b := bill.New("S1892-2011", 2011)
	firstDate := time.Date(2011, time.January, 20, 0, 0, 0, 0, time.UTC)
	secondDate := time.Date(2011, time.February, 1, 0, 0, 0, 0, time.UTC)

	first := voteHeader("S1892", "01/19/2011") + "\n" + rosterLine([2]string{"Aye", "Adams"})
	require.NoError(t, applyVoteMemo(first, b, firstDate))

	// Retransmission: same roll call, different roster.
	second := voteHeader("S1892", "01/19/2011") + "\n" + rosterLine([2]string{"Nay", "Adams"})
	require.NoError(t, applyVoteMemo(second, b, secondDate))

	require.Len(t, b.Votes, 1)
	v := b.Votes[0]
	assert.Empty(t, v.Ayes)
	assert.Len(t, v.Nays, 1)
	assert.True(t, v.PublishDate.Equal(firstDate), "publish date must reflect first receipt")
	assert.True(t, v.ModifiedDate.Equal(secondDate))
}

func TestApplyVoteMemoCommitsOnlyFinalSegment(t *testing.T) {
	b := bill.New("S1892-2011", 2011)
	fileDate := time.Date(2011, time.January, 20, 0, 0, 0, 0, time.UTC)

	// Duplicate transmission in one block: two header+roster segments.
	data := voteHeader("S1892", "01/19/2011") + "\n" +
		rosterLine([2]string{"Aye", "Adams"}) + "\n" +
		voteHeader("S1892", "01/19/2011") + "\n" +
		rosterLine([2]string{"Aye", "Adams"}, [2]string{"Aye", "Smith"})

	require.NoError(t, applyVoteMemo(data, b, fileDate))
	require.Len(t, b.Votes, 1)
	assert.Len(t, b.Votes[0].Ayes, 2)
}

func TestApplyVoteMemoErrors(t *testing.T) {
	b := bill.New("S1892-2011", 2011)
	fileDate := time.Now()

	err := applyVoteMemo(rosterLine([2]string{"Aye", "Adams"}), b, fileDate)
	require.Error(t, err)
	assert.True(t, IsParseError(err), "roster before header")

	data := voteHeader("S1892", "01/19/2011") + "\n" + rosterLine([2]string{"Yea", "Adams"})
	err = applyVoteMemo(data, b, fileDate)
	require.Error(t, err)
	assert.True(t, IsParseError(err), "unknown vote code")

	data = voteHeader("S1892", "13/45/2011")
	err = applyVoteMemo(data, b, fileDate)
	require.Error(t, err)
	assert.True(t, IsParseError(err), "bad vote date")
}
