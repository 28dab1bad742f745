package process

import (
	"regexp"
	"strings"
	"time"

	"github.com/roach88/legisync/internal/bill"
)

var (
	// First line of a vote block, e.g.
	// "Senate Vote    Bill: S1892              Date: 01/19/2011  Aye - 41".
	voteHeaderPattern = regexp.MustCompile(`Senate Vote    Bill: (.{18}) Date: (.{10})`)

	// Recorded votes are packed four to a roster line: "Aye  Adams          ".
	voteLinePattern = regexp.MustCompile(`(.{4}) (.{1,15})`)
)

// voteDateLayout matches the date in vote headers, e.g. 02/05/2013.
const voteDateLayout = "01/02/2006"

// applyVoteMemo creates or replaces a recorded vote. Votes are identified
// by (bill, date, type, sequence); re-receiving a known vote replaces its
// rosters but keeps the original publish date, so publish dates reflect
// first receipt rather than retransmission time.
//
// The payload can contain several header+roster segments back to back
// (duplicate transmissions happen); each header starts a fresh vote object
// and only the final segment is committed.
//
// Deleting votes is not possible.
func applyVoteMemo(data string, b *bill.Bill, date time.Time) error {
	var vote *bill.Vote

	for _, line := range strings.Split(data, "\n") {
		if m := voteHeaderPattern.FindStringSubmatch(line); m != nil {
			voteDate, err := time.Parse(voteDateLayout, strings.TrimSpace(m[2]))
			if err != nil {
				return parseErrorf("vote date not matched: %s", line)
			}
			// The feed does not carry a sequence number yet.
			vote = bill.NewVote(b.BillID, voteDate, bill.VoteFloor, "1")
			vote.PublishDate = date
			if old := b.FindVote(vote); old != nil {
				vote.PublishDate = old.PublishDate
			}
			vote.ModifiedDate = date
			continue
		}

		if vote == nil {
			return parseErrorf("vote data without a header: %s", data)
		}

		for _, vm := range voteLinePattern.FindAllStringSubmatch(line, -1) {
			code := strings.TrimSpace(vm[1])
			voter := bill.NewPerson(vm[2])
			switch code {
			case "Aye":
				vote.AddAye(voter)
			case "Nay":
				vote.AddNay(voter)
			case "Abs":
				vote.AddAbsent(voter)
			case "Abd":
				vote.AddAbstain(voter)
			case "Exc":
				vote.AddExcused(voter)
			default:
				return parseErrorf("unknown vote code found: %s", line)
			}
		}
	}

	if vote != nil {
		b.UpdateVote(vote)
	}
	return nil
}
