package bill

import "time"

// VoteType distinguishes floor votes from committee votes.
type VoteType int

const (
	VoteFloor     VoteType = 1
	VoteCommittee VoteType = 2
)

// Vote is a recorded roll call on a bill. Identity is
// (bill, date, type, sequence); re-transmissions of the same vote replace
// the rosters but keep the original publish date.
type Vote struct {
	BillID   string   `json:"bill_id"`
	Date     time.Time `json:"date"`
	Type     VoteType `json:"type"`
	Sequence string   `json:"sequence"`

	Ayes     []Person `json:"ayes,omitempty"`
	Nays     []Person `json:"nays,omitempty"`
	Absent   []Person `json:"absent,omitempty"`
	Excused  []Person `json:"excused,omitempty"`
	Abstains []Person `json:"abstains,omitempty"`

	PublishDate  time.Time `json:"publish_date"`
	ModifiedDate time.Time `json:"modified_date"`
}

// NewVote creates a vote with the given identity.
func NewVote(billID string, date time.Time, voteType VoteType, sequence string) *Vote {
	return &Vote{BillID: billID, Date: date, Type: voteType, Sequence: sequence}
}

// SameIdentity reports whether two votes are the same roll call.
func (v *Vote) SameIdentity(other *Vote) bool {
	return v.BillID == other.BillID &&
		v.Date.Equal(other.Date) &&
		v.Type == other.Type &&
		v.Sequence == other.Sequence
}

// AddAye records a vote for.
func (v *Vote) AddAye(p Person) { v.Ayes = append(v.Ayes, p) }

// AddNay records a vote against.
func (v *Vote) AddNay(p Person) { v.Nays = append(v.Nays, p) }

// AddAbsent records a member absent during voting.
func (v *Vote) AddAbsent(p Person) { v.Absent = append(v.Absent, p) }

// AddExcused records a member excused from voting.
func (v *Vote) AddExcused(p Person) { v.Excused = append(v.Excused, p) }

// AddAbstain records a member who abstained.
func (v *Vote) AddAbstain(p Person) { v.Abstains = append(v.Abstains, p) }
