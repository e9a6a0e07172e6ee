package models

// Tally is the vote distribution of one application at a point in time.
// Approve + Reject + Abstain + Pending always equals the application's
// board size.
type Tally struct {
	Approve int
	Reject  int
	Abstain int
	Pending int
}

func (t Tally) Total() int {
	return t.Approve + t.Reject + t.Abstain + t.Pending
}
