package models

import "time"

type VoteRecord struct {
	ID            int          `gorm:"primaryKey"`
	ApplicationID int          `gorm:"not null;index"`
	Application   *Application `gorm:"foreignKey:ApplicationID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	VoterEmail    string       `gorm:"not null"`
	// Token is the sole capability for casting this vote. Unique across
	// the lifetime of the system, never reissued.
	Token      string      `gorm:"not null;uniqueIndex"`
	Vote       *VoteOption `gorm:"type:varchar(20)"`
	VoteStatus VoteStatus  `gorm:"type:varchar(20);not null;default:'pending'"`
	VotedAt    *time.Time
}

func (VoteRecord) TableName() string {
	return "votes"
}

type VoteOption string

const (
	VoteApprove VoteOption = "approve"
	VoteReject  VoteOption = "reject"
	VoteAbstain VoteOption = "abstain"
)

// VoteOptions lists the decisions a board member can take, in the order
// they are rendered on the voting form.
func VoteOptions() []VoteOption {
	return []VoteOption{VoteApprove, VoteReject, VoteAbstain}
}

func ParseVoteOption(s string) (VoteOption, bool) {
	switch VoteOption(s) {
	case VoteApprove, VoteReject, VoteAbstain:
		return VoteOption(s), true
	}
	return "", false
}

type VoteStatus string

const (
	VotePending VoteStatus = "pending"
	VoteCast    VoteStatus = "cast"
)
