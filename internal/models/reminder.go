package models

import "time"

// VoteReminder logs one reminder round sent to board members whose vote
// was still pending at the time.
type VoteReminder struct {
	ID            int          `gorm:"primaryKey"`
	ApplicationID int          `gorm:"not null;index"`
	Application   *Application `gorm:"foreignKey:ApplicationID"`
	Recipients    int          `gorm:"not null"`
	CreatedAt     time.Time    `gorm:"autoCreateTime;not null"`
}

func (VoteReminder) TableName() string {
	return "vote_reminders"
}

// ReminderTask is a due entry pulled from the redis schedule.
type ReminderTask struct {
	ApplicationID int
	Member        string
}
