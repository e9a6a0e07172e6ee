package models

import (
	"time"
)

type Application struct {
	ID                 int    `gorm:"primaryKey"`
	FirstName          string `gorm:"not null"`
	LastName           string `gorm:"not null"`
	ApplicantEmail     string `gorm:"not null"`
	Department         string `gorm:"not null"`
	ProjectTitle       string `gorm:"not null"`
	ProjectDescription string `gorm:"not null"`
	Costs              float64
	Status             ApplicationStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	// BoardSize is snapshotted at submission time; later changes to the
	// configured board never affect applications already in flight.
	BoardSize   int       `gorm:"not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	ConcludedAt *time.Time

	Votes       []VoteRecord `gorm:"foreignKey:ApplicationID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Attachments []Attachment `gorm:"foreignKey:ApplicationID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (Application) TableName() string {
	return "applications"
}

type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusApproved ApplicationStatus = "approved"
	StatusRejected ApplicationStatus = "rejected"
)

// Concluded reports whether the application has reached a terminal status.
func (a *Application) Concluded() bool {
	return a.Status != StatusPending
}
