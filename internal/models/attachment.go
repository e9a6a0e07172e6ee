package models

type Attachment struct {
	ID            int          `gorm:"primaryKey"`
	ApplicationID int          `gorm:"not null;index"`
	Application   *Application `gorm:"foreignKey:ApplicationID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	// Filename is the name the applicant uploaded the file under; Filepath
	// is where the bytes live on disk, relative to the upload root.
	Filename string `gorm:"not null"`
	Filepath string `gorm:"not null;uniqueIndex"`
	MimeType string `gorm:"not null"`
}

func (Attachment) TableName() string {
	return "attachments"
}
