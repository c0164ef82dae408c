package models

import "time"

type ReportReason string

const (
	HARASSMENT      ReportReason = "HARASSMENT"
	SELF_HARM       ReportReason = "SELF_HARM"
	VIOLENCE        ReportReason = "VIOLENCE"
	NUDITY          ReportReason = "NUDITY"
	PLAGIARISM      ReportReason = "PLAGIARISM"
	MISINFORMATION  ReportReason = "MISINFORMATION"
	ILLEGAL_CONTENT ReportReason = "ILLEGAL_CONTENT"
)

type ReportStatus string

const (
	ReportPending   ReportStatus = "PENDING"
	ReportReviewed  ReportStatus = "REVIEWED"
	ReportDismissed ReportStatus = "DISMISSED"
)

type Report struct {
	ID         string       `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	BookID     string       `json:"bookId" gorm:"column:book_id"`
	ReportedBy string       `json:"reportedBy" gorm:"column:reported_by"`
	Reason     ReportReason `json:"reason" gorm:"column:reason"`
	Comment    string       `json:"comment"`
	Status     ReportStatus `json:"status" gorm:"type:varchar(20);default:'PENDING'"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

type ReportCreate struct {
	Reason  ReportReason `json:"reason" binding:"required"`
	Comment string       `json:"comment"`
}

type ReportStatusUpdate struct {
	Status ReportStatus `json:"status" binding:"required"`
}

func (Report) TableName() string {
	return "reports"
}
