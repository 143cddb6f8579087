package models

import "time"

// Report statuses. Transitions only move forward, see services.ReportService.
const (
	StatusPending   = "pending"
	StatusCollected = "collected"
	StatusVerified  = "verified"
)

// Report is a user-submitted record of observed waste at a location.
type Report struct {
	Model
	UserID             uint   `json:"user_id" gorm:"not null;index"`
	Location           string `json:"location" gorm:"type:varchar(255)"`
	WasteType          string `json:"waste_type"`
	Amount             string `json:"amount"`
	ImageURL           string `json:"image_url"`
	VerificationResult string `json:"verification_result" gorm:"type:jsonb"`
	Status             string `json:"status" gorm:"default:pending;index"`
	CollectorID        *uint  `json:"collector_id"`
}

// CollectedWaste records a confirmed physical pickup of a reported waste.
type CollectedWaste struct {
	Model
	ReportID       uint      `json:"report_id" gorm:"not null;index"`
	CollectorID    uint      `json:"collector_id" gorm:"not null"`
	CollectionDate time.Time `json:"collection_date"`
	Status         string    `json:"status"`
}

type CreateReportRequest struct {
	Location           string `json:"location" form:"location" binding:"required"`
	WasteType          string `json:"waste_type" form:"waste_type" binding:"required"`
	Amount             string `json:"amount" form:"amount" binding:"required"`
	ImageData          string `json:"image_data" form:"image_data"` // optional base64 data URL
	VerificationResult string `json:"verification_result" form:"verification_result" binding:"required"`
}

type UpdateStatusRequest struct {
	Status      string `json:"status" binding:"required"`
	CollectorID *uint  `json:"collector_id"`
}

type CollectRequest struct {
	VerificationResult string `json:"verification_result"`
}

// CollectionTask is the collector-facing view of a report.
type CollectionTask struct {
	ID          uint      `json:"id"`
	Location    string    `json:"location"`
	WasteType   string    `json:"waste_type"`
	Amount      string    `json:"amount"`
	Status      string    `json:"status"`
	Date        time.Time `json:"date"`
	CollectorID *uint     `json:"collector_id"`
}

// ImpactStats aggregates the community totals shown on the landing page.
type ImpactStats struct {
	WasteCollectedKg float64 `json:"waste_collected_kg"`
	ReportsSubmitted int64   `json:"reports_submitted"`
	TokensEarned     int64   `json:"tokens_earned"`
	CO2OffsetKg      float64 `json:"co2_offset_kg"`
}
