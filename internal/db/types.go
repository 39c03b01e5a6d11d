package db

import (
	"time"

	"github.com/google/uuid"
)

// Run represents a content generation run record
type Run struct {
	ID            uuid.UUID  `json:"id"`
	WebsiteURL    string     `json:"website_url"`
	LeadObjective string     `json:"lead_objective"`
	Company       string     `json:"company,omitempty"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

// Run status values
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Artifact step constants for the artifacts a run stores
const (
	StepCampaignGoals    = "campaign_goals"
	StepCompanyProfile   = "company_profile"
	StepDocumentText     = "document_text"
	StepGenerationResult = "generation_result"
)
