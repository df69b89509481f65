package feedback

import "time"

// Feedback is a rating left on a service, optionally for a single step.
type Feedback struct {
	ID          int64     `json:"feedback_id"`
	ServiceID   int64     `json:"service_id"`
	ServiceName string    `json:"service_name"`
	StepNumber  *int32    `json:"step_number"`
	Rating      int32     `json:"rating"`
	Comment     string    `json:"comment"`
	CreatedAt   time.Time `json:"created_at"`
}

// SubmitRequest is the public payload for leaving feedback.
type SubmitRequest struct {
	ServiceID   int64  `json:"service_id"`
	ServiceName string `json:"service_name" validate:"max=255"`
	StepNumber  *int32 `json:"step_number" validate:"omitempty,min=1"`
	Rating      int32  `json:"rating" validate:"min=1,max=5"`
	Comment     string `json:"comment" validate:"max=2000"`
}

// ServiceSummary aggregates ratings for one service.
type ServiceSummary struct {
	ServiceName    string   `json:"service_name"`
	AvgRating      *float64 `json:"avg_rating"`
	TotalFeedbacks int64    `json:"total_feedbacks"`
}

// Report is the admin view of all feedback.
type Report struct {
	Feedback []Feedback       `json:"feedback"`
	Summary  []ServiceSummary `json:"summary"`
}

// StepRating aggregates ratings for one step of a service.
type StepRating struct {
	StepNumber *int32  `json:"step_number"`
	AvgRating  float64 `json:"avg_rating"`
	Count      int64   `json:"count"`
}
