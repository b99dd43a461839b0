package models

import "time"

// Objective statuses.
const (
	ObjectiveStatusNotStarted = "Not Started"
	ObjectiveStatusInProgress = "In Progress"
	ObjectiveStatusCompleted  = "Completed"
)

// ProductObjective is an OKR-style objective. Versioning is keyed by
// (productId, title) rather than by period.
type ProductObjective struct {
	ID               string            `json:"id" bson:"id"`
	Title            string            `json:"title" bson:"title"`
	Description      string            `json:"description,omitempty" bson:"description,omitempty"`
	ProductID        string            `json:"productId" bson:"productId"`
	Status           string            `json:"status" bson:"status"`
	Priority         int               `json:"priority" bson:"priority"`
	Initiatives      []Initiative      `json:"initiatives" bson:"initiatives"`
	ExpectedBenefits []ExpectedBenefit `json:"expectedBenefits" bson:"expectedBenefits"`
	CreatedAt        time.Time         `json:"createdAt" bson:"createdAt"`
	Version          float64           `json:"version" bson:"version"`
}

// Initiative is one workstream under an objective.
type Initiative struct {
	ID          string `json:"id" bson:"id"`
	Title       string `json:"title" bson:"title"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
	Status      string `json:"status,omitempty" bson:"status,omitempty"`
}

// ExpectedBenefit is one measurable benefit an objective targets.
type ExpectedBenefit struct {
	ID          string `json:"id" bson:"id"`
	Title       string `json:"title" bson:"title"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
	MetricType  string `json:"metricType,omitempty" bson:"metricType,omitempty"`
	TargetValue string `json:"targetValue,omitempty" bson:"targetValue,omitempty"`
}
