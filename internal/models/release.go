package models

import "time"

// Release plan item categories.
const (
	PlanCategoryEnhancement   = "Enhancement"
	PlanCategoryBug           = "Bug"
	PlanCategoryImprovement   = "Improvement"
	PlanCategoryClarification = "Clarification"
	PlanCategoryTraining      = "Training"
)

// Release plan item priorities.
const (
	PlanPriorityHigh   = "High"
	PlanPriorityMedium = "Medium"
	PlanPriorityLow    = "Low"
)

// Release plan item sources.
const (
	PlanSourceInternal   = "Internal"
	PlanSourceCustomer   = "Customer"
	PlanSourceMarket     = "Market"
	PlanSourceRegulatory = "Regulatory"
	PlanSourceOther      = "Other"
)

// Release note types.
const (
	NoteTypeFeature     = "feature"
	NoteTypeEnhancement = "enhancement"
	NoteTypeFix         = "fix"
	NoteTypeOther       = "other"
)

// ReleaseGoal is a period-keyed release goal. Legacy documents carried the
// goal fields flat on the parent; current documents carry nested Goals. The
// codec normalizes both shapes into a populated Goals slice.
type ReleaseGoal struct {
	ID           string     `json:"id" bson:"id"`
	Month        int        `json:"month" bson:"month"`
	Year         int        `json:"year" bson:"year"`
	Version      float64    `json:"version" bson:"version"`
	CreatedAt    time.Time  `json:"createdAt" bson:"createdAt"`
	Description  string     `json:"description,omitempty" bson:"description,omitempty"`
	CurrentState string     `json:"currentState,omitempty" bson:"currentState,omitempty"`
	TargetState  string     `json:"targetState,omitempty" bson:"targetState,omitempty"`
	Goals        []GoalItem `json:"goals" bson:"goals"`
}

// GoalItem is a single goal within a release goal record.
type GoalItem struct {
	ID           string `json:"id" bson:"id"`
	Description  string `json:"description" bson:"description"`
	CurrentState string `json:"currentState,omitempty" bson:"currentState,omitempty"`
	TargetState  string `json:"targetState,omitempty" bson:"targetState,omitempty"`
	Status       string `json:"status,omitempty" bson:"status,omitempty"`
	Owner        string `json:"owner,omitempty" bson:"owner,omitempty"`
}

// ReleasePlan is a period-keyed release plan with the same flat-vs-nested
// history as ReleaseGoal.
type ReleasePlan struct {
	ID          string            `json:"id" bson:"id"`
	Month       int               `json:"month" bson:"month"`
	Year        int               `json:"year" bson:"year"`
	Version     float64           `json:"version" bson:"version"`
	CreatedAt   time.Time         `json:"createdAt" bson:"createdAt"`
	Title       string            `json:"title,omitempty" bson:"title,omitempty"`
	Description string            `json:"description,omitempty" bson:"description,omitempty"`
	Items       []ReleasePlanItem `json:"items" bson:"items"`
}

// ReleasePlanItem is a single planned work item.
type ReleasePlanItem struct {
	ID          string `json:"id" bson:"id"`
	Title       string `json:"title" bson:"title"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
	Category    string `json:"category,omitempty" bson:"category,omitempty"`
	Priority    string `json:"priority,omitempty" bson:"priority,omitempty"`
	Source      string `json:"source,omitempty" bson:"source,omitempty"`
	Owner       string `json:"owner,omitempty" bson:"owner,omitempty"`
	Status      string `json:"status,omitempty" bson:"status,omitempty"`
}

// ReleaseNote is a period-keyed pointer to published release notes.
type ReleaseNote struct {
	ID         string    `json:"id" bson:"id"`
	Month      int       `json:"month" bson:"month"`
	Year       int       `json:"year" bson:"year"`
	Version    float64   `json:"version" bson:"version"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
	Type       string    `json:"type,omitempty" bson:"type,omitempty"`
	Highlights string    `json:"highlights,omitempty" bson:"highlights,omitempty"`
	Link       string    `json:"link,omitempty" bson:"link,omitempty"`
}
