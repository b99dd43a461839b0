package models

import "time"

// Roadmap statuses.
const (
	RoadmapStatusPlanned    = "planned"
	RoadmapStatusInProgress = "in-progress"
	RoadmapStatusCompleted  = "completed"
	RoadmapStatusDelayed    = "delayed"
)

// Roadmap is a quarterly roadmap entry. The version is numeric in memory and
// converted to/from its historical string form at the XML boundary only.
type Roadmap struct {
	ID          string    `json:"id" bson:"id"`
	Year        int       `json:"year" bson:"year"`
	Quarter     int       `json:"quarter" bson:"quarter"`
	Version     float64   `json:"version" bson:"version"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Status      string    `json:"status" bson:"status"`
	Link        string    `json:"link,omitempty" bson:"link,omitempty"`
}
