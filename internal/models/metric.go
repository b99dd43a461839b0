package models

import "time"

// Metric statuses.
const (
	MetricStatusOnTrack  = "on-track"
	MetricStatusAtRisk   = "at-risk"
	MetricStatusOffTrack = "off-track"
)

// Metric is a period-keyed group of metric items. Versions of the same
// (month, year) period accumulate; the display version is the one with the
// highest version number, tie-broken by CreatedAt.
type Metric struct {
	ID        string       `json:"id" bson:"id"`
	Month     int          `json:"month" bson:"month"`
	Year      int          `json:"year" bson:"year"`
	Version   float64      `json:"version" bson:"version"`
	CreatedAt time.Time    `json:"createdAt" bson:"createdAt"`
	Items     []MetricItem `json:"items" bson:"items"`
}

// MetricItem is a single measurement within a metric group.
type MetricItem struct {
	ID            string  `json:"id" bson:"id"`
	Name          string  `json:"name" bson:"name"`
	Value         float64 `json:"value" bson:"value"`
	PreviousValue float64 `json:"previousValue" bson:"previousValue"`
	Unit          string  `json:"unit" bson:"unit"`
	MonthlyTarget float64 `json:"monthlyTarget" bson:"monthlyTarget"`
	AnnualTarget  float64 `json:"annualTarget" bson:"annualTarget"`
	Status        string  `json:"status" bson:"status"`
	Notes         string  `json:"notes,omitempty" bson:"notes,omitempty"`
	Owner         string  `json:"owner,omitempty" bson:"owner,omitempty"`
	Category      string  `json:"category,omitempty" bson:"category,omitempty"`
	Source        string  `json:"source,omitempty" bson:"source,omitempty"`
}
