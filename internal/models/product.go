package models

// Product is the aggregate every record category hangs off. Each category is
// an append-only sequence of period-stamped, versioned records; older
// versions are never removed.
type Product struct {
	ID           string             `json:"id" bson:"_id"`
	Name         string             `json:"name" bson:"name"`
	Description  string             `json:"description,omitempty" bson:"description,omitempty"`
	Metrics      []Metric           `json:"metrics" bson:"metrics"`
	Roadmap      []Roadmap          `json:"roadmap" bson:"roadmap"`
	ReleaseGoals []ReleaseGoal      `json:"releaseGoals" bson:"releaseGoals"`
	ReleasePlans []ReleasePlan      `json:"releasePlans" bson:"releasePlans"`
	ReleaseNotes []ReleaseNote      `json:"releaseNotes" bson:"releaseNotes"`
	Objectives   []ProductObjective `json:"objectives,omitempty" bson:"objectives,omitempty"`
}

// Skeleton returns a product with identity fields populated and all record
// lists empty. Used when a product's backing file cannot be loaded.
func Skeleton(id, name, description string) Product {
	return Product{
		ID:           id,
		Name:         name,
		Description:  description,
		Metrics:      []Metric{},
		Roadmap:      []Roadmap{},
		ReleaseGoals: []ReleaseGoal{},
		ReleasePlans: []ReleasePlan{},
		ReleaseNotes: []ReleaseNote{},
	}
}

// RecordCount returns the total number of records across all categories.
func (p *Product) RecordCount() int {
	return len(p.Metrics) + len(p.Roadmap) + len(p.ReleaseGoals) +
		len(p.ReleasePlans) + len(p.ReleaseNotes) + len(p.Objectives)
}
