package models

// Normalization of the legacy flat record shapes. A release goal or plan that
// arrived without nested items gets exactly one synthetic child manufactured
// from the parent's own fields, so downstream code only ever sees the nested
// shape.

// Normalize populates g.Goals from the flat fields when no nested goals are
// present. The synthetic item's id is the parent id suffixed "-item-1".
func (g *ReleaseGoal) Normalize() {
	if len(g.Goals) > 0 {
		return
	}
	g.Goals = []GoalItem{{
		ID:           g.ID + "-item-1",
		Description:  g.Description,
		CurrentState: g.CurrentState,
		TargetState:  g.TargetState,
	}}
}

// Normalize populates p.Items from the flat fields when no nested items are
// present.
func (p *ReleasePlan) Normalize() {
	if len(p.Items) > 0 {
		return
	}
	p.Items = []ReleasePlanItem{{
		ID:          p.ID + "-item-1",
		Title:       p.Title,
		Description: p.Description,
	}}
}
