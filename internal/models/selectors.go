package models

// The UI only displays the latest version within each period group; every
// older version stays stored. Latest means highest version number, with
// CreatedAt breaking ties.

func newer(version, latestVersion float64, createdAt, latestCreatedAt int64) bool {
	if version != latestVersion {
		return version > latestVersion
	}
	return createdAt > latestCreatedAt
}

// LatestMetric returns the display version of the (month, year) metric group,
// or nil when the group has no records.
func LatestMetric(metrics []Metric, month, year int) *Metric {
	var latest *Metric
	for i := range metrics {
		m := &metrics[i]
		if m.Month != month || m.Year != year {
			continue
		}
		if latest == nil || newer(m.Version, latest.Version, m.CreatedAt.UnixNano(), latest.CreatedAt.UnixNano()) {
			latest = m
		}
	}
	return latest
}

// LatestRoadmap returns the display version of the (year, quarter) roadmap
// group, or nil.
func LatestRoadmap(roadmaps []Roadmap, year, quarter int) *Roadmap {
	var latest *Roadmap
	for i := range roadmaps {
		r := &roadmaps[i]
		if r.Year != year || r.Quarter != quarter {
			continue
		}
		if latest == nil || newer(r.Version, latest.Version, r.CreatedAt.UnixNano(), latest.CreatedAt.UnixNano()) {
			latest = r
		}
	}
	return latest
}

// LatestReleaseGoal returns the display version of the (month, year) release
// goal group, or nil.
func LatestReleaseGoal(goals []ReleaseGoal, month, year int) *ReleaseGoal {
	var latest *ReleaseGoal
	for i := range goals {
		g := &goals[i]
		if g.Month != month || g.Year != year {
			continue
		}
		if latest == nil || newer(g.Version, latest.Version, g.CreatedAt.UnixNano(), latest.CreatedAt.UnixNano()) {
			latest = g
		}
	}
	return latest
}

// LatestReleasePlan returns the display version of the (month, year) release
// plan group, or nil.
func LatestReleasePlan(plans []ReleasePlan, month, year int) *ReleasePlan {
	var latest *ReleasePlan
	for i := range plans {
		p := &plans[i]
		if p.Month != month || p.Year != year {
			continue
		}
		if latest == nil || newer(p.Version, latest.Version, p.CreatedAt.UnixNano(), latest.CreatedAt.UnixNano()) {
			latest = p
		}
	}
	return latest
}

// LatestReleaseNote returns the display version of the (month, year) release
// note group, or nil.
func LatestReleaseNote(notes []ReleaseNote, month, year int) *ReleaseNote {
	var latest *ReleaseNote
	for i := range notes {
		n := &notes[i]
		if n.Month != month || n.Year != year {
			continue
		}
		if latest == nil || newer(n.Version, latest.Version, n.CreatedAt.UnixNano(), latest.CreatedAt.UnixNano()) {
			latest = n
		}
	}
	return latest
}

// LatestObjective returns the display version of the objective with the given
// title, or nil. Objectives are versioned by title, not by period.
func LatestObjective(objectives []ProductObjective, title string) *ProductObjective {
	var latest *ProductObjective
	for i := range objectives {
		o := &objectives[i]
		if o.Title != title {
			continue
		}
		if latest == nil || newer(o.Version, latest.Version, o.CreatedAt.UnixNano(), latest.CreatedAt.UnixNano()) {
			latest = o
		}
	}
	return latest
}
