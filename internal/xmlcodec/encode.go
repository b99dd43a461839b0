package xmlcodec

import (
	"strconv"
	"strings"
	"time"

	"portal-server/internal/models"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

// attrs accumulates escaped attributes for one element.
type attrs struct {
	b strings.Builder
}

func (a *attrs) str(name, value string) *attrs {
	if value == "" {
		return a
	}
	a.b.WriteByte(' ')
	a.b.WriteString(name)
	a.b.WriteString(`="`)
	a.b.WriteString(EscapeXML(value))
	a.b.WriteByte('"')
	return a
}

// id always emits, even when empty, so a record without an id still
// round-trips as a record.
func (a *attrs) id(name, value string) *attrs {
	a.b.WriteByte(' ')
	a.b.WriteString(name)
	a.b.WriteString(`="`)
	a.b.WriteString(EscapeXML(value))
	a.b.WriteByte('"')
	return a
}

func (a *attrs) num(name string, value float64) *attrs {
	a.b.WriteByte(' ')
	a.b.WriteString(name)
	a.b.WriteString(`="`)
	a.b.WriteString(strconv.FormatFloat(value, 'f', -1, 64))
	a.b.WriteByte('"')
	return a
}

func (a *attrs) intn(name string, value int) *attrs {
	a.b.WriteByte(' ')
	a.b.WriteString(name)
	a.b.WriteString(`="`)
	a.b.WriteString(strconv.Itoa(value))
	a.b.WriteByte('"')
	return a
}

func (a *attrs) time(name string, value time.Time) *attrs {
	if value.IsZero() {
		return a
	}
	a.b.WriteByte(' ')
	a.b.WriteString(name)
	a.b.WriteString(`="`)
	a.b.WriteString(value.UTC().Format(time.RFC3339))
	a.b.WriteByte('"')
	return a
}

func (a *attrs) String() string {
	return a.b.String()
}

// EncodeProduct renders one product aggregate as a standalone XML document.
// Sections with zero records are omitted entirely.
func EncodeProduct(p *models.Product) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	writeProduct(&b, p, "")
	return b.String()
}

func writeProduct(b *strings.Builder, p *models.Product, indent string) {
	pa := &attrs{}
	pa.id("id", p.ID).str("name", p.Name).str("description", p.Description)
	b.WriteString(indent + "<Product" + pa.String() + ">\n")

	inner := indent + "  "
	writeMetrics(b, p.Metrics, inner)
	writeRoadmaps(b, p.Roadmap, inner)
	writeReleaseGoals(b, p.ReleaseGoals, inner)
	writeReleasePlans(b, p.ReleasePlans, inner)
	writeReleaseNotes(b, p.ReleaseNotes, inner)
	writeObjectives(b, p.Objectives, inner)

	b.WriteString(indent + "</Product>\n")
}

func writeMetrics(b *strings.Builder, metrics []models.Metric, indent string) {
	if len(metrics) == 0 {
		return
	}
	b.WriteString(indent + "<Metrics>\n")
	for i := range metrics {
		m := &metrics[i]
		a := &attrs{}
		a.id("id", m.ID).intn("month", m.Month).intn("year", m.Year).
			num("version", m.Version).time("createdAt", m.CreatedAt)
		b.WriteString(indent + "  <Metric" + a.String() + ">\n")
		for j := range m.Items {
			it := &m.Items[j]
			ia := &attrs{}
			ia.id("id", it.ID).str("name", it.Name).
				num("value", it.Value).num("previousValue", it.PreviousValue).
				str("unit", it.Unit).
				num("monthlyTarget", it.MonthlyTarget).num("annualTarget", it.AnnualTarget).
				str("status", it.Status).str("notes", it.Notes).
				str("owner", it.Owner).str("category", it.Category).str("source", it.Source)
			b.WriteString(indent + "    <MetricItem" + ia.String() + "/>\n")
		}
		b.WriteString(indent + "  </Metric>\n")
	}
	b.WriteString(indent + "</Metrics>\n")
}

func writeRoadmaps(b *strings.Builder, roadmaps []models.Roadmap, indent string) {
	if len(roadmaps) == 0 {
		return
	}
	b.WriteString(indent + "<Roadmaps>\n")
	for i := range roadmaps {
		r := &roadmaps[i]
		a := &attrs{}
		// The roadmap version has always been stored as a string attribute;
		// the numeric in-memory value converts here and nowhere else.
		a.id("id", r.ID).intn("year", r.Year).intn("quarter", r.Quarter).
			str("version", strconv.FormatFloat(r.Version, 'f', -1, 64)).
			time("createdAt", r.CreatedAt).
			str("title", r.Title).str("description", r.Description).
			str("status", r.Status).str("link", r.Link)
		b.WriteString(indent + "  <Roadmap" + a.String() + "/>\n")
	}
	b.WriteString(indent + "</Roadmaps>\n")
}

func writeReleaseGoals(b *strings.Builder, goals []models.ReleaseGoal, indent string) {
	if len(goals) == 0 {
		return
	}
	b.WriteString(indent + "<ReleaseGoals>\n")
	for i := range goals {
		g := &goals[i]
		a := &attrs{}
		a.id("id", g.ID).intn("month", g.Month).intn("year", g.Year).
			num("version", g.Version).time("createdAt", g.CreatedAt).
			str("description", g.Description).
			str("currentState", g.CurrentState).str("targetState", g.TargetState)
		b.WriteString(indent + "  <ReleaseGoal" + a.String() + ">\n")
		for j := range g.Goals {
			it := &g.Goals[j]
			ia := &attrs{}
			ia.id("id", it.ID).str("description", it.Description).
				str("currentState", it.CurrentState).str("targetState", it.TargetState).
				str("status", it.Status).str("owner", it.Owner)
			b.WriteString(indent + "    <Goal" + ia.String() + "/>\n")
		}
		b.WriteString(indent + "  </ReleaseGoal>\n")
	}
	b.WriteString(indent + "</ReleaseGoals>\n")
}

func writeReleasePlans(b *strings.Builder, plans []models.ReleasePlan, indent string) {
	if len(plans) == 0 {
		return
	}
	b.WriteString(indent + "<ReleasePlans>\n")
	for i := range plans {
		p := &plans[i]
		a := &attrs{}
		a.id("id", p.ID).intn("month", p.Month).intn("year", p.Year).
			num("version", p.Version).time("createdAt", p.CreatedAt).
			str("title", p.Title).str("description", p.Description)
		b.WriteString(indent + "  <ReleasePlan" + a.String() + ">\n")
		for j := range p.Items {
			it := &p.Items[j]
			ia := &attrs{}
			ia.id("id", it.ID).str("title", it.Title).str("description", it.Description).
				str("category", it.Category).str("priority", it.Priority).
				str("source", it.Source).str("owner", it.Owner).str("status", it.Status)
			b.WriteString(indent + "    <PlanItem" + ia.String() + "/>\n")
		}
		b.WriteString(indent + "  </ReleasePlan>\n")
	}
	b.WriteString(indent + "</ReleasePlans>\n")
}

func writeReleaseNotes(b *strings.Builder, notes []models.ReleaseNote, indent string) {
	if len(notes) == 0 {
		return
	}
	b.WriteString(indent + "<ReleaseNotes>\n")
	for i := range notes {
		n := &notes[i]
		a := &attrs{}
		a.id("id", n.ID).intn("month", n.Month).intn("year", n.Year).
			num("version", n.Version).time("createdAt", n.CreatedAt).
			str("type", n.Type).str("highlights", n.Highlights).str("link", n.Link)
		b.WriteString(indent + "  <ReleaseNote" + a.String() + "/>\n")
	}
	b.WriteString(indent + "</ReleaseNotes>\n")
}

func writeObjectives(b *strings.Builder, objectives []models.ProductObjective, indent string) {
	if len(objectives) == 0 {
		return
	}
	b.WriteString(indent + "<Objectives>\n")
	for i := range objectives {
		o := &objectives[i]
		a := &attrs{}
		a.id("id", o.ID).str("title", o.Title).str("description", o.Description).
			str("productId", o.ProductID).str("status", o.Status).
			intn("priority", o.Priority).time("createdAt", o.CreatedAt).
			num("version", o.Version)
		b.WriteString(indent + "  <Objective" + a.String() + ">\n")
		for j := range o.Initiatives {
			it := &o.Initiatives[j]
			ia := &attrs{}
			ia.id("id", it.ID).str("title", it.Title).
				str("description", it.Description).str("status", it.Status)
			b.WriteString(indent + "    <Initiative" + ia.String() + "/>\n")
		}
		for j := range o.ExpectedBenefits {
			eb := &o.ExpectedBenefits[j]
			ea := &attrs{}
			ea.id("id", eb.ID).str("title", eb.Title).str("description", eb.Description).
				str("metricType", eb.MetricType).str("targetValue", eb.TargetValue)
			b.WriteString(indent + "    <ExpectedBenefit" + ea.String() + "/>\n")
		}
		b.WriteString(indent + "  </Objective>\n")
	}
	b.WriteString(indent + "</Objectives>\n")
}

// EncodePortfolios renders the combined portfolio document: every portfolio
// and its full product record set under a single <Portfolios> wrapper.
func EncodePortfolios(portfolios []models.Portfolio) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString("<Portfolios>\n")
	for i := range portfolios {
		pf := &portfolios[i]
		a := &attrs{}
		a.id("id", pf.ID).str("name", pf.Name).str("description", pf.Description)
		b.WriteString("  <Portfolio" + a.String() + ">\n")
		for j := range pf.Products {
			writeProduct(&b, &pf.Products[j], "    ")
		}
		b.WriteString("  </Portfolio>\n")
	}
	b.WriteString("</Portfolios>\n")
	return b.String()
}
