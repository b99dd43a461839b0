package xmlcodec

import (
	"portal-server/internal/models"
	"portal-server/pkg/errors"
)

// DecodeProduct parses a product document. The product element may be the
// document root or embedded anywhere inside a <Portfolios> document; a
// missing record section yields an empty list, never an error.
func DecodeProduct(data []byte) (*models.Product, error) {
	root, err := parseTree(data)
	if err != nil {
		return nil, err
	}

	productNode := root.find("Product")
	if productNode == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "no Product element in document", nil)
	}

	return decodeProductNode(productNode), nil
}

// DecodePortfolios parses a combined portfolio document.
func DecodePortfolios(data []byte) ([]models.Portfolio, error) {
	root, err := parseTree(data)
	if err != nil {
		return nil, err
	}

	wrapper := root.find("Portfolios")
	if wrapper == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "no Portfolios element in document", nil)
	}

	portfolios := []models.Portfolio{}
	for _, pf := range wrapper.children("Portfolio") {
		portfolio := models.Portfolio{
			ID:          pf.attr("id"),
			Name:        pf.attr("name"),
			Description: pf.attr("description"),
			Products:    []models.Product{},
		}
		for _, pn := range pf.children("Product") {
			portfolio.Products = append(portfolio.Products, *decodeProductNode(pn))
		}
		portfolios = append(portfolios, portfolio)
	}
	return portfolios, nil
}

func decodeProductNode(pn *node) *models.Product {
	p := &models.Product{
		ID:           pn.attr("id"),
		Name:         pn.attr("name"),
		Description:  pn.attr("description"),
		Metrics:      []models.Metric{},
		Roadmap:      []models.Roadmap{},
		ReleaseGoals: []models.ReleaseGoal{},
		ReleasePlans: []models.ReleasePlan{},
		ReleaseNotes: []models.ReleaseNote{},
	}

	if section := pn.child("Metrics"); section != nil {
		for _, mn := range section.children("Metric") {
			p.Metrics = append(p.Metrics, decodeMetric(mn))
		}
	}
	if section := pn.child("Roadmaps"); section != nil {
		for _, rn := range section.children("Roadmap") {
			p.Roadmap = append(p.Roadmap, decodeRoadmap(rn))
		}
	}
	if section := pn.child("ReleaseGoals"); section != nil {
		for _, gn := range section.children("ReleaseGoal") {
			p.ReleaseGoals = append(p.ReleaseGoals, decodeReleaseGoal(gn))
		}
	}
	if section := pn.child("ReleasePlans"); section != nil {
		for _, rp := range section.children("ReleasePlan") {
			p.ReleasePlans = append(p.ReleasePlans, decodeReleasePlan(rp))
		}
	}
	if section := pn.child("ReleaseNotes"); section != nil {
		for _, nn := range section.children("ReleaseNote") {
			p.ReleaseNotes = append(p.ReleaseNotes, decodeReleaseNote(nn))
		}
	}
	if section := pn.child("Objectives"); section != nil {
		for _, on := range section.children("Objective") {
			p.Objectives = append(p.Objectives, decodeObjective(on))
		}
	}

	return p
}

func decodeMetric(mn *node) models.Metric {
	m := models.Metric{
		ID:        mn.attr("id"),
		Month:     mn.attrInt("month"),
		Year:      mn.attrInt("year"),
		Version:   mn.attrFloat("version"),
		CreatedAt: mn.attrTime("createdAt"),
		Items:     []models.MetricItem{},
	}
	for _, in := range mn.children("MetricItem") {
		m.Items = append(m.Items, models.MetricItem{
			ID:            in.attr("id"),
			Name:          in.attr("name"),
			Value:         in.attrFloat("value"),
			PreviousValue: in.attrFloat("previousValue"),
			Unit:          in.attr("unit"),
			MonthlyTarget: in.attrFloat("monthlyTarget"),
			AnnualTarget:  in.attrFloat("annualTarget"),
			Status:        in.attr("status"),
			Notes:         in.attr("notes"),
			Owner:         in.attr("owner"),
			Category:      in.attr("category"),
			Source:        in.attr("source"),
		})
	}
	return m
}

func decodeRoadmap(rn *node) models.Roadmap {
	return models.Roadmap{
		ID:      rn.attr("id"),
		Year:    rn.attrInt("year"),
		Quarter: rn.attrInt("quarter"),
		// Stored as a string attribute; permissive parse keeps malformed
		// versions at 0 instead of failing the document.
		Version:     rn.attrFloat("version"),
		CreatedAt:   rn.attrTime("createdAt"),
		Title:       rn.attr("title"),
		Description: rn.attr("description"),
		Status:      rn.attr("status"),
		Link:        rn.attr("link"),
	}
}

func decodeReleaseGoal(gn *node) models.ReleaseGoal {
	g := models.ReleaseGoal{
		ID:           gn.attr("id"),
		Month:        gn.attrInt("month"),
		Year:         gn.attrInt("year"),
		Version:      gn.attrFloat("version"),
		CreatedAt:    gn.attrTime("createdAt"),
		Description:  gn.attr("description"),
		CurrentState: gn.attr("currentState"),
		TargetState:  gn.attr("targetState"),
		Goals:        []models.GoalItem{},
	}
	for _, in := range gn.children("Goal") {
		g.Goals = append(g.Goals, models.GoalItem{
			ID:           in.attr("id"),
			Description:  in.attr("description"),
			CurrentState: in.attr("currentState"),
			TargetState:  in.attr("targetState"),
			Status:       in.attr("status"),
			Owner:        in.attr("owner"),
		})
	}
	g.Normalize()
	return g
}

func decodeReleasePlan(pn *node) models.ReleasePlan {
	p := models.ReleasePlan{
		ID:          pn.attr("id"),
		Month:       pn.attrInt("month"),
		Year:        pn.attrInt("year"),
		Version:     pn.attrFloat("version"),
		CreatedAt:   pn.attrTime("createdAt"),
		Title:       pn.attr("title"),
		Description: pn.attr("description"),
		Items:       []models.ReleasePlanItem{},
	}
	for _, in := range pn.children("PlanItem") {
		p.Items = append(p.Items, models.ReleasePlanItem{
			ID:          in.attr("id"),
			Title:       in.attr("title"),
			Description: in.attr("description"),
			Category:    in.attr("category"),
			Priority:    in.attr("priority"),
			Source:      in.attr("source"),
			Owner:       in.attr("owner"),
			Status:      in.attr("status"),
		})
	}
	p.Normalize()
	return p
}

func decodeReleaseNote(nn *node) models.ReleaseNote {
	return models.ReleaseNote{
		ID:         nn.attr("id"),
		Month:      nn.attrInt("month"),
		Year:       nn.attrInt("year"),
		Version:    nn.attrFloat("version"),
		CreatedAt:  nn.attrTime("createdAt"),
		Type:       nn.attr("type"),
		Highlights: nn.attr("highlights"),
		Link:       nn.attr("link"),
	}
}

func decodeObjective(on *node) models.ProductObjective {
	o := models.ProductObjective{
		ID:               on.attr("id"),
		Title:            on.attr("title"),
		Description:      on.attr("description"),
		ProductID:        on.attr("productId"),
		Status:           on.attr("status"),
		Priority:         on.attrInt("priority"),
		CreatedAt:        on.attrTime("createdAt"),
		Version:          on.attrFloat("version"),
		Initiatives:      []models.Initiative{},
		ExpectedBenefits: []models.ExpectedBenefit{},
	}
	for _, in := range on.children("Initiative") {
		o.Initiatives = append(o.Initiatives, models.Initiative{
			ID:          in.attr("id"),
			Title:       in.attr("title"),
			Description: in.attr("description"),
			Status:      in.attr("status"),
		})
	}
	for _, bn := range on.children("ExpectedBenefit") {
		o.ExpectedBenefits = append(o.ExpectedBenefits, models.ExpectedBenefit{
			ID:          bn.attr("id"),
			Title:       bn.attr("title"),
			Description: bn.attr("description"),
			MetricType:  bn.attr("metricType"),
			TargetValue: bn.attr("targetValue"),
		})
	}
	return o
}
