package xmlcodec

import (
	"strings"

	"portal-server/pkg/errors"
)

// IndexPortfolio is one portfolio entry from the portfolio index document.
type IndexPortfolio struct {
	ID       string
	Name     string
	Products []IndexProduct
}

// IndexProduct maps a product to the path of its backing XML file.
type IndexProduct struct {
	ID          string
	Name        string
	Description string
	Filepath    string
}

// DecodePortfolioIndex parses the <ProductPortal> index document listing
// portfolios, their products and each product's file path.
func DecodePortfolioIndex(data []byte) ([]IndexPortfolio, error) {
	root, err := parseTree(data)
	if err != nil {
		return nil, err
	}

	wrapper := root.find("Portfolios")
	if wrapper == nil {
		return nil, errors.NewAppError(errors.ErrParse, "index document has no Portfolios element", nil)
	}

	index := []IndexPortfolio{}
	for _, pf := range wrapper.children("Portfolio") {
		entry := IndexPortfolio{
			ID:       pf.attr("id"),
			Name:     pf.attr("name"),
			Products: []IndexProduct{},
		}
		products := pf.child("Products")
		if products == nil {
			index = append(index, entry)
			continue
		}
		for _, pn := range products.children("Product") {
			entry.Products = append(entry.Products, IndexProduct{
				ID:          pn.attr("id"),
				Name:        pn.attr("name"),
				Description: pn.attr("description"),
				Filepath:    pn.attr("filepath"),
			})
		}
		index = append(index, entry)
	}
	return index, nil
}

// EncodePortfolioIndex renders the index document. Used when a new product is
// registered so the index stays the single source of file locations.
func EncodePortfolioIndex(index []IndexPortfolio) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString("<ProductPortal>\n  <Portfolios>\n")
	for i := range index {
		pf := &index[i]
		a := &attrs{}
		a.id("id", pf.ID).str("name", pf.Name)
		b.WriteString("    <Portfolio" + a.String() + ">\n")
		b.WriteString("      <Products>\n")
		for j := range pf.Products {
			p := &pf.Products[j]
			pa := &attrs{}
			pa.id("id", p.ID).str("name", p.Name).
				str("description", p.Description).str("filepath", p.Filepath)
			b.WriteString("        <Product" + pa.String() + "/>\n")
		}
		b.WriteString("      </Products>\n")
		b.WriteString("    </Portfolio>\n")
	}
	b.WriteString("  </Portfolios>\n</ProductPortal>\n")
	return b.String()
}
