package models

// Portfolio groups products as listed in the portfolio index document.
// Product order is the insertion order from the index.
type Portfolio struct {
	ID          string    `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Products    []Product `json:"products" bson:"products"`
}

// FindProduct returns the product with the given id, or nil.
func (p *Portfolio) FindProduct(productID string) *Product {
	for i := range p.Products {
		if p.Products[i].ID == productID {
			return &p.Products[i]
		}
	}
	return nil
}
