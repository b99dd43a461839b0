package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"portal-server/internal/models"
	"portal-server/pkg/errors"
)

const (
	productCollection   = "products"
	portfolioCollection = "portfolios"
)

// ProductRepository persists product and portfolio documents in the document
// database. Records inside a product are append-only; the repository always
// writes whole aggregates.
type ProductRepository struct {
	products   *mongo.Collection
	portfolios *mongo.Collection
}

// NewProductRepository creates a repository over the given database.
func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{
		products:   db.Collection(productCollection),
		portfolios: db.Collection(portfolioCollection),
	}
}

// UpsertProduct replaces the stored product document, inserting it when new.
func (r *ProductRepository) UpsertProduct(ctx context.Context, product *models.Product) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := r.products.ReplaceOne(ctx, bson.M{"_id": product.ID}, product, opts); err != nil {
		return errors.NewAppError(errors.ErrStorage, "failed to upsert product "+product.ID, err)
	}
	return nil
}

// FindProduct loads one product by id.
func (r *ProductRepository) FindProduct(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := r.products.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return nil, errors.NewAppError(errors.ErrNotFound, "product not found: "+id, err)
	}
	if err != nil {
		return nil, errors.NewAppError(errors.ErrStorage, "failed to load product "+id, err)
	}
	return &product, nil
}

// UpsertPortfolio replaces the stored portfolio document, inserting it when
// new.
func (r *ProductRepository) UpsertPortfolio(ctx context.Context, portfolio *models.Portfolio) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := r.portfolios.ReplaceOne(ctx, bson.M{"_id": portfolio.ID}, portfolio, opts); err != nil {
		return errors.NewAppError(errors.ErrStorage, "failed to upsert portfolio "+portfolio.ID, err)
	}
	return nil
}

// FindAllPortfolios loads every portfolio document in insertion order.
func (r *ProductRepository) FindAllPortfolios(ctx context.Context) ([]models.Portfolio, error) {
	cursor, err := r.portfolios.Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.NewAppError(errors.ErrStorage, "failed to list portfolios", err)
	}
	defer cursor.Close(ctx)

	portfolios := []models.Portfolio{}
	if err := cursor.All(ctx, &portfolios); err != nil {
		return nil, errors.NewAppError(errors.ErrStorage, "failed to decode portfolios", err)
	}
	return portfolios, nil
}
