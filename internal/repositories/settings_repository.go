package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"portal-server/internal/storage"
	"portal-server/pkg/errors"
)

const settingsCollection = "settings"

// settingsDocID is the fixed id of the single storage-settings document.
const settingsDocID = "storage"

// SettingsRepository persists the runtime storage configuration.
type SettingsRepository struct {
	collection *mongo.Collection
}

// NewSettingsRepository creates a repository over the given database.
func NewSettingsRepository(db *mongo.Database) *SettingsRepository {
	return &SettingsRepository{collection: db.Collection(settingsCollection)}
}

type settingsDoc struct {
	ID       string           `bson:"_id"`
	Settings storage.Settings `bson:"settings"`
}

// Save stores the storage settings, replacing any previous ones.
func (r *SettingsRepository) Save(ctx context.Context, settings storage.Settings) error {
	doc := settingsDoc{ID: settingsDocID, Settings: settings}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": settingsDocID}, doc, opts); err != nil {
		return errors.NewAppError(errors.ErrStorage, "failed to save storage settings", err)
	}
	return nil
}

// Load returns the stored storage settings, or NOT_FOUND when none have been
// saved yet.
func (r *SettingsRepository) Load(ctx context.Context) (*storage.Settings, error) {
	var doc settingsDoc
	err := r.collection.FindOne(ctx, bson.M{"_id": settingsDocID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, errors.NewAppError(errors.ErrNotFound, "no storage settings saved", err)
	}
	if err != nil {
		return nil, errors.NewAppError(errors.ErrStorage, "failed to load storage settings", err)
	}
	return &doc.Settings, nil
}
