package services

import (
	"context"
	stderrors "errors"
	"net/http"

	"explorerhub/models"
	"explorerhub/utils/errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DraftStore persists one trip draft per owner.
type DraftStore interface {
	Get(ctx context.Context, ownerID string) (*models.TripDraft, error)
	// Save upserts the owner's draft and returns the stored copy. The id and
	// creation time of an existing draft are kept.
	Save(ctx context.Context, draft *models.TripDraft) (*models.TripDraft, error)
	Delete(ctx context.Context, ownerID string) error
}

type MongoDraftStore struct {
	collection *mongo.Collection
}

func NewMongoDraftStore(db *mongo.Database) *MongoDraftStore {
	return &MongoDraftStore{collection: db.Collection("trip_drafts")}
}

// EnsureIndexes makes owner_id unique so each user has a single draft.
func (s *MongoDraftStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "owner_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (s *MongoDraftStore) Get(ctx context.Context, ownerID string) (*models.TripDraft, error) {
	var draft models.TripDraft
	err := s.collection.FindOne(ctx, bson.M{"owner_id": ownerID}).Decode(&draft)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "DB_ERROR", "Failed to load trip draft", http.StatusInternalServerError)
	}
	return &draft, nil
}

func (s *MongoDraftStore) Save(ctx context.Context, draft *models.TripDraft) (*models.TripDraft, error) {
	filter := bson.M{"owner_id": draft.OwnerID}
	update := bson.M{
		"$set": bson.M{
			"trip":       draft.Trip,
			"activities": draft.Activities,
			"updated_at": draft.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"_id":        draft.ID,
			"created_at": draft.CreatedAt,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var stored models.TripDraft
	err := s.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&stored)
	if mongo.IsDuplicateKeyError(err) {
		// a concurrent first save won the insert; this one now updates it
		err = s.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&stored)
	}
	if mongo.IsDuplicateKeyError(err) {
		return nil, errors.ErrConflict
	}
	if err != nil {
		return nil, errors.Wrap(err, "DB_ERROR", "Failed to save trip draft", http.StatusInternalServerError)
	}
	return &stored, nil
}

func (s *MongoDraftStore) Delete(ctx context.Context, ownerID string) error {
	res, err := s.collection.DeleteOne(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		return errors.Wrap(err, "DB_ERROR", "Failed to delete trip draft", http.StatusInternalServerError)
	}
	if res.DeletedCount == 0 {
		return ErrDraftNotFound
	}
	return nil
}
