// database/repository/appointment.go
package repository

import (
	"context"
	"fmt"
	"time"

	"randevu/database"
	"randevu/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AppointmentRepository is the durable local mirror of confirmed bookings.
// The workflow depends on this contract, not on the storage medium.
type AppointmentRepository interface {
	// GetAll returns the full history ordered by createdAt descending.
	GetAll(ctx context.Context) ([]models.AppointmentRecord, error)
	// Append adds one confirmed appointment to the history.
	Append(ctx context.Context, rec *models.AppointmentRecord) error
	// ReplaceAll rewrites the whole history in one pass.
	ReplaceAll(ctx context.Context, recs []models.AppointmentRecord) error
	// DeleteByID removes one appointment from the history.
	DeleteByID(ctx context.Context, id string) error
}

// MongoAppointmentRepo implements AppointmentRepository using MongoDB.
type MongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo creates the repository and ensures its indexes.
func NewMongoAppointmentRepo() AppointmentRepository {
	coll := database.MongoClient.Database("randevu").Collection("appointments")
	repo := &MongoAppointmentRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func (r *MongoAppointmentRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoAppointmentRepo) GetAll(ctx context.Context) ([]models.AppointmentRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var recs []models.AppointmentRecord
	if err := cursor.All(ctx, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *MongoAppointmentRepo) Append(ctx context.Context, rec *models.AppointmentRecord) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, rec)
	return err
}

func (r *MongoAppointmentRepo) ReplaceAll(ctx context.Context, recs []models.AppointmentRecord) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}
	if len(recs) == 0 {
		return nil
	}
	docs := make([]interface{}, len(recs))
	for i, rec := range recs {
		docs[i] = rec
	}
	_, err := r.coll.InsertMany(ctx, docs)
	return err
}

func (r *MongoAppointmentRepo) DeleteByID(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}
