// database/repository/patient.go
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

// PatientRepository defines the interface for patient data access.
type PatientRepository interface {
	GetByID(ctx context.Context, id string) (*models.Patient, error)
	GetByNationalID(ctx context.Context, nationalID string) (*models.Patient, error)
	Create(ctx context.Context, patient *models.Patient) error
	Update(ctx context.Context, patient *models.Patient) error
}

// MongoPatientRepo implements PatientRepository using MongoDB.
type MongoPatientRepo struct {
	coll *mongo.Collection
}

// NewMongoPatientRepo creates the repository and ensures its indexes.
func NewMongoPatientRepo() PatientRepository {
	coll := database.MongoClient.Database("randevu").Collection("patients")
	repo := &MongoPatientRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func (r *MongoPatientRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "nationalId", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoPatientRepo) GetByID(ctx context.Context, id string) (*models.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var patient models.Patient
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&patient); err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *MongoPatientRepo) GetByNationalID(ctx context.Context, nationalID string) (*models.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var patient models.Patient
	if err := r.coll.FindOne(ctx, bson.M{"nationalId": nationalID}).Decode(&patient); err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *MongoPatientRepo) Create(ctx context.Context, patient *models.Patient) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, patient)
	return err
}

func (r *MongoPatientRepo) Update(ctx context.Context, patient *models.Patient) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": patient.ID}, patient)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
