package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fixflow/maintenance-system/internal/core/domain"
)

const collectionReports = "reports"

// ReportRepository is the Mongo-backed report store, selected with
// STORAGE_DRIVER=mongo. Reports are keyed by their UUID string id.
type ReportRepository struct {
	col *mongo.Collection
}

func NewReportRepository(db *mongo.Database) *ReportRepository {
	return &ReportRepository{col: db.Collection(collectionReports)}
}

func (r *ReportRepository) Create(ctx context.Context, rep *domain.Report) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, rep)
	return err
}

func (r *ReportRepository) GetByID(ctx context.Context, id string) (*domain.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rep domain.Report
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&rep)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReportNotFound
		}
		return nil, err
	}
	return &rep, nil
}

func (r *ReportRepository) List(ctx context.Context) ([]*domain.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var reports []*domain.Report
	if err := cur.All(ctx, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

// Update fetches the document, applies mutate, and replaces it. Unlike the
// memory backend this is not atomic across processes; single-instance
// deployments match the store's consistency expectations.
func (r *ReportRepository) Update(ctx context.Context, id string, mutate func(rep *domain.Report) error) (*domain.Report, error) {
	rep, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := mutate(rep); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.ReplaceOne(ctx, bson.M{"_id": id}, rep); err != nil {
		return nil, err
	}
	return rep, nil
}

func (r *ReportRepository) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// SeedIfEmpty inserts the demo reports when the collection holds nothing,
// mirroring the memory backend's boot state.
func (r *ReportRepository) SeedIfEmpty(ctx context.Context, reports []*domain.Report) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil || n > 0 {
		return err
	}

	docs := make([]interface{}, 0, len(reports))
	for _, rep := range reports {
		docs = append(docs, rep)
	}
	_, err = r.col.InsertMany(ctx, docs)
	return err
}

// EnsureIndexes creates the indexes the list and audit queries rely on.
func (r *ReportRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "assigned_to", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
