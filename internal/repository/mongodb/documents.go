package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bwc/pos/internal/domain/models"
)

func (r *MongoDBRepository) CreateSale(ctx context.Context, sale *models.Sale) error {
	id, err := r.nextID(ctx, collSales)
	if err != nil {
		return err
	}
	sale.ID = id
	numberLines(sale.Details)
	return insert(ctx, r.coll(collSales), sale)
}

func (r *MongoDBRepository) GetSale(ctx context.Context, id int64) (models.Sale, error) {
	return findByID[models.Sale](ctx, r.coll(collSales), id)
}

func (r *MongoDBRepository) ListSales(ctx context.Context) ([]models.Sale, error) {
	return findAll[models.Sale](ctx, r.coll(collSales), bson.M{})
}

func (r *MongoDBRepository) ListSalesBetween(ctx context.Context, from, to time.Time) ([]models.Sale, error) {
	return findAll[models.Sale](ctx, r.coll(collSales), bson.M{"sale_date": bson.M{"$gte": from, "$lt": to}})
}

func (r *MongoDBRepository) DeleteSale(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.coll(collSales), id)
}

func (r *MongoDBRepository) CreatePurchase(ctx context.Context, purchase *models.Purchase) error {
	id, err := r.nextID(ctx, collPurchases)
	if err != nil {
		return err
	}
	purchase.ID = id
	numberLines(purchase.Details)
	return insert(ctx, r.coll(collPurchases), purchase)
}

func (r *MongoDBRepository) GetPurchase(ctx context.Context, id int64) (models.Purchase, error) {
	return findByID[models.Purchase](ctx, r.coll(collPurchases), id)
}

func (r *MongoDBRepository) ListPurchases(ctx context.Context) ([]models.Purchase, error) {
	return findAll[models.Purchase](ctx, r.coll(collPurchases), bson.M{})
}

func (r *MongoDBRepository) ListPurchasesBetween(ctx context.Context, from, to time.Time) ([]models.Purchase, error) {
	return findAll[models.Purchase](ctx, r.coll(collPurchases), bson.M{"purchase_date": bson.M{"$gte": from, "$lt": to}})
}

func (r *MongoDBRepository) DeletePurchase(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.coll(collPurchases), id)
}

func (r *MongoDBRepository) RestorePurchase(ctx context.Context, purchase models.Purchase) error {
	return insert(ctx, r.coll(collPurchases), purchase)
}

// SaveDailyReport upserts the report for its date.
func (r *MongoDBRepository) SaveDailyReport(ctx context.Context, report models.DailyReport) error {
	_, err := r.coll(collReports).ReplaceOne(ctx, bson.M{"date": report.Date}, report, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save daily report: %w", err)
	}
	return nil
}

func (r *MongoDBRepository) GetDailyReport(ctx context.Context, date time.Time) (models.DailyReport, error) {
	return findOne[models.DailyReport](ctx, r.coll(collReports), bson.M{"date": date})
}

func numberLines(lines []models.LineItem) {
	for i := range lines {
		lines[i].ID = int64(i + 1)
	}
}
