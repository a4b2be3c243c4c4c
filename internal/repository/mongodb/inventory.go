package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/bwc/pos/internal/domain/models"
	"github.com/bwc/pos/internal/repository"
)

func (r *MongoDBRepository) GetStock(ctx context.Context, productID, branchID int64) (models.Stock, error) {
	return findOne[models.Stock](ctx, r.coll(collStock), bson.M{"product_id": productID, "branch_id": branchID})
}

func (r *MongoDBRepository) ListStock(ctx context.Context) ([]models.Stock, error) {
	return findAll[models.Stock](ctx, r.coll(collStock), bson.M{})
}

func (r *MongoDBRepository) ListStockByBranch(ctx context.Context, branchID int64) ([]models.Stock, error) {
	return findAll[models.Stock](ctx, r.coll(collStock), bson.M{"branch_id": branchID})
}

func (r *MongoDBRepository) ListStockByProduct(ctx context.Context, productID int64) ([]models.Stock, error) {
	return findAll[models.Stock](ctx, r.coll(collStock), bson.M{"product_id": productID})
}

// AdjustStock applies delta with a single conditional $inc, so two concurrent
// decrements can never both succeed past zero.
func (r *MongoDBRepository) AdjustStock(ctx context.Context, productID, branchID int64, delta int) (models.Stock, error) {
	coll := r.coll(collStock)

	filter := bson.M{"product_id": productID, "branch_id": branchID}
	if delta < 0 {
		filter["quantity"] = bson.M{"$gte": -delta}
	}

	var row models.Stock
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := coll.FindOneAndUpdate(ctx, filter, bson.M{"$inc": bson.M{"quantity": delta}}, opts).Decode(&row)
	switch {
	case err == nil:
		return row, nil
	case !errors.Is(err, mongo.ErrNoDocuments):
		return models.Stock{}, fmt.Errorf("adjust stock of product %d in branch %d: %w", productID, branchID, err)
	case delta < 0:
		return models.Stock{}, fmt.Errorf("product %d in branch %d: %w", productID, branchID, repository.ErrInsufficientStock)
	}

	id, err := r.nextID(ctx, collStock)
	if err != nil {
		return models.Stock{}, err
	}
	row = models.Stock{ID: id, ProductID: productID, BranchID: branchID, Quantity: delta}
	if err := insert(ctx, coll, row); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			r.logger.Debug("stock row created concurrently, retrying increment",
				zap.Int64("product_id", productID), zap.Int64("branch_id", branchID))
			return r.AdjustStock(ctx, productID, branchID, delta)
		}
		return models.Stock{}, err
	}
	return row, nil
}

func (r *MongoDBRepository) CreateMovement(ctx context.Context, movement *models.InventoryMovement) error {
	id, err := r.nextID(ctx, collMovements)
	if err != nil {
		return err
	}
	movement.ID = id
	return insert(ctx, r.coll(collMovements), movement)
}

func (r *MongoDBRepository) DeleteMovement(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.coll(collMovements), id)
}

func (r *MongoDBRepository) ListMovements(ctx context.Context, limit int) ([]models.InventoryMovement, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	return findAll[models.InventoryMovement](ctx, r.coll(collMovements), bson.M{}, opts)
}
