package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/bwc/pos/internal/domain/models"
)

// CreateBranch assigns the next branch id and stores the branch.
func (r *MongoDBRepository) CreateBranch(ctx context.Context, branch *models.Branch) error {
	id, err := r.nextID(ctx, collBranches)
	if err != nil {
		return err
	}
	branch.ID = id
	return insert(ctx, r.coll(collBranches), branch)
}

func (r *MongoDBRepository) GetBranch(ctx context.Context, id int64) (models.Branch, error) {
	return findByID[models.Branch](ctx, r.coll(collBranches), id)
}

func (r *MongoDBRepository) ListBranches(ctx context.Context) ([]models.Branch, error) {
	return findAll[models.Branch](ctx, r.coll(collBranches), bson.M{})
}

func (r *MongoDBRepository) UpdateBranch(ctx context.Context, branch models.Branch) error {
	return replaceByID(ctx, r.coll(collBranches), branch.ID, branch)
}

func (r *MongoDBRepository) DeleteBranch(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.coll(collBranches), id)
}

func (r *MongoDBRepository) CreateBrand(ctx context.Context, brand *models.Brand) error {
	id, err := r.nextID(ctx, collBrands)
	if err != nil {
		return err
	}
	brand.ID = id
	return insert(ctx, r.coll(collBrands), brand)
}

func (r *MongoDBRepository) GetBrand(ctx context.Context, id int64) (models.Brand, error) {
	return findByID[models.Brand](ctx, r.coll(collBrands), id)
}

func (r *MongoDBRepository) ListBrands(ctx context.Context) ([]models.Brand, error) {
	return findAll[models.Brand](ctx, r.coll(collBrands), bson.M{})
}

func (r *MongoDBRepository) CreateCategory(ctx context.Context, category *models.Category) error {
	id, err := r.nextID(ctx, collCategories)
	if err != nil {
		return err
	}
	category.ID = id
	return insert(ctx, r.coll(collCategories), category)
}

func (r *MongoDBRepository) GetCategory(ctx context.Context, id int64) (models.Category, error) {
	return findByID[models.Category](ctx, r.coll(collCategories), id)
}

func (r *MongoDBRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	return findAll[models.Category](ctx, r.coll(collCategories), bson.M{})
}

func (r *MongoDBRepository) CreateSize(ctx context.Context, size *models.Size) error {
	id, err := r.nextID(ctx, collSizes)
	if err != nil {
		return err
	}
	size.ID = id
	return insert(ctx, r.coll(collSizes), size)
}

func (r *MongoDBRepository) GetSize(ctx context.Context, id int64) (models.Size, error) {
	return findByID[models.Size](ctx, r.coll(collSizes), id)
}

func (r *MongoDBRepository) ListSizes(ctx context.Context) ([]models.Size, error) {
	return findAll[models.Size](ctx, r.coll(collSizes), bson.M{})
}

func (r *MongoDBRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	id, err := r.nextID(ctx, collProducts)
	if err != nil {
		return err
	}
	product.ID = id
	return insert(ctx, r.coll(collProducts), product)
}

func (r *MongoDBRepository) GetProduct(ctx context.Context, id int64) (models.Product, error) {
	return findByID[models.Product](ctx, r.coll(collProducts), id)
}

func (r *MongoDBRepository) ListProducts(ctx context.Context) ([]models.Product, error) {
	return findAll[models.Product](ctx, r.coll(collProducts), bson.M{})
}

func (r *MongoDBRepository) UpdateProduct(ctx context.Context, product models.Product) error {
	return replaceByID(ctx, r.coll(collProducts), product.ID, product)
}

func (r *MongoDBRepository) DeleteProduct(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.coll(collProducts), id)
}
