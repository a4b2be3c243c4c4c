package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bwc/pos/internal/domain/models"
)

func (r *MongoDBRepository) CreateUser(ctx context.Context, user *models.User) error {
	id, err := r.nextID(ctx, collUsers)
	if err != nil {
		return err
	}
	user.ID = id
	return insert(ctx, r.coll(collUsers), user)
}

func (r *MongoDBRepository) GetUser(ctx context.Context, id int64) (models.User, error) {
	return findByID[models.User](ctx, r.coll(collUsers), id)
}

func (r *MongoDBRepository) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	return findOne[models.User](ctx, r.coll(collUsers), bson.M{"username": username},
		options.FindOne().SetCollation(usernameCollation))
}

func (r *MongoDBRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	return findAll[models.User](ctx, r.coll(collUsers), bson.M{})
}

func (r *MongoDBRepository) UpdateUser(ctx context.Context, user models.User) error {
	return replaceByID(ctx, r.coll(collUsers), user.ID, user)
}

func (r *MongoDBRepository) DeleteUser(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.coll(collUsers), id)
}

func (r *MongoDBRepository) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	id, err := r.nextID(ctx, collCustomers)
	if err != nil {
		return err
	}
	customer.ID = id
	return insert(ctx, r.coll(collCustomers), customer)
}

func (r *MongoDBRepository) GetCustomer(ctx context.Context, id int64) (models.Customer, error) {
	return findByID[models.Customer](ctx, r.coll(collCustomers), id)
}

func (r *MongoDBRepository) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	return findAll[models.Customer](ctx, r.coll(collCustomers), bson.M{})
}

func (r *MongoDBRepository) CreateSupplier(ctx context.Context, supplier *models.Supplier) error {
	id, err := r.nextID(ctx, collSuppliers)
	if err != nil {
		return err
	}
	supplier.ID = id
	return insert(ctx, r.coll(collSuppliers), supplier)
}

func (r *MongoDBRepository) GetSupplier(ctx context.Context, id int64) (models.Supplier, error) {
	return findByID[models.Supplier](ctx, r.coll(collSuppliers), id)
}

func (r *MongoDBRepository) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	return findAll[models.Supplier](ctx, r.coll(collSuppliers), bson.M{})
}
