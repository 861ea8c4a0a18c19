package mongo

import (
	"context"
	"time"

	"github.com/aussiebroadwan/staffql/internal/staffql/domain"
	"github.com/aussiebroadwan/staffql/internal/staffql/store"
	pkgerrors "github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type employeeDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	FirstName string             `bson:"firstName"`
	LastName  string             `bson:"lastName"`
	Project   string             `bson:"projet"`
	Position  string             `bson:"position,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d employeeDoc) toDomain() domain.Employee {
	return domain.Employee{
		ID:        d.ID.Hex(),
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Project:   d.Project,
		Position:  d.Position,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type employeesRepo struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func (r *employeesRepo) CreateEmployee(ctx context.Context, e domain.Employee) (domain.Employee, error) {
	ctx, cancel := store.WithTimeout(ctx, r.timeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	doc := employeeDoc{
		ID:        primitive.NewObjectID(),
		FirstName: e.FirstName,
		LastName:  e.LastName,
		Project:   e.Project,
		Position:  e.Position,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return domain.Employee{}, pkgerrors.Wrap(err, "mongo: insert employee")
	}
	return doc.toDomain(), nil
}

func (r *employeesRepo) GetEmployeeByID(ctx context.Context, id string) (domain.Employee, error) {
	oid, err := parseID(id)
	if err != nil {
		return domain.Employee{}, err
	}

	ctx, cancel := store.WithTimeout(ctx, r.timeout)
	defer cancel()

	var doc employeeDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err = mapNotFound(err); err == store.ErrNotFound {
			return domain.Employee{}, err
		}
		return domain.Employee{}, pkgerrors.Wrap(err, "mongo: find employee")
	}
	return doc.toDomain(), nil
}

func (r *employeesRepo) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	return r.FindEmployees(ctx, domain.EmployeeFilter{})
}

func (r *employeesRepo) FindEmployees(ctx context.Context, filter domain.EmployeeFilter) ([]domain.Employee, error) {
	ctx, cancel := store.WithTimeout(ctx, r.timeout)
	defer cancel()

	q := bson.M{}
	if filter.Project != "" {
		q["projet"] = filter.Project
	}
	if filter.Position != "" {
		q["position"] = filter.Position
	}

	// ObjectIDs are minted in insertion order by this process.
	cur, err := r.coll.Find(ctx, q, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, pkgerrors.Wrap(err, "mongo: find employees")
	}

	var docs []employeeDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, pkgerrors.Wrap(err, "mongo: decode employees")
	}

	out := make([]domain.Employee, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out, nil
}

func (r *employeesRepo) UpdateEmployee(ctx context.Context, u domain.EmployeeUpdate) (domain.Employee, error) {
	oid, err := parseID(u.ID)
	if err != nil {
		return domain.Employee{}, err
	}

	ctx, cancel := store.WithTimeout(ctx, r.timeout)
	defer cancel()

	set := bson.M{
		"firstName": u.FirstName,
		"lastName":  u.LastName,
		"projet":    u.Project,
		"updatedAt": time.Now().UTC().Truncate(time.Millisecond),
	}
	if u.Position != nil {
		set["position"] = *u.Position
	}

	var doc employeeDoc
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if err = mapNotFound(err); err == store.ErrNotFound {
			return domain.Employee{}, err
		}
		return domain.Employee{}, pkgerrors.Wrap(err, "mongo: update employee")
	}
	return doc.toDomain(), nil
}

func (r *employeesRepo) DeleteEmployee(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	ctx, cancel := store.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return pkgerrors.Wrap(err, "mongo: delete employee")
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
