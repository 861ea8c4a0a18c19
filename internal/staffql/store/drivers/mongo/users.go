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
)

// userDoc keeps the field names of the existing users collection.
type userDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Email      string             `bson:"email"`
	Password   string             `bson:"password"`
	UserName   string             `bson:"userName,omitempty"`
	Position   string             `bson:"position,omitempty"`
	Experience string             `bson:"experience,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt"`
}

func (d userDoc) toDomain() domain.User {
	return domain.User{
		ID:           d.ID.Hex(),
		Email:        d.Email,
		PasswordHash: d.Password,
		UserName:     d.UserName,
		Position:     d.Position,
		Experience:   d.Experience,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

type usersRepo struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	ctx, cancel := store.WithTimeout(ctx, r.timeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	doc := userDoc{
		ID:         primitive.NewObjectID(),
		Email:      u.Email,
		Password:   u.PasswordHash,
		UserName:   u.UserName,
		Position:   u.Position,
		Experience: u.Experience,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.User{}, store.ErrAlreadyExists
		}
		return domain.User{}, pkgerrors.Wrap(err, "mongo: insert user")
	}
	return doc.toDomain(), nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	oid, err := parseID(id)
	if err != nil {
		return domain.User{}, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *usersRepo) findOne(ctx context.Context, filter bson.M) (domain.User, error) {
	ctx, cancel := store.WithTimeout(ctx, r.timeout)
	defer cancel()

	var doc userDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if err = mapNotFound(err); err == store.ErrNotFound {
			return domain.User{}, err
		}
		return domain.User{}, pkgerrors.Wrap(err, "mongo: find user")
	}
	return doc.toDomain(), nil
}
