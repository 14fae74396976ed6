package users

import (
	"context"
	"time"

	"github.com/pulsedash/pulsedash/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepo implements Repository on a MongoDB collection.
type MongoRepo struct {
	col *mongo.Collection
}

// NewMongoRepo creates the repository and ensures the unique email index the
// login key depends on. Signup still does a check-then-insert pass first; the
// index is the backstop, not the primary flow.
func NewMongoRepo(col *mongo.Collection) *MongoRepo {
	idx := mongo.IndexModel{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)}
	col.Indexes().CreateOne(context.Background(), idx)
	return &MongoRepo{col: col}
}

// mongoUser mirrors models.UserRecord with an ObjectID primary key.
type mongoUser struct {
	ID           primitive.ObjectID      `bson:"_id,omitempty"`
	Name         string                  `bson:"name"`
	Email        string                  `bson:"email"`
	PasswordHash string                  `bson:"password"`
	Role         models.Role             `bson:"role"`
	Type         models.SubscriptionType `bson:"type"`
	Country      string                  `bson:"country"`
	SignedUp     time.Time               `bson:"signedUp"`
	UserID       string                  `bson:"userId"`
	Avatar       string                  `bson:"avatar,omitempty"`
	CreatedAt    time.Time               `bson:"createdAt"`
	UpdatedAt    time.Time               `bson:"updatedAt"`
}

func toMongo(u *models.UserRecord) *mongoUser {
	return &mongoUser{
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		Type:         u.Type,
		Country:      u.Country,
		SignedUp:     u.SignedUp,
		UserID:       u.UserID,
		Avatar:       u.Avatar,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (d *mongoUser) toModel() *models.UserRecord {
	return &models.UserRecord{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Role:         d.Role,
		Type:         d.Type,
		Country:      d.Country,
		SignedUp:     d.SignedUp,
		UserID:       d.UserID,
		Avatar:       d.Avatar,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func (r *MongoRepo) Create(ctx context.Context, u *models.UserRecord) (string, error) {
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	res, err := r.col.InsertOne(ctx, toMongo(u))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", ErrDuplicateEmail
		}
		return "", err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = oid.Hex()
	}
	return u.ID, nil
}

func (r *MongoRepo) GetByEmail(ctx context.Context, email string) (*models.UserRecord, error) {
	var d mongoUser
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&d); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return d.toModel(), nil
}

func (r *MongoRepo) GetByID(ctx context.Context, id string) (*models.UserRecord, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var d mongoUser
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return d.toModel(), nil
}

func (r *MongoRepo) List(ctx context.Context) ([]*models.UserRecord, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*models.UserRecord{}
	for cur.Next(ctx) {
		var d mongoUser
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, d.toModel())
	}
	return out, cur.Err()
}

func (r *MongoRepo) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

func (r *MongoRepo) DeleteAll(ctx context.Context) error {
	_, err := r.col.DeleteMany(ctx, bson.M{})
	return err
}

func (r *MongoRepo) InsertMany(ctx context.Context, recs []*models.UserRecord) error {
	docs := make([]interface{}, 0, len(recs))
	now := time.Now().UTC()
	for _, u := range recs {
		u.CreatedAt = now
		u.UpdatedAt = now
		docs = append(docs, toMongo(u))
	}
	_, err := r.col.InsertMany(ctx, docs)
	return err
}
