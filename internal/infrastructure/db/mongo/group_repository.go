package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/splitr-dev/splitr-api/internal/core/domain"
)

const collectionGroups = "groups"

type GroupRepository struct {
	col *mongo.Collection
}

func NewGroupRepository(db *mongo.Database) *GroupRepository {
	return &GroupRepository{col: db.Collection(collectionGroups)}
}

type groupDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description,omitempty"`
	CreatedBy   string             `bson:"created_by"`
	Members     []domain.Member    `bson:"members"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func (d *groupDoc) toDomain() *domain.Group {
	return &domain.Group{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		CreatedBy:   d.CreatedBy,
		Members:     d.Members,
		CreatedAt:   d.CreatedAt,
	}
}

func (r *GroupRepository) Insert(ctx context.Context, g *domain.Group) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := groupDoc{
		Name:        g.Name,
		Description: g.Description,
		CreatedBy:   g.CreatedBy,
		Members:     g.Members,
		CreatedAt:   g.CreatedAt,
	}

	result, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert group: %w", err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *GroupRepository) FindByID(ctx context.Context, id string) (*domain.Group, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrGroupNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc groupDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrGroupNotFound
		}
		return nil, fmt.Errorf("find group: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *GroupRepository) ListByMember(ctx context.Context, userID string) ([]*domain.Group, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"members.user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Group
	for cur.Next(ctx) {
		var doc groupDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode group: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

// EnsureIndexes creates necessary indexes on the groups collection.
func (r *GroupRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "members.user_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
