package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/splitr-dev/splitr-api/internal/core/domain"
)

const collectionSettlements = "settlements"

type SettlementRepository struct {
	col *mongo.Collection
}

func NewSettlementRepository(db *mongo.Database) *SettlementRepository {
	return &SettlementRepository{col: db.Collection(collectionSettlements)}
}

type settlementDoc struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	Amount            float64            `bson:"amount"`
	Note              string             `bson:"note,omitempty"`
	Date              time.Time          `bson:"date"`
	PaidByUserID      string             `bson:"paid_by_user_id"`
	ReceivedByUserID  string             `bson:"received_by_user_id"`
	GroupID           string             `bson:"group_id"`
	RelatedExpenseIDs []string           `bson:"related_expense_ids,omitempty"`
	CreatedBy         string             `bson:"created_by"`
}

func (d *settlementDoc) toDomain() *domain.Settlement {
	return &domain.Settlement{
		ID:                d.ID.Hex(),
		Amount:            d.Amount,
		Note:              d.Note,
		Date:              d.Date,
		PaidByUserID:      d.PaidByUserID,
		ReceivedByUserID:  d.ReceivedByUserID,
		GroupID:           d.GroupID,
		RelatedExpenseIDs: d.RelatedExpenseIDs,
		CreatedBy:         d.CreatedBy,
	}
}

func (r *SettlementRepository) Insert(ctx context.Context, s *domain.Settlement) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := settlementDoc{
		Amount:            s.Amount,
		Note:              s.Note,
		Date:              s.Date,
		PaidByUserID:      s.PaidByUserID,
		ReceivedByUserID:  s.ReceivedByUserID,
		GroupID:           s.GroupID,
		RelatedExpenseIDs: s.RelatedExpenseIDs,
		CreatedBy:         s.CreatedBy,
	}

	result, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert settlement: %w", err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *SettlementRepository) ListPersonalBetween(ctx context.Context, userA, userB string) ([]*domain.Settlement, error) {
	return r.list(ctx, bson.M{
		"group_id": "",
		"$or": []bson.M{
			{"paid_by_user_id": userA, "received_by_user_id": userB},
			{"paid_by_user_id": userB, "received_by_user_id": userA},
		},
	})
}

func (r *SettlementRepository) ListPersonalInvolving(ctx context.Context, userID string) ([]*domain.Settlement, error) {
	return r.list(ctx, bson.M{
		"group_id": "",
		"$or": []bson.M{
			{"paid_by_user_id": userID},
			{"received_by_user_id": userID},
		},
	})
}

func (r *SettlementRepository) ListPersonal(ctx context.Context) ([]*domain.Settlement, error) {
	return r.list(ctx, bson.M{"group_id": ""})
}

func (r *SettlementRepository) ListByGroup(ctx context.Context, groupID string) ([]*domain.Settlement, error) {
	return r.list(ctx, bson.M{"group_id": groupID})
}

func (r *SettlementRepository) list(ctx context.Context, filter bson.M) ([]*domain.Settlement, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list settlements: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Settlement
	for cur.Next(ctx) {
		var doc settlementDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode settlement: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

// EnsureIndexes creates necessary indexes on the settlements collection.
func (r *SettlementRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "group_id", Value: 1}, {Key: "paid_by_user_id", Value: 1}}},
		{Keys: bson.D{{Key: "group_id", Value: 1}, {Key: "received_by_user_id", Value: 1}}},
		{Keys: bson.D{{Key: "date", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
