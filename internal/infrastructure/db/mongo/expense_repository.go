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

const collectionExpenses = "expenses"

type ExpenseRepository struct {
	col *mongo.Collection
}

func NewExpenseRepository(db *mongo.Database) *ExpenseRepository {
	return &ExpenseRepository{col: db.Collection(collectionExpenses)}
}

// expenseDoc stores group_id without omitempty so one-to-one expenses can be
// filtered with a plain equality match on the empty string.
type expenseDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Description  string             `bson:"description"`
	Amount       float64            `bson:"amount"`
	Category     string             `bson:"category,omitempty"`
	Date         time.Time          `bson:"date"`
	PaidByUserID string             `bson:"paid_by_user_id"`
	SplitType    string             `bson:"split_type"`
	Splits       []domain.Split     `bson:"splits"`
	GroupID      string             `bson:"group_id"`
	CreatedBy    string             `bson:"created_by"`
	CreatedAt    time.Time          `bson:"created_at"`
}

func (d *expenseDoc) toDomain() *domain.Expense {
	return &domain.Expense{
		ID:           d.ID.Hex(),
		Description:  d.Description,
		Amount:       d.Amount,
		Category:     d.Category,
		Date:         d.Date,
		PaidByUserID: d.PaidByUserID,
		SplitType:    domain.SplitType(d.SplitType),
		Splits:       d.Splits,
		GroupID:      d.GroupID,
		CreatedBy:    d.CreatedBy,
		CreatedAt:    d.CreatedAt,
	}
}

func (r *ExpenseRepository) Insert(ctx context.Context, e *domain.Expense) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := expenseDoc{
		Description:  e.Description,
		Amount:       e.Amount,
		Category:     e.Category,
		Date:         e.Date,
		PaidByUserID: e.PaidByUserID,
		SplitType:    string(e.SplitType),
		Splits:       e.Splits,
		GroupID:      e.GroupID,
		CreatedBy:    e.CreatedBy,
		CreatedAt:    e.CreatedAt,
	}

	result, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert expense: %w", err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *ExpenseRepository) FindByID(ctx context.Context, id string) (*domain.Expense, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrExpenseNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc expenseDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrExpenseNotFound
		}
		return nil, fmt.Errorf("find expense: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ExpenseRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrExpenseNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}

func (r *ExpenseRepository) ListPersonalByPayer(ctx context.Context, userID string) ([]*domain.Expense, error) {
	return r.list(ctx, bson.M{"group_id": "", "paid_by_user_id": userID})
}

func (r *ExpenseRepository) ListPersonalInvolving(ctx context.Context, userID string) ([]*domain.Expense, error) {
	return r.list(ctx, bson.M{
		"group_id": "",
		"$or": []bson.M{
			{"paid_by_user_id": userID},
			{"splits.user_id": userID},
		},
	})
}

func (r *ExpenseRepository) ListPersonal(ctx context.Context) ([]*domain.Expense, error) {
	return r.list(ctx, bson.M{"group_id": ""})
}

func (r *ExpenseRepository) ListByGroup(ctx context.Context, groupID string) ([]*domain.Expense, error) {
	return r.list(ctx, bson.M{"group_id": groupID})
}

func (r *ExpenseRepository) ListInvolvingSince(ctx context.Context, userID string, since time.Time) ([]*domain.Expense, error) {
	return r.list(ctx, bson.M{
		"date": bson.M{"$gte": since},
		"$or": []bson.M{
			{"paid_by_user_id": userID},
			{"splits.user_id": userID},
		},
	})
}

func (r *ExpenseRepository) list(ctx context.Context, filter bson.M) ([]*domain.Expense, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Expense
	for cur.Next(ctx) {
		var doc expenseDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode expense: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

// EnsureIndexes creates necessary indexes on the expenses collection.
func (r *ExpenseRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "group_id", Value: 1}, {Key: "paid_by_user_id", Value: 1}}},
		{Keys: bson.D{{Key: "group_id", Value: 1}, {Key: "splits.user_id", Value: 1}}},
		{Keys: bson.D{{Key: "date", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
