package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/expensio/expense-tracker/internal/core/domain"
	"github.com/expensio/expense-tracker/internal/core/ports"
)

const expensesCollection = "expenses"

type ExpenseRepository struct {
	coll *mongo.Collection
}

func NewExpenseRepository(db *mongo.Database) *ExpenseRepository {
	return &ExpenseRepository{coll: db.Collection(expensesCollection)}
}

type expenseDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Amount      float64            `bson:"amount"`
	Date        time.Time          `bson:"date"`
	Description string             `bson:"description"`
	CategoryID  primitive.ObjectID `bson:"categoryId"`
	UserID      primitive.ObjectID `bson:"userId"`
	CreatedAt   time.Time          `bson:"createdAt,omitempty"`
	UpdatedAt   time.Time          `bson:"updatedAt,omitempty"`
}

func (r *ExpenseRepository) Insert(ctx context.Context, ex *domain.Expense) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	categoryID, err := primitive.ObjectIDFromHex(ex.CategoryID)
	if err != nil {
		return "", fmt.Errorf("insert expense: bad categoryId: %w", err)
	}
	userID, err := primitive.ObjectIDFromHex(ex.UserID)
	if err != nil {
		return "", fmt.Errorf("insert expense: bad userId: %w", err)
	}

	now := time.Now().UTC()
	doc := expenseDoc{
		Amount:      ex.Amount,
		Date:        ex.Date,
		Description: ex.Description,
		CategoryID:  categoryID,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert expense: %w", err)
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

// baseStages joins each expense to its category and user and applies the
// presence-dependent match conditions. The unwinds give inner-join semantics:
// expenses whose references do not resolve are dropped from all results.
func baseStages(filter ports.ExpenseFilter) mongo.Pipeline {
	query := bson.M{}
	exactFilter(query, "categoryInfo.name", filter.Category)
	exactFilter(query, "userInfo.username", filter.Username)
	dateRangeFilter(query, "date", filter.StartDate, filter.EndDate)

	return mongo.Pipeline{
		lookupStage(categoriesCollection, "categoryId", "_id", "categoryInfo"),
		unwindStage("$categoryInfo"),
		lookupStage(usersCollection, "userId", "_id", "userInfo"),
		unwindStage("$userInfo"),
		matchStage(query),
	}
}

type groupRow struct {
	Category    string  `bson:"category"`
	Username    string  `bson:"username"`
	TotalAmount float64 `bson:"totalAmount"`
}

func (r *ExpenseRepository) ListGrouped(ctx context.Context, filter ports.ExpenseFilter) (*ports.GroupedExpenses, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := append(baseStages(filter), groupStages(filter.GroupByCategory, filter.GroupByUsername)...)

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("group expenses: %w", err)
	}
	var rows []groupRow
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode expense groups: %w", err)
	}

	result := &ports.GroupedExpenses{Data: make([]ports.ExpenseGroup, len(rows))}
	for i, row := range rows {
		result.Data[i] = ports.ExpenseGroup{
			Category:    row.Category,
			Username:    row.Username,
			TotalAmount: row.TotalAmount,
		}
	}
	return result, nil
}

type expenseRowDoc struct {
	ID          primitive.ObjectID `bson:"_id"`
	Date        time.Time          `bson:"date"`
	Amount      float64            `bson:"amount"`
	Description string             `bson:"description"`
	Category    string             `bson:"category"`
	User        string             `bson:"user"`
}

func (r *ExpenseRepository) ListPage(ctx context.Context, filter ports.ExpenseFilter) (*ports.ExpensePage, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	base := baseStages(filter)

	// Total is computed by a separate count pass over the same joined match,
	// so it is independent of page/limit.
	var counts []struct {
		Total int64 `bson:"total"`
	}
	countCur, err := r.coll.Aggregate(ctx, append(base, countStage()))
	if err != nil {
		return nil, fmt.Errorf("count expenses: %w", err)
	}
	if err := countCur.All(ctx, &counts); err != nil {
		return nil, fmt.Errorf("decode expense count: %w", err)
	}
	var total int64
	if len(counts) > 0 {
		total = counts[0].Total
	}

	pipeline := append(base,
		projectStage(bson.M{
			"date":        1,
			"amount":      1,
			"description": 1,
			"category":    "$categoryInfo.name",
			"user":        "$userInfo.username",
		}),
		sortStage(bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}}),
		skipStage((filter.Page-1)*filter.Limit),
		limitStage(filter.Limit),
	)

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	var docs []expenseRowDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode expenses: %w", err)
	}

	page := &ports.ExpensePage{Data: make([]ports.ExpenseRow, len(docs)), Total: total}
	for i, d := range docs {
		page.Data[i] = ports.ExpenseRow{
			ID:          d.ID.Hex(),
			Date:        d.Date,
			Amount:      d.Amount,
			Description: d.Description,
			Category:    d.Category,
			User:        d.User,
		}
	}
	return page, nil
}

type expenseDetailDoc struct {
	ID          primitive.ObjectID `bson:"_id"`
	Amount      float64            `bson:"amount"`
	Date        time.Time          `bson:"date"`
	Description string             `bson:"description"`
	Category    struct {
		ID          primitive.ObjectID `bson:"_id"`
		Name        string             `bson:"name"`
		Description string             `bson:"description"`
	} `bson:"category"`
	User struct {
		ID       primitive.ObjectID `bson:"_id"`
		Name     string             `bson:"name"`
		LastName string             `bson:"lastName"`
		Username string             `bson:"username"`
		Email    string             `bson:"email"`
	} `bson:"user"`
}

func (r *ExpenseRepository) FindByID(ctx context.Context, id string) (*ports.ExpenseDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrExpenseNotFound
	}

	pipeline := mongo.Pipeline{
		matchStage(bson.M{"_id": oid}),
		lookupStage(categoriesCollection, "categoryId", "_id", "categoryInfo"),
		unwindStage("$categoryInfo"),
		lookupStage(usersCollection, "userId", "_id", "userInfo"),
		unwindStage("$userInfo"),
		projectStage(bson.M{
			"amount":      1,
			"date":        1,
			"description": 1,
			"category": bson.M{
				"_id":         "$categoryInfo._id",
				"name":        "$categoryInfo.name",
				"description": "$categoryInfo.description",
			},
			"user": bson.M{
				"_id":      "$userInfo._id",
				"name":     "$userInfo.name",
				"lastName": "$userInfo.lastName",
				"username": "$userInfo.username",
				"email":    "$userInfo.email",
			},
		}),
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("find expense: %w", err)
	}
	var docs []expenseDetailDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode expense: %w", err)
	}
	if len(docs) == 0 {
		return nil, domain.ErrExpenseNotFound
	}

	d := docs[0]
	return &ports.ExpenseDetail{
		ID:          d.ID.Hex(),
		Amount:      d.Amount,
		Date:        d.Date,
		Description: d.Description,
		Category: ports.CategoryRef{
			ID:          d.Category.ID.Hex(),
			Name:        d.Category.Name,
			Description: d.Category.Description,
		},
		User: ports.UserRef{
			ID:       d.User.ID.Hex(),
			Name:     d.User.Name,
			LastName: d.User.LastName,
			Username: d.User.Username,
			Email:    d.User.Email,
		},
	}, nil
}

func (r *ExpenseRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrExpenseNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}

// EnsureIndexes creates the supporting indexes for joins and date filtering.
func (r *ExpenseRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "categoryId", Value: 1}}},
		{Keys: bson.D{{Key: "userId", Value: 1}}},
		{Keys: bson.D{{Key: "date", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
