package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/expensio/expense-tracker/internal/core/domain"
	"github.com/expensio/expense-tracker/internal/core/ports"
)

const categoriesCollection = "categories"

type CategoryRepository struct {
	coll *mongo.Collection
}

func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{coll: db.Collection(categoriesCollection)}
}

type categoryDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	CreatedAt   time.Time          `bson:"createdAt,omitempty"`
	UpdatedAt   time.Time          `bson:"updatedAt,omitempty"`
}

func (d categoryDoc) toDomain() *domain.Category {
	return &domain.Category{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func (r *CategoryRepository) Insert(ctx context.Context, cat *domain.Category) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	doc := categoryDoc{
		Name:        cat.Name,
		Description: cat.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert category: %w", err)
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *CategoryRepository) FindAll(ctx context.Context, filter ports.CategoryFilter) (*ports.CategoryPage, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	regexFilter(query, "name", filter.Name)
	regexFilter(query, "description", filter.Description)
	dateRangeFilter(query, "createdAt", filter.StartDate, filter.EndDate)

	pipeline := mongo.Pipeline{
		matchStage(query),
		projectStage(bson.M{"name": 1, "description": 1}),
		sortStage(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}}),
		skipStage((filter.Page - 1) * filter.Limit),
		limitStage(filter.Limit),
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	var docs []categoryDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}

	page := &ports.CategoryPage{Data: make([]domain.Category, len(docs)), Total: total}
	for i, d := range docs {
		page.Data[i] = *d.toDomain()
	}
	return page, nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id string) (*domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCategoryNotFound
	}

	projection := options.FindOne().SetProjection(bson.M{"name": 1, "description": 1})

	var doc categoryDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}, projection).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("find category: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *CategoryRepository) Update(ctx context.Context, id string, update ports.CategoryUpdate) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrCategoryNotFound
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}

	if _, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": set}); err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}
