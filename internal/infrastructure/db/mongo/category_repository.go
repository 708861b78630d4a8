package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/foodhub/ordering-system/internal/core/domain"
)

const (
	collectionCategories = "categories"

	indexCategoryActiveName = "uniq_active_name"
	indexCategoryParent     = "by_parent"
)

type CategoryRepository struct {
	col *mongo.Collection
}

func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{col: db.Collection(collectionCategories)}
}

type categoryDocument struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty"`
	Name           string              `bson:"name"`
	Description    string              `bson:"description"`
	ParentCategory *primitive.ObjectID `bson:"parentCategory"`
	IsActive       bool                `bson:"isActive"`
	DeletedAt      *time.Time          `bson:"deletedAt"`
	CreatedAt      time.Time           `bson:"createdAt"`
	UpdatedAt      time.Time           `bson:"updatedAt"`
}

// categoryRefDocument is the projection produced by $lookup.
type categoryRefDocument struct {
	ID          primitive.ObjectID `bson:"_id"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
}

type populatedCategoryDocument struct {
	categoryDocument `bson:",inline"`
	Parent           *categoryRefDocument `bson:"parent,omitempty"`
}

func (d *categoryDocument) toDomain() *domain.Category {
	c := &domain.Category{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		IsActive:    d.IsActive,
		DeletedAt:   d.DeletedAt,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
	if d.ParentCategory != nil {
		parentID := d.ParentCategory.Hex()
		c.ParentID = &parentID
	}
	return c
}

func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc, err := newCategoryDocument(category)
	if err != nil {
		return nil, err
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrCategoryNameExists
		}
		return nil, fmt.Errorf("insert category: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *CategoryRepository) FindActiveByID(ctx context.Context, id string) (*domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var doc categoryDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": oid, "isActive": true}).Decode(&doc); err != nil {
		if notFound(err) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, fmt.Errorf("find category: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *CategoryRepository) ExistsActiveByName(ctx context.Context, name, excludeCategoryID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"name": name, "isActive": true}
	excludeID(filter, excludeCategoryID)

	n, err := r.col.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count categories by name: %w", err)
	}
	return n > 0, nil
}

func (r *CategoryRepository) HasActiveChildren(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := objectID(id)
	if err != nil {
		return false, err
	}

	n, err := r.col.CountDocuments(ctx, bson.M{"parentCategory": oid, "isActive": true}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count child categories: %w", err)
	}
	return n > 0, nil
}

func (r *CategoryRepository) Update(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc, err := newCategoryDocument(category)
	if err != nil {
		return nil, err
	}
	oid, err := objectID(category.ID)
	if err != nil {
		return nil, err
	}

	update := bson.M{"$set": bson.M{
		"name":           doc.Name,
		"description":    doc.Description,
		"parentCategory": doc.ParentCategory,
		"updatedAt":      doc.UpdatedAt,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated categoryDocument
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid, "isActive": true}, update, opts).Decode(&updated)
	if err != nil {
		if notFound(err) {
			return nil, domain.ErrRecordNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrCategoryNameExists
		}
		return nil, fmt.Errorf("update category: %w", err)
	}
	return updated.toDomain(), nil
}

func (r *CategoryRepository) SoftDelete(ctx context.Context, id string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := objectID(id)
	if err != nil {
		return err
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid, "isActive": true},
		bson.M{"$set": bson.M{"isActive": false, "deletedAt": at, "updatedAt": at}},
	)
	if err != nil {
		return fmt.Errorf("soft delete category: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

// ListActive sorts by name and joins each category's parent.
func (r *CategoryRepository) ListActive(ctx context.Context, skip int64, limit int) ([]*domain.Category, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"isActive": true}
	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count categories: %w", err)
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$sort", Value: bson.D{{Key: "name", Value: 1}}}},
		{{Key: "$skip", Value: skip}},
		{{Key: "$limit", Value: int64(limit)}},
		{{Key: "$lookup", Value: bson.M{
			"from":         collectionCategories,
			"localField":   "parentCategory",
			"foreignField": "_id",
			"as":           "parent",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$parent", "preserveNullAndEmptyArrays": true}}},
		{{Key: "$project", Value: bson.M{"parent.parentCategory": 0, "parent.isActive": 0, "parent.deletedAt": 0}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, fmt.Errorf("aggregate categories: %w", err)
	}
	defer cur.Close(ctx)

	var docs []populatedCategoryDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode categories: %w", err)
	}

	categories := make([]*domain.Category, 0, len(docs))
	for i := range docs {
		c := docs[i].toDomain()
		if p := docs[i].Parent; p != nil {
			c.Parent = &domain.CategoryRef{ID: p.ID.Hex(), Name: p.Name, Description: p.Description}
		}
		categories = append(categories, c)
	}
	return categories, total, nil
}

// EnsureIndexes creates the active-name unique constraint and the parent
// lookup index used by delete.
func (r *CategoryRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetName(indexCategoryActiveName).SetUnique(true).
				SetPartialFilterExpression(bson.M{"isActive": true}),
		},
		{
			Keys:    bson.D{{Key: "parentCategory", Value: 1}, {Key: "isActive", Value: 1}},
			Options: options.Index().SetName(indexCategoryParent),
		},
	}

	if _, err := r.col.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("create category indexes: %w", err)
	}
	return nil
}

func newCategoryDocument(c *domain.Category) (*categoryDocument, error) {
	doc := &categoryDocument{
		Name:        c.Name,
		Description: c.Description,
		IsActive:    c.IsActive,
		DeletedAt:   c.DeletedAt,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	if c.ParentID != nil {
		parent, err := primitive.ObjectIDFromHex(*c.ParentID)
		if err != nil {
			return nil, domain.ErrInvalidParentID
		}
		doc.ParentCategory = &parent
	}
	return doc, nil
}
