package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/foodhub/ordering-system/internal/core/domain"
	"github.com/foodhub/ordering-system/internal/core/ports"
)

const (
	collectionProducts = "products"

	indexProductActiveName = "uniq_active_name_per_category"
	indexProductListing    = "by_category_created"
)

type ProductRepository struct {
	col *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{col: db.Collection(collectionProducts)}
}

type productDocument struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	Name        string               `bson:"name"`
	Description string               `bson:"description"`
	Price       primitive.Decimal128 `bson:"price"`
	Stock       int                  `bson:"stock"`
	Category    primitive.ObjectID   `bson:"category"`
	IsActive    bool                 `bson:"isActive"`
	DeletedAt   *time.Time           `bson:"deletedAt"`
	CreatedAt   time.Time            `bson:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt"`
}

type populatedProductDocument struct {
	productDocument `bson:",inline"`
	CategoryRef     *categoryRefDocument `bson:"categoryRef,omitempty"`
}

func (d *productDocument) toDomain() *domain.Product {
	return &domain.Product{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		Price:       fromDecimal128(d.Price),
		Stock:       d.Stock,
		CategoryID:  d.Category.Hex(),
		IsActive:    d.IsActive,
		DeletedAt:   d.DeletedAt,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

func (d *populatedProductDocument) toDomain() *domain.Product {
	p := d.productDocument.toDomain()
	if d.CategoryRef != nil {
		p.Category = &domain.CategoryRef{ID: d.CategoryRef.ID.Hex(), Name: d.CategoryRef.Name}
	}
	return p
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc, err := newProductDocument(product)
	if err != nil {
		return nil, err
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateProductName
		}
		return nil, fmt.Errorf("insert product: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *ProductRepository) FindActive(ctx context.Context, id, categoryID string) (*domain.Product, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	filter := bson.M{"_id": oid, "isActive": true}
	if categoryID != "" {
		cid, err := objectID(categoryID)
		if err != nil {
			return nil, err
		}
		filter["category"] = cid
	}

	products, err := r.aggregate(ctx, filter, 0, 1)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, domain.ErrRecordNotFound
	}
	return products[0], nil
}

func (r *ProductRepository) ExistsActiveByName(ctx context.Context, name, categoryID, excludeProductID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cid, err := objectID(categoryID)
	if err != nil {
		return false, nil
	}

	filter := bson.M{"name": name, "category": cid, "isActive": true}
	excludeID(filter, excludeProductID)

	n, err := r.col.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count products by name: %w", err)
	}
	return n > 0, nil
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := objectID(product.ID)
	if err != nil {
		return nil, err
	}
	doc, err := newProductDocument(product)
	if err != nil {
		return nil, err
	}

	update := bson.M{"$set": bson.M{
		"name":        doc.Name,
		"description": doc.Description,
		"price":       doc.Price,
		"stock":       doc.Stock,
		"category":    doc.Category,
		"updatedAt":   doc.UpdatedAt,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated productDocument
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid, "isActive": true}, update, opts).Decode(&updated)
	if err != nil {
		if notFound(err) {
			return nil, domain.ErrRecordNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateProductName
		}
		return nil, fmt.Errorf("update product: %w", err)
	}

	out := updated.toDomain()
	out.Category = product.Category
	return out, nil
}

func (r *ProductRepository) SoftDelete(ctx context.Context, id string, at time.Time) error {
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
		return fmt.Errorf("soft delete product: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

func (r *ProductRepository) ListActive(ctx context.Context, f ports.ProductFilter) ([]*domain.Product, int64, error) {
	filter := bson.M{"isActive": true}
	if f.CategoryID != "" {
		cid, err := objectID(f.CategoryID)
		if err != nil {
			return nil, 0, nil
		}
		filter["category"] = cid
	}

	countCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	total, err := r.col.CountDocuments(countCtx, filter)
	cancel()
	if err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	products, err := r.aggregate(ctx, filter, f.Skip, f.Limit)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// EnsureIndexes creates the per-category unique name constraint and the
// listing index.
func (r *ProductRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "category", Value: 1}, {Key: "name", Value: 1}},
			Options: options.Index().SetName(indexProductActiveName).SetUnique(true).
				SetPartialFilterExpression(bson.M{"isActive": true}),
		},
		{
			Keys:    bson.D{{Key: "isActive", Value: 1}, {Key: "category", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName(indexProductListing),
		},
	}

	if _, err := r.col.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("create product indexes: %w", err)
	}
	return nil
}

// aggregate pages newest-first through filter and joins the category name.
func (r *ProductRepository) aggregate(ctx context.Context, filter bson.M, skip int64, limit int) ([]*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}}},
		{{Key: "$skip", Value: skip}},
		{{Key: "$limit", Value: int64(limit)}},
		{{Key: "$lookup", Value: bson.M{
			"from":         collectionCategories,
			"localField":   "category",
			"foreignField": "_id",
			"as":           "categoryRef",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$categoryRef", "preserveNullAndEmptyArrays": true}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate products: %w", err)
	}
	defer cur.Close(ctx)

	var docs []populatedProductDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}

	products := make([]*domain.Product, 0, len(docs))
	for i := range docs {
		products = append(products, docs[i].toDomain())
	}
	return products, nil
}

func newProductDocument(p *domain.Product) (*productDocument, error) {
	cid, err := primitive.ObjectIDFromHex(p.CategoryID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	price, err := toDecimal128(p.Price)
	if err != nil {
		return nil, domain.ErrInvalidPrice
	}

	return &productDocument{
		Name:        p.Name,
		Description: p.Description,
		Price:       price,
		Stock:       p.Stock,
		Category:    cid,
		IsActive:    p.IsActive,
		DeletedAt:   p.DeletedAt,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}, nil
}

func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	return primitive.ParseDecimal128(d.String())
}

func fromDecimal128(d primitive.Decimal128) decimal.Decimal {
	v, err := decimal.NewFromString(d.String())
	if err != nil {
		return decimal.Zero
	}
	return v
}
