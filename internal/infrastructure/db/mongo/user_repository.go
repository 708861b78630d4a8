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
	collectionUsers = "users"

	indexUserEmail  = "uniq_email"
	indexUserName   = "uniq_user_name"
	indexUserPhone  = "uniq_phone_number"
	indexUserByRole = "by_role"
)

var userConflicts = map[string]error{
	indexUserEmail: domain.ErrEmailExists,
	indexUserName:  domain.ErrUsernameExists,
	indexUserPhone: domain.ErrPhoneNumberExists,
}

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

type userDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Email       string             `bson:"email"`
	UserName    string             `bson:"userName,omitempty"`
	PhoneNumber string             `bson:"phoneNumber,omitempty"`
	Password    string             `bson:"password,omitempty"`
	IsAdmin     bool               `bson:"isAdmin"`
	IsActive    bool               `bson:"isActive"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d *userDocument) toDomain() *domain.User {
	return &domain.User{
		ID:           d.ID.Hex(),
		Email:        d.Email,
		UserName:     d.UserName,
		PhoneNumber:  d.PhoneNumber,
		PasswordHash: d.Password,
		IsAdmin:      d.IsAdmin,
		IsActive:     d.IsActive,
		CreatedAt:    d.CreatedAt.UTC(),
		UpdatedAt:    d.UpdatedAt.UTC(),
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := userDocument{
		Email:       user.Email,
		UserName:    user.UserName,
		PhoneNumber: user.PhoneNumber,
		Password:    user.PasswordHash,
		IsAdmin:     user.IsAdmin,
		IsActive:    user.IsActive,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if conflict, ok := conflictByIndex(err, userConflicts, domain.ErrEmailExists); ok {
			return nil, conflict
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) FindByIDAndRole(ctx context.Context, id string, role domain.Role, activeOnly bool) (*domain.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	filter := bson.M{"_id": oid, "isAdmin": role.IsAdmin()}
	if activeOnly {
		filter["isActive"] = true
	}
	return r.findOne(ctx, filter)
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email, excludeUserID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"email": email}
	excludeID(filter, excludeUserID)

	n, err := r.col.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count users by email: %w", err)
	}
	return n > 0, nil
}

// Update writes the profile fields. Empty username/phone are unset so the
// partial unique indexes keep ignoring them.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	oid, err := objectID(user.ID)
	if err != nil {
		return nil, err
	}

	set := bson.M{"email": user.Email, "updatedAt": user.UpdatedAt}
	unset := bson.M{}
	if user.UserName != "" {
		set["userName"] = user.UserName
	} else {
		unset["userName"] = ""
	}
	if user.PhoneNumber != "" {
		set["phoneNumber"] = user.PhoneNumber
	} else {
		unset["phoneNumber"] = ""
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	updated, err := r.findOneAndUpdate(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		if conflict, ok := conflictByIndex(err, userConflicts, domain.ErrEmailExists); ok {
			return nil, conflict
		}
		return nil, err
	}
	return updated, nil
}

// Promote is conditional on isAdmin=false, so concurrent promotions of the
// same user succeed exactly once.
func (r *UserRepository) Promote(ctx context.Context, id string) (*domain.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	return r.findOneAndUpdate(ctx,
		bson.M{"_id": oid, "isAdmin": false},
		bson.M{"$set": bson.M{"isAdmin": true, "updatedAt": time.Now().UTC()}},
	)
}

func (r *UserRepository) ListByRole(ctx context.Context, role domain.Role, skip int64, limit int) ([]*domain.User, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"isAdmin": role.IsAdmin()}
	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"password": 0})

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find users: %w", err)
	}
	defer cur.Close(ctx)

	var docs []userDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode users: %w", err)
	}

	users := make([]*domain.User, 0, len(docs))
	for i := range docs {
		users = append(users, docs[i].toDomain())
	}
	return users, total, nil
}

func (r *UserRepository) AdminExists(ctx context.Context) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"isAdmin": true}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count admins: %w", err)
	}
	return n > 0, nil
}

// EnsureIndexes creates the unique constraints that back registration and
// profile updates.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName(indexUserEmail).SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "userName", Value: 1}},
			Options: options.Index().SetName(indexUserName).SetUnique(true).
				SetPartialFilterExpression(bson.M{"userName": bson.M{"$exists": true}}),
		},
		{
			Keys: bson.D{{Key: "phoneNumber", Value: 1}},
			Options: options.Index().SetName(indexUserPhone).SetUnique(true).
				SetPartialFilterExpression(bson.M{"phoneNumber": bson.M{"$exists": true}}),
		},
		{
			Keys:    bson.D{{Key: "isAdmin", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName(indexUserByRole),
		},
	}

	if _, err := r.col.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("create user indexes: %w", err)
	}
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDocument
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if notFound(err) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc userDocument
	if err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		if notFound(err) {
			return nil, domain.ErrRecordNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return doc.toDomain(), nil
}
