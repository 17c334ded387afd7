// Package mongo stores users, profiles and posts as MongoDB documents, one
// collection each, with nested lists embedded the way the domain models them.
package mongo

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/IllyaHavrulyk/DevConnector/pkg/auth"
	"github.com/IllyaHavrulyk/DevConnector/pkg/post"
	"github.com/IllyaHavrulyk/DevConnector/pkg/profile"
)

const (
	usersCollection    = "users"
	profilesCollection = "profiles"
	postsCollection    = "posts"
)

type UserRepository struct {
	coll *mongo.Collection
}

// NewUserRepository also ensures the unique email index.
func NewUserRepository(ctx context.Context, db *mongo.Database) (*UserRepository, error) {
	coll := db.Collection(usersCollection)
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, errors.Wrap(err, "create users email index")
	}
	return &UserRepository{coll: coll}, nil
}

func (r *UserRepository) Create(ctx context.Context, user auth.User) error {
	user.Email = strings.ToLower(user.Email)
	if _, err := r.coll.InsertOne(ctx, toUserDoc(user)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return auth.ErrUserAlreadyExists
		}
		return errors.Wrap(err, "insert user")
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (auth.User, error) {
	return r.findOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))})
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (auth.User, error) {
	return r.findOne(ctx, bson.M{"_id": id.String()})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (auth.User, error) {
	var d userDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return auth.User{}, auth.ErrNotFound
		}
		return auth.User{}, errors.Wrap(err, "find user")
	}
	return d.entity(), nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return errors.Wrap(err, "delete user")
	}
	if res.DeletedCount == 0 {
		return auth.ErrNotFound
	}
	return nil
}

type ProfileRepository struct {
	coll *mongo.Collection
}

// NewProfileRepository also ensures the unique per-user index.
func NewProfileRepository(ctx context.Context, db *mongo.Database) (*ProfileRepository, error) {
	coll := db.Collection(profilesCollection)
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, errors.Wrap(err, "create profiles user index")
	}
	return &ProfileRepository{coll: coll}, nil
}

func (r *ProfileRepository) GetByUser(ctx context.Context, userID uuid.UUID) (profile.Profile, error) {
	var d profileDoc
	if err := r.coll.FindOne(ctx, bson.M{"user": userID.String()}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return profile.Profile{}, profile.ErrNotFound
		}
		return profile.Profile{}, errors.Wrap(err, "find profile")
	}
	return d.entity(), nil
}

func (r *ProfileRepository) List(ctx context.Context, limit, offset int) ([]profile.Profile, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, findPage(bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}}, limit, offset))
	if err != nil {
		return nil, errors.Wrap(err, "list profiles")
	}
	var docs []profileDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decode profiles")
	}
	res := make([]profile.Profile, 0, len(docs))
	for _, d := range docs {
		res = append(res, d.entity())
	}
	return res, nil
}

func (r *ProfileRepository) Save(ctx context.Context, p profile.Profile) error {
	_, err := r.coll.ReplaceOne(ctx,
		bson.M{"user": p.UserID.String()},
		toProfileDoc(p),
		options.Replace().SetUpsert(true),
	)
	return errors.Wrap(err, "save profile")
}

func (r *ProfileRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"user": userID.String()})
	return errors.Wrap(err, "delete profile")
}

type PostRepository struct {
	coll *mongo.Collection
}

func NewPostRepository(ctx context.Context, db *mongo.Database) (*PostRepository, error) {
	coll := db.Collection(postsCollection)
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "user", Value: 1}}},
	})
	if err != nil {
		return nil, errors.Wrap(err, "create posts indexes")
	}
	return &PostRepository{coll: coll}, nil
}

func (r *PostRepository) Create(ctx context.Context, p post.Post) error {
	_, err := r.coll.InsertOne(ctx, toPostDoc(p))
	return errors.Wrap(err, "insert post")
}

func (r *PostRepository) GetByID(ctx context.Context, id uuid.UUID) (post.Post, error) {
	var d postDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return post.Post{}, post.ErrNotFound
		}
		return post.Post{}, errors.Wrap(err, "find post")
	}
	return d.entity(), nil
}

func (r *PostRepository) List(ctx context.Context, limit, offset int) ([]post.Post, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, findPage(bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}}, limit, offset))
	if err != nil {
		return nil, errors.Wrap(err, "list posts")
	}
	var docs []postDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decode posts")
	}
	res := make([]post.Post, 0, len(docs))
	for _, d := range docs {
		res = append(res, d.entity())
	}
	return res, nil
}

func (r *PostRepository) Update(ctx context.Context, p post.Post) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": p.ID.String()}, toPostDoc(p))
	if err != nil {
		return errors.Wrap(err, "replace post")
	}
	if res.MatchedCount == 0 {
		return post.ErrNotFound
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return errors.Wrap(err, "delete post")
	}
	if res.DeletedCount == 0 {
		return post.ErrNotFound
	}
	return nil
}

func (r *PostRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"user": userID.String()})
	return errors.Wrap(err, "delete user posts")
}

func findPage(sort bson.D, limit, offset int) *options.FindOptions {
	opts := options.Find().SetSort(sort)
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	if offset > 0 {
		opts.SetSkip(int64(offset))
	}
	return opts
}
