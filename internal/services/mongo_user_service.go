package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/artconecta/backend/internal/models"
)

// MongoUserService owns the private "users" collection: the authoritative
// record behind every profile. Reads go through a validating decode so a
// malformed document fails here, at the edge, instead of propagating empty
// fields into the rest of the app.
type MongoUserService struct {
	usersCol *mongo.Collection
}

func NewMongoUserService(ctx context.Context, db *mongo.Database) (*MongoUserService, error) {
	col := db.Collection("users")

	// Best-effort indexes.
	_, _ = col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "uid", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	})

	return &MongoUserService{usersCol: col}, nil
}

func (s *MongoUserService) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	if err := s.usersCol.FindOne(ctx, filter).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.UID == "" {
		return nil, fmt.Errorf("malformed user document for filter %v: missing uid", filter)
	}
	return &user, nil
}

func (s *MongoUserService) GetByUID(ctx context.Context, uid string) (*models.User, error) {
	if uid == "" {
		return nil, ErrUserNotFound
	}
	return s.findOne(ctx, bson.M{"uid": uid})
}

func (s *MongoUserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if username == "" {
		return nil, ErrUserNotFound
	}
	return s.findOne(ctx, bson.M{"username": username})
}

// GetOrCreate returns the private record for uid, creating a skeleton one on
// first sign-in. Name and email come from the verified token; the profile
// stays incomplete until the user edits it.
func (s *MongoUserService) GetOrCreate(ctx context.Context, uid, email, name string) (*models.User, error) {
	user, err := s.GetByUID(ctx, uid)
	if err == nil {
		if email != "" && user.Email == "" {
			now := time.Now().UTC()
			_, _ = s.usersCol.UpdateOne(ctx, bson.M{"uid": uid}, bson.M{
				"$set": bson.M{"email": email, "updated_at": now},
			})
			user.Email = email
			user.UpdatedAt = now
		}
		return user, nil
	}
	if err != ErrUserNotFound {
		return nil, err
	}

	now := time.Now().UTC()
	user = &models.User{
		UID:       uid,
		Name:      name,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.usersCol.InsertOne(ctx, user); err != nil {
		// A concurrent first request may have created it.
		if mongo.IsDuplicateKeyError(err) {
			return s.GetByUID(ctx, uid)
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies a partial edit and returns the freshly-committed
// record. Only set pointers are written; the document is created on first
// edit if the sign-in hook never ran.
func (s *MongoUserService) UpdateProfile(ctx context.Context, uid, email string, req *models.UpdateProfileRequest) (*models.User, error) {
	now := time.Now().UTC()

	set := bson.M{"updated_at": now}
	if email != "" {
		set["email"] = email
	}
	if req.Name != nil {
		set["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Bio != nil {
		set["bio"] = *req.Bio
	}
	if req.PhotoURL != nil {
		set["photo_url"] = *req.PhotoURL
	}
	if req.Tags != nil {
		set["tags"] = *req.Tags
	}
	if req.Website != nil {
		set["website"] = *req.Website
	}
	if req.Location != nil {
		set["location"] = *req.Location
	}
	if req.Username != nil {
		set["username"] = strings.ToLower(strings.TrimSpace(*req.Username))
	}
	if req.ArtisticName != nil {
		set["artistic_name"] = *req.ArtisticName
	}
	if req.Role != nil {
		set["role"] = *req.Role
	}
	if req.EmailOptIn != nil {
		set["email_opt_in"] = *req.EmailOptIn
	}
	if req.ProfileCompleted != nil {
		set["profile_completed"] = *req.ProfileCompleted
	}

	setOnInsert := bson.M{
		"uid":        uid,
		"created_at": now,
	}

	_, err := s.usersCol.UpdateOne(
		ctx,
		bson.M{"uid": uid},
		bson.M{"$set": set, "$setOnInsert": setOnInsert},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	return s.GetByUID(ctx, uid)
}

// Register creates a local-auth account (self-hosted mode, no Firebase).
func (s *MongoUserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &models.User{
		UID:          uuid.New().String(),
		Name:         req.Name,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Role:         req.Role,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := s.usersCol.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return user, nil
}

// Authenticate checks email/password against a local-auth account.
func (s *MongoUserService) Authenticate(ctx context.Context, req *models.LoginRequest) (*models.User, error) {
	user, err := s.findOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(req.Email))})
	if err != nil {
		return nil, err
	}
	if user.PasswordHash == "" {
		// Firebase-backed account; no local password to check.
		return nil, ErrInvalidPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidPassword
	}
	return user, nil
}
