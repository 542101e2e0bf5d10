package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/artconecta/backend/internal/logger"
)

// MongoAccountService deletes everything an account owns. The cascade covers
// the private user doc, the user's projects, favorites in both directions,
// and the Firestore public profile.
type MongoAccountService struct {
	usersCol     *mongo.Collection
	projectsCol  *mongo.Collection
	favoritesCol *mongo.Collection
	publicStore  PublicProfileStore
}

func NewMongoAccountService(db *mongo.Database, publicStore PublicProfileStore) *MongoAccountService {
	return &MongoAccountService{
		usersCol:     db.Collection("users"),
		projectsCol:  db.Collection("projects"),
		favoritesCol: db.Collection("favorites"),
		publicStore:  publicStore,
	}
}

type DeleteAccountResult struct {
	ProjectIDs []string `json:"project_ids"`
}

// DeleteAccount removes all data for uid. Order matters a little: favorites
// first so nothing dangles at deleted projects, the public profile last so a
// partial failure still leaves the projection recoverable via republish.
func (s *MongoAccountService) DeleteAccount(ctx context.Context, uid string) (*DeleteAccountResult, error) {
	// Collect the user's project ids.
	projectIDs := make([]string, 0)
	cur, err := s.projectsCol.Find(ctx, bson.M{"owner_uid": uid},
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var doc struct {
			ID string `bson:"_id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		projectIDs = append(projectIDs, doc.ID)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}

	// 1) favorites: the user's own, plus anyone's pointing at their projects.
	favFilter := bson.M{"user_uid": uid}
	if len(projectIDs) > 0 {
		favFilter = bson.M{"$or": []bson.M{
			{"user_uid": uid},
			{"project_id": bson.M{"$in": projectIDs}},
		}}
	}
	_, _ = s.favoritesCol.DeleteMany(ctx, favFilter)

	// 2) projects
	_, _ = s.projectsCol.DeleteMany(ctx, bson.M{"owner_uid": uid})

	// 3) private user record
	_, _ = s.usersCol.DeleteOne(ctx, bson.M{"uid": uid})

	// 4) public projection
	if s.publicStore != nil {
		if err := s.publicStore.Delete(ctx, uid); err != nil {
			logger.FromContext(ctx).Warn().Err(err).Str("uid", uid).
				Msg("failed to delete public profile during account deletion")
		}
	}

	return &DeleteAccountResult{ProjectIDs: projectIDs}, nil
}

// DefaultAccountTimeout bounds the cascade for handlers.
func DefaultAccountTimeout() time.Duration { return 20 * time.Second }
