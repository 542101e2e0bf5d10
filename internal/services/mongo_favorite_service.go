package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/artconecta/backend/internal/models"
)

// ProjectGetter is the slice of the project service favorites need.
type ProjectGetter interface {
	GetByID(ctx context.Context, id string) (*models.Project, error)
}

// MongoFavoriteService stores which projects a user has saved.
type MongoFavoriteService struct {
	favoritesCol *mongo.Collection
	projects     ProjectGetter
}

type favoriteDoc struct {
	ID        string    `bson:"_id"`
	UserUID   string    `bson:"user_uid"`
	ProjectID string    `bson:"project_id"`
	CreatedAt time.Time `bson:"created_at"`
}

func (d *favoriteDoc) toModel() *models.Favorite {
	return &models.Favorite{
		ID:        d.ID,
		UserUID:   d.UserUID,
		ProjectID: d.ProjectID,
		CreatedAt: d.CreatedAt,
	}
}

func NewMongoFavoriteService(ctx context.Context, db *mongo.Database, projects ProjectGetter) (*MongoFavoriteService, error) {
	col := db.Collection("favorites")

	// Best-effort indexes.
	_, _ = col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_uid", Value: 1}, {Key: "project_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	})

	return &MongoFavoriteService{favoritesCol: col, projects: projects}, nil
}

func (s *MongoFavoriteService) Add(ctx context.Context, userUID, projectID string) (*models.Favorite, error) {
	if userUID == "" || projectID == "" {
		return nil, ErrFavoriteBadInput
	}

	// Reject favorites pointing at projects that do not exist.
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}

	doc := &favoriteDoc{
		ID:        uuid.New().String(),
		UserUID:   userUID,
		ProjectID: projectID,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := s.favoritesCol.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrAlreadyFavorited
		}
		return nil, err
	}
	return doc.toModel(), nil
}

func (s *MongoFavoriteService) Remove(ctx context.Context, userUID, projectID string) error {
	if userUID == "" || projectID == "" {
		return ErrFavoriteBadInput
	}

	res, err := s.favoritesCol.DeleteOne(ctx, bson.M{
		"user_uid":   userUID,
		"project_id": projectID,
	})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

// ListForUser returns the user's favorites, most recent first.
func (s *MongoFavoriteService) ListForUser(ctx context.Context, userUID string) ([]*models.Favorite, error) {
	if userUID == "" {
		return nil, ErrFavoriteBadInput
	}

	cur, err := s.favoritesCol.Find(
		ctx,
		bson.M{"user_uid": userUID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]*models.Favorite, 0)
	for cur.Next(ctx) {
		var doc favoriteDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toModel())
	}
	return out, cur.Err()
}

// ListProjectsForUser resolves the user's favorites into full projects,
// skipping any that have since been deleted.
func (s *MongoFavoriteService) ListProjectsForUser(ctx context.Context, userUID string) ([]*models.Project, error) {
	favorites, err := s.ListForUser(ctx, userUID)
	if err != nil {
		return nil, err
	}

	out := make([]*models.Project, 0, len(favorites))
	for _, fav := range favorites {
		project, err := s.projects.GetByID(ctx, fav.ProjectID)
		if err != nil {
			if err == ErrProjectNotFound {
				continue
			}
			return nil, err
		}
		out = append(out, project)
	}
	return out, nil
}
