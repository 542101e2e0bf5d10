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

const defaultProjectListLimit = 50

// MongoProjectService stores the project postings businesses publish for
// artists.
type MongoProjectService struct {
	projectsCol *mongo.Collection
}

func NewMongoProjectService(ctx context.Context, db *mongo.Database) (*MongoProjectService, error) {
	col := db.Collection("projects")

	// Best-effort indexes.
	_, _ = col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_uid", Value: 1}}},
		{Keys: bson.D{{Key: "tags", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	})

	return &MongoProjectService{projectsCol: col}, nil
}

func (s *MongoProjectService) Create(ctx context.Context, ownerUID string, req *models.CreateProjectRequest) (*models.Project, error) {
	now := time.Now().UTC()
	project := &models.Project{
		ID:          uuid.New().String(),
		OwnerUID:    ownerUID,
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
		City:        req.City,
		Budget:      req.Budget,
		Deadline:    req.Deadline,
		IsOpen:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := s.projectsCol.InsertOne(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *MongoProjectService) GetByID(ctx context.Context, id string) (*models.Project, error) {
	var project models.Project
	if err := s.projectsCol.FindOne(ctx, bson.M{"_id": id}).Decode(&project); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

// List returns projects, most recent first, optionally filtered by tag,
// owner or open status.
func (s *MongoProjectService) List(ctx context.Context, q *models.ListProjectsQuery) ([]*models.Project, error) {
	filter := bson.M{}
	if q.Tag != "" {
		filter["tags"] = q.Tag
	}
	if q.OwnerUID != "" {
		filter["owner_uid"] = q.OwnerUID
	}
	if q.OpenOnly {
		filter["is_open"] = true
	}

	limit := q.Limit
	if limit <= 0 || limit > defaultProjectListLimit {
		limit = defaultProjectListLimit
	}

	cur, err := s.projectsCol.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]*models.Project, 0)
	for cur.Next(ctx) {
		var project models.Project
		if err := cur.Decode(&project); err != nil {
			return nil, err
		}
		out = append(out, &project)
	}
	return out, cur.Err()
}

// Update applies a partial edit. Only the owner may modify a project.
func (s *MongoProjectService) Update(ctx context.Context, ownerUID, id string, req *models.UpdateProjectRequest) (*models.Project, error) {
	project, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project.OwnerUID != ownerUID {
		return nil, ErrNotProjectOwner
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if req.Title != nil {
		set["title"] = *req.Title
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.Tags != nil {
		set["tags"] = *req.Tags
	}
	if req.City != nil {
		set["city"] = *req.City
	}
	if req.Budget != nil {
		set["budget"] = *req.Budget
	}
	if req.Deadline != nil {
		set["deadline"] = *req.Deadline
	}
	if req.IsOpen != nil {
		set["is_open"] = *req.IsOpen
	}

	if _, err := s.projectsCol.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set}); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *MongoProjectService) Delete(ctx context.Context, ownerUID, id string) error {
	project, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if project.OwnerUID != ownerUID {
		return ErrNotProjectOwner
	}

	_, err = s.projectsCol.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
