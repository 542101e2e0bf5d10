package models

import (
	"strings"
	"time"
)

// Project is a gig posted by a cultural business looking for artists.
type Project struct {
	ID          string     `json:"id" bson:"_id"`
	OwnerUID    string     `json:"ownerUid" bson:"owner_uid"`
	Title       string     `json:"title" bson:"title"`
	Description string     `json:"description" bson:"description"`
	Tags        []string   `json:"tags,omitempty" bson:"tags,omitempty"`
	City        string     `json:"city,omitempty" bson:"city,omitempty"`
	Budget      string     `json:"budget,omitempty" bson:"budget,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty" bson:"deadline,omitempty"`
	IsOpen      bool       `json:"isOpen" bson:"is_open"`
	CreatedAt   time.Time  `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" bson:"updated_at"`
}

type CreateProjectRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Tags        []string   `json:"tags"`
	City        string     `json:"city"`
	Budget      string     `json:"budget"`
	Deadline    *time.Time `json:"deadline"`
}

func (r *CreateProjectRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if strings.TrimSpace(r.Title) == "" {
		errors["title"] = "Title is required"
	} else if len(r.Title) > 140 {
		errors["title"] = "Title is too long"
	}
	if strings.TrimSpace(r.Description) == "" {
		errors["description"] = "Description is required"
	} else if len(r.Description) > 8000 {
		errors["description"] = "Description is too long"
	}
	if r.Deadline != nil && r.Deadline.Before(time.Now()) {
		errors["deadline"] = "Deadline must be in the future"
	}

	return errors
}

// UpdateProjectRequest is partial: nil pointers leave fields unchanged.
type UpdateProjectRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Tags        *[]string  `json:"tags"`
	City        *string    `json:"city"`
	Budget      *string    `json:"budget"`
	Deadline    *time.Time `json:"deadline"`
	IsOpen      *bool      `json:"isOpen"`
}

func (r *UpdateProjectRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		errors["title"] = "Title cannot be empty"
	}
	if r.Description != nil && strings.TrimSpace(*r.Description) == "" {
		errors["description"] = "Description cannot be empty"
	}

	return errors
}

type ListProjectsQuery struct {
	Tag      string
	OwnerUID string
	OpenOnly bool
	Limit    int64
}
