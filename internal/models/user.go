package models

import (
	"net/mail"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// User is the authoritative (private) record for an account, stored in the
// Mongo "users" collection and keyed by the auth UID. Fields outside the
// public allow-list (role, password hash, notification settings, timestamps)
// never leave this store.
type User struct {
	UID   string `json:"uid" bson:"uid"`
	Name  string `json:"name" bson:"name"`
	Email string `json:"email,omitempty" bson:"email,omitempty"`

	PhotoURL     string   `json:"photoURL,omitempty" bson:"photo_url,omitempty"`
	Bio          string   `json:"bio,omitempty" bson:"bio,omitempty"`
	Tags         []string `json:"tags,omitempty" bson:"tags,omitempty"`
	Website      string   `json:"website,omitempty" bson:"website,omitempty"`
	Location     string   `json:"location,omitempty" bson:"location,omitempty"`
	Username     string   `json:"username,omitempty" bson:"username,omitempty"`
	ArtisticName string   `json:"artisticName,omitempty" bson:"artistic_name,omitempty"`

	ProfileCompleted bool `json:"profileCompleted" bson:"profile_completed"`

	// Private-only fields below. json:"-" keeps them off every response.
	Role          string    `json:"-" bson:"role,omitempty"`
	PasswordHash  string    `json:"-" bson:"password_hash,omitempty"`
	EmailOptIn    bool      `json:"-" bson:"email_opt_in,omitempty"`
	CreatedAt     time.Time `json:"-" bson:"created_at,omitempty"`
	UpdatedAt     time.Time `json:"-" bson:"updated_at,omitempty"`
}

// Validate checks the two fields every downstream consumer requires.
func (u *User) Validate() map[string]string {
	errors := make(map[string]string)

	if strings.TrimSpace(u.UID) == "" {
		errors["uid"] = "UID is required"
	}
	if strings.TrimSpace(u.Name) == "" {
		errors["name"] = "Name is required"
	}

	return errors
}

var usernameRe = regexp.MustCompile(`^[a-z0-9_]{3,30}$`)

// UpdateProfileRequest carries a partial profile edit. Nil pointers mean
// "leave unchanged"; set pointers overwrite, including with empty values.
type UpdateProfileRequest struct {
	Name             *string   `json:"name"`
	Bio              *string   `json:"bio"`
	PhotoURL         *string   `json:"photoURL"`
	Tags             *[]string `json:"tags"`
	Website          *string   `json:"website"`
	Location         *string   `json:"location"`
	Username         *string   `json:"username"`
	ArtisticName     *string   `json:"artisticName"`
	Role             *string   `json:"role"`
	EmailOptIn       *bool     `json:"emailOptIn"`
	ProfileCompleted *bool     `json:"profileCompleted"`
}

func (r *UpdateProfileRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		errors["name"] = "Name cannot be empty"
	}
	if r.Username != nil && *r.Username != "" && !usernameRe.MatchString(*r.Username) {
		errors["username"] = "Username must be 3-30 lowercase letters, digits or underscores"
	}
	if r.Website != nil && *r.Website != "" {
		u, err := url.Parse(*r.Website)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			errors["website"] = "Website must be an http(s) URL"
		}
	}
	if r.Bio != nil && len(*r.Bio) > 2000 {
		errors["bio"] = "Bio is too long"
	}
	if r.Tags != nil && len(*r.Tags) > 20 {
		errors["tags"] = "At most 20 tags"
	}
	if r.Role != nil && *r.Role != "" && *r.Role != "artist" && *r.Role != "business" {
		errors["role"] = "Role must be artist or business"
	}

	return errors
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (r *RegisterRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if strings.TrimSpace(r.Name) == "" {
		errors["name"] = "Name is required"
	}
	if r.Email == "" {
		errors["email"] = "Email is required"
	} else if _, err := mail.ParseAddress(r.Email); err != nil {
		errors["email"] = "Email is invalid"
	}
	if r.Password == "" {
		errors["password"] = "Password is required"
	} else if len(r.Password) < 8 {
		errors["password"] = "Password must be at least 8 characters"
	}
	if r.Role != "" && r.Role != "artist" && r.Role != "business" {
		errors["role"] = "Role must be artist or business"
	}

	return errors
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Email == "" {
		errors["email"] = "Email is required"
	}
	if r.Password == "" {
		errors["password"] = "Password is required"
	}

	return errors
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
