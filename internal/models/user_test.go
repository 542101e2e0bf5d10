package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserValidate(t *testing.T) {
	tests := []struct {
		name       string
		user       User
		wantFields []string
	}{
		{
			name: "valid",
			user: User{UID: "u1", Name: "Ana"},
		},
		{
			name:       "missing uid",
			user:       User{Name: "Ana"},
			wantFields: []string{"uid"},
		},
		{
			name:       "missing name",
			user:       User{UID: "u1"},
			wantFields: []string{"name"},
		},
		{
			name:       "whitespace only",
			user:       User{UID: "  ", Name: "\t"},
			wantFields: []string{"uid", "name"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.user.Validate()
			assert.Len(t, errs, len(tt.wantFields))
			for _, f := range tt.wantFields {
				assert.Contains(t, errs, f)
			}
		})
	}
}

func TestUpdateProfileRequestValidate(t *testing.T) {
	str := func(s string) *string { return &s }

	tests := []struct {
		name      string
		req       UpdateProfileRequest
		wantField string
	}{
		{name: "empty request ok", req: UpdateProfileRequest{}},
		{name: "valid username", req: UpdateProfileRequest{Username: str("ana_silva1")}},
		{name: "uppercase username", req: UpdateProfileRequest{Username: str("AnaSilva")}, wantField: "username"},
		{name: "short username", req: UpdateProfileRequest{Username: str("ab")}, wantField: "username"},
		{name: "valid website", req: UpdateProfileRequest{Website: str("https://ana.example")}},
		{name: "bad website scheme", req: UpdateProfileRequest{Website: str("ftp://ana.example")}, wantField: "website"},
		{name: "empty name rejected", req: UpdateProfileRequest{Name: str("  ")}, wantField: "name"},
		{name: "bad role", req: UpdateProfileRequest{Role: str("admin")}, wantField: "role"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.req.Validate()
			if tt.wantField == "" {
				assert.Empty(t, errs)
			} else {
				assert.Contains(t, errs, tt.wantField)
			}
		})
	}
}
