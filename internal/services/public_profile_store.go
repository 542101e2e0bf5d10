package services

import (
	"context"

	"github.com/artconecta/backend/internal/models"
)

// PublicProfileStore is the write side of the public-read projection
// collection. Upsert must be idempotent and use merge semantics: repeating a
// call with the same projection leaves the stored document unchanged.
//
// Nothing outside the sync orchestrator (and the account-deletion cascade for
// Delete) may write to this store.
type PublicProfileStore interface {
	Upsert(ctx context.Context, uid string, profile *models.PublicProfile) error
	Delete(ctx context.Context, uid string) error
}

// NopPublicProfileStore discards writes. Used when Firestore is not
// configured (local development without Firebase); the private record stays
// authoritative and nothing is mirrored.
type NopPublicProfileStore struct{}

func (NopPublicProfileStore) Upsert(ctx context.Context, uid string, profile *models.PublicProfile) error {
	return nil
}

func (NopPublicProfileStore) Delete(ctx context.Context, uid string) error {
	return nil
}
