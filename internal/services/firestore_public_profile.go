package services

import (
	"context"

	"cloud.google.com/go/firestore"

	"github.com/artconecta/backend/internal/models"
)

const publicProfilesCollection = "publicProfiles"

// FirestorePublicProfileService mirrors public profiles into the Firestore
// collection the web client reads directly. Documents are keyed by the same
// UID as the private record; no separate identifier is minted.
type FirestorePublicProfileService struct {
	col *firestore.CollectionRef
}

func NewFirestorePublicProfileService(client *firestore.Client) *FirestorePublicProfileService {
	return &FirestorePublicProfileService{
		col: client.Collection(publicProfilesCollection),
	}
}

// Upsert writes the full projection with merge semantics. Set+MergeAll is
// atomic on the Firestore side, so a failed call leaves no partial document.
func (s *FirestorePublicProfileService) Upsert(ctx context.Context, uid string, profile *models.PublicProfile) error {
	if _, err := s.col.Doc(uid).Set(ctx, profile.Fields(), firestore.MergeAll); err != nil {
		return &StoreError{Op: "upsert", Reason: "firestore set failed", Err: err}
	}
	return nil
}

// Delete removes the public document. Only the account-deletion cascade
// calls this; deleting an absent document is not an error.
func (s *FirestorePublicProfileService) Delete(ctx context.Context, uid string) error {
	if _, err := s.col.Doc(uid).Delete(ctx); err != nil {
		return &StoreError{Op: "delete", Reason: "firestore delete failed", Err: err}
	}
	return nil
}
