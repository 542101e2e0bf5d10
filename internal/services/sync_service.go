package services

import (
	"context"

	"github.com/artconecta/backend/internal/logger"
	"github.com/artconecta/backend/internal/models"
)

// SyncService projects a private user record into its public profile and
// upserts it into the public store. It is the only writer of public profiles.
//
// The upsert is a blind overwrite of the full projection: the private record
// is the source of truth, so there is nothing to reconcile against existing
// public state. Two syncs racing on the same UID resolve last-write-wins,
// which is acceptable because both derive from the same evolving source.
type SyncService struct {
	store PublicProfileStore
}

func NewSyncService(store PublicProfileStore) *SyncService {
	return &SyncService{store: store}
}

// Synchronize validates, projects and upserts. Validation failures return a
// *ValidationError before the store is touched; store failures propagate
// verbatim. No retries here: the upsert is idempotent, so callers may repeat
// it safely if they choose to.
func (s *SyncService) Synchronize(ctx context.Context, user *models.User) error {
	if user == nil || user.UID == "" {
		return &ValidationError{Field: "uid"}
	}
	if user.Name == "" {
		return &ValidationError{Field: "name"}
	}

	profile := models.ProjectPublicProfile(user)
	if err := s.store.Upsert(ctx, user.UID, profile); err != nil {
		return err
	}

	logger.FromContext(ctx).Debug().Str("uid", user.UID).Msg("public profile synchronized")
	return nil
}
