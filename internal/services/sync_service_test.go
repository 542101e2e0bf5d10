package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artconecta/backend/internal/models"
)

// fakePublicStore records upserts so tests can assert call counts and the
// exact stored state.
type fakePublicStore struct {
	upsertCalls int
	deleteCalls int
	lastUID     string
	lastFields  map[string]interface{}
	failWith    error
}

func (f *fakePublicStore) Upsert(_ context.Context, uid string, profile *models.PublicProfile) error {
	f.upsertCalls++
	if f.failWith != nil {
		return f.failWith
	}
	f.lastUID = uid
	f.lastFields = profile.Fields()
	return nil
}

func (f *fakePublicStore) Delete(_ context.Context, uid string) error {
	f.deleteCalls++
	return nil
}

func TestSynchronize_ValidationFastFail(t *testing.T) {
	tests := []struct {
		name string
		user *models.User
	}{
		{name: "nil user", user: nil},
		{name: "empty uid", user: &models.User{Name: "Ana"}},
		{name: "empty name", user: &models.User{UID: "u1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakePublicStore{}
			svc := NewSyncService(store)

			err := svc.Synchronize(context.Background(), tt.user)

			assert.True(t, IsValidation(err), "expected ValidationError, got %v", err)
			assert.Zero(t, store.upsertCalls, "store must not be called on validation failure")
		})
	}
}

func TestSynchronize_HappyPath(t *testing.T) {
	store := &fakePublicStore{}
	svc := NewSyncService(store)

	user := &models.User{
		UID:              "u1",
		Name:             "Ana Silva",
		Email:            "a@x.com",
		Bio:              "Pintora",
		Tags:             []string{"pintura", "mural"},
		ProfileCompleted: true,
	}

	require.NoError(t, svc.Synchronize(context.Background(), user))

	assert.Equal(t, 1, store.upsertCalls)
	assert.Equal(t, "u1", store.lastUID)
	assert.Equal(t, "Ana Silva", store.lastFields["name"])
	assert.Equal(t, "a@x.com", store.lastFields["email"])
	assert.Equal(t, "Pintora", store.lastFields["bio"])
	assert.Equal(t, []string{"pintura", "mural"}, store.lastFields["tags"])
	assert.Equal(t, true, store.lastFields["profileCompleted"])
}

func TestSynchronize_Idempotent(t *testing.T) {
	store := &fakePublicStore{}
	svc := NewSyncService(store)

	user := &models.User{UID: "u1", Name: "Ana Silva", Bio: "Pintora"}

	require.NoError(t, svc.Synchronize(context.Background(), user))
	first := store.lastFields

	require.NoError(t, svc.Synchronize(context.Background(), user))

	assert.Equal(t, 2, store.upsertCalls)
	assert.Equal(t, first, store.lastFields, "repeating the sync must leave identical stored state")
}

func TestSynchronize_StoreErrorPropagates(t *testing.T) {
	storeErr := &StoreError{Op: "upsert", Reason: "backend unreachable", Err: errors.New("dial tcp: timeout")}
	store := &fakePublicStore{failWith: storeErr}
	svc := NewSyncService(store)

	err := svc.Synchronize(context.Background(), &models.User{UID: "u1", Name: "Ana"})

	require.Error(t, err)
	assert.True(t, IsStoreError(err))
	assert.ErrorIs(t, err, storeErr)
	assert.Equal(t, 1, store.upsertCalls, "no retries at this layer")
}

func TestSynchronize_ClearedFieldsOverwrite(t *testing.T) {
	store := &fakePublicStore{}
	svc := NewSyncService(store)

	require.NoError(t, svc.Synchronize(context.Background(), &models.User{
		UID: "u1", Name: "Ana", Bio: "Pintora",
	}))
	require.NoError(t, svc.Synchronize(context.Background(), &models.User{
		UID: "u1", Name: "Ana",
	}))

	// The projection always carries the full intended state, so a field
	// cleared on the source is written as empty, not skipped.
	assert.Contains(t, store.lastFields, "bio")
	assert.Equal(t, "", store.lastFields["bio"])
}
