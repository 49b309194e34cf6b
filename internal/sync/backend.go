// Package sync keeps the in-memory application state eventually consistent
// with the backing store. There is no delta protocol: any change signal
// triggers a full refetch, and each fetch replaces every collection.
package sync

import (
	"context"

	"github.com/cohortapp/cohort-cli/internal/models"
	"github.com/cohortapp/cohort-cli/internal/storage"
)

// Session describes the authenticated identity, if any.
type Session struct {
	Present bool
	User    models.User
	Profile models.UserProfile
}

// Snapshot is one complete bulk fetch.
type Snapshot struct {
	Habits         []models.Habit
	Profiles       []models.UserProfile
	Events         []models.Event
	BoostRequests  []models.BoostRequest
	Conversations  []models.Conversation
	BoostedHabitID string
}

// Backend is what the bridge consumes: a session stream, a coarse change
// stream, and a bulk fetch.
type Backend interface {
	Sessions(ctx context.Context) <-chan Session
	Changes(ctx context.Context) <-chan struct{}
	FetchAll(ctx context.Context) (Snapshot, error)
}

// StoreBackend adapts a storage.Provider plus a session source into a
// Backend. Sessions come from the caller because the store knows nothing
// about authentication.
type StoreBackend struct {
	provider storage.Provider
	sessions <-chan Session
}

func NewStoreBackend(provider storage.Provider, sessions <-chan Session) *StoreBackend {
	return &StoreBackend{provider: provider, sessions: sessions}
}

func (b *StoreBackend) Sessions(ctx context.Context) <-chan Session {
	return b.sessions
}

func (b *StoreBackend) Changes(ctx context.Context) <-chan struct{} {
	return b.provider.Notifier().Subscribe()
}

func (b *StoreBackend) FetchAll(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	var err error

	if snap.Habits, err = b.provider.GetAllHabits(); err != nil {
		return Snapshot{}, err
	}
	if snap.Profiles, err = b.provider.GetAllProfiles(); err != nil {
		return Snapshot{}, err
	}
	if snap.Events, err = b.provider.GetAllEvents(); err != nil {
		return Snapshot{}, err
	}
	if snap.BoostRequests, err = b.provider.GetAllBoostRequests(); err != nil {
		return Snapshot{}, err
	}
	if snap.Conversations, err = b.provider.GetAllConversations(); err != nil {
		return Snapshot{}, err
	}
	if snap.BoostedHabitID, err = b.provider.GetBoostedHabitID(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}
