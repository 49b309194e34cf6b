package sync

import (
	"context"

	"github.com/cohortapp/cohort-cli/internal/app"
	"github.com/cohortapp/cohort-cli/internal/logger"
)

// Dispatch feeds an action into the state machine's host loop.
type Dispatch func(app.Action)

// Bridge connects a Backend to the reducer. A present session triggers a
// bulk fetch and a full-replace dispatch; any change signal triggers the
// same fetch again; an absent session dispatches a logout. Failed fetches
// are logged and abandoned, the next signal retries naturally.
type Bridge struct {
	backend  Backend
	dispatch Dispatch

	loggedIn bool
}

func NewBridge(backend Backend, dispatch Dispatch) *Bridge {
	return &Bridge{backend: backend, dispatch: dispatch}
}

// Run blocks until ctx is done.
func (b *Bridge) Run(ctx context.Context) {
	sessions := b.backend.Sessions(ctx)
	changes := b.backend.Changes(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case session, ok := <-sessions:
			if !ok {
				sessions = nil
				continue
			}
			b.handleSession(ctx, session)
		case _, ok := <-changes:
			if !ok {
				changes = nil
				continue
			}
			if b.loggedIn {
				b.refetch(ctx)
			}
		}
	}
}

func (b *Bridge) handleSession(ctx context.Context, session Session) {
	if !session.Present {
		if b.loggedIn {
			b.loggedIn = false
			b.dispatch(app.Logout{})
		}
		return
	}
	b.loggedIn = true
	b.dispatch(app.Login{User: session.User, Profile: session.Profile})
	b.refetch(ctx)
}

func (b *Bridge) refetch(ctx context.Context) {
	snap, err := b.backend.FetchAll(ctx)
	if err != nil {
		logger.Error("bulk fetch failed, waiting for next change signal", "err", err)
		return
	}
	b.dispatch(app.SetInitialData{
		Habits:         snap.Habits,
		Users:          snap.Profiles,
		Events:         snap.Events,
		Conversations:  snap.Conversations,
		BoostRequests:  snap.BoostRequests,
		BoostedHabitID: snap.BoostedHabitID,
	})
}
