// Package cli is the command surface. Commands share a Context carrying
// the backing store, media store, and text generator; session identity
// comes from the OS keyring.
package cli

import (
	"errors"
	"fmt"

	"github.com/cohortapp/cohort-cli/internal/ai"
	"github.com/cohortapp/cohort-cli/internal/keyring"
	"github.com/cohortapp/cohort-cli/internal/models"
	"github.com/cohortapp/cohort-cli/internal/objectstore"
	"github.com/cohortapp/cohort-cli/internal/storage"
)

type Context struct {
	Store storage.Provider
	Media objectstore.Store
	Gen   ai.Generator
}

var errNotLoggedIn = errors.New("not logged in, run 'cohort account login <name>' first")

// CurrentProfile resolves the keyring session token to a stored profile.
func (c *Context) CurrentProfile() (models.UserProfile, error) {
	token, err := keyring.GetSessionToken()
	if err != nil || token == "" {
		return models.UserProfile{}, errNotLoggedIn
	}
	profile, err := c.Store.GetProfile(token)
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("session points at a missing profile, log in again: %w", err)
	}
	return profile, nil
}

// findHabit resolves a habit by id or exact name.
func (c *Context) findHabit(ref string) (models.Habit, error) {
	if h, err := c.Store.GetHabit(ref); err == nil {
		return h, nil
	}
	habits, err := c.Store.GetAllHabits()
	if err != nil {
		return models.Habit{}, err
	}
	for _, h := range habits {
		if h.Name == ref {
			return h, nil
		}
	}
	return models.Habit{}, fmt.Errorf("no habit with id or name %q", ref)
}
