// Package route maps location fragments to navigation actions. Parsing is
// the only direction handled here; the canonical fragment for the current
// view is recorded by the reducer itself.
package route

import (
	"strings"

	"github.com/cohortapp/cohort-cli/internal/app"
	"github.com/cohortapp/cohort-cli/internal/constants"
)

// Parse resolves a fragment of the form "path" or "path/id" to exactly one
// navigation action. Habit and profile require the id segment; every other
// path ignores it. Empty and unrecognized fragments fall back to explore.
func Parse(fragment string) app.Action {
	fragment = strings.Trim(strings.TrimSpace(fragment), "/")
	path, id, _ := strings.Cut(fragment, "/")

	switch constants.View(path) {
	case constants.ViewHabitDetail:
		if id == "" {
			return app.SelectExplore{}
		}
		return app.SelectHabit{ID: id}
	case constants.ViewProfile:
		if id == "" {
			return app.SelectExplore{}
		}
		return app.ViewProfile{ID: id}
	case constants.ViewCreateHabit:
		return app.SelectCreateHabit{}
	case constants.ViewEvents:
		return app.SelectEvents{}
	case constants.ViewMessagingList:
		return app.SelectMessagingList{}
	case constants.ViewAdmin:
		return app.SelectAdminView{}
	case constants.ViewGroupHabits:
		return app.SelectGroupHabits{}
	case constants.ViewPrivateHabits:
		return app.SelectPrivateHabits{}
	default:
		return app.SelectExplore{}
	}
}
