package route

import (
	"testing"

	"github.com/cohortapp/cohort-cli/internal/app"
)

func TestParse(t *testing.T) {
	tests := []struct {
		fragment string
		want     app.Action
	}{
		{"habit/habit-1", app.SelectHabit{ID: "habit-1"}},
		{"profile/alice", app.ViewProfile{ID: "alice"}},
		{"createHabit", app.SelectCreateHabit{}},
		{"events", app.SelectEvents{}},
		{"messagingList", app.SelectMessagingList{}},
		{"admin", app.SelectAdminView{}},
		{"groupHabits", app.SelectGroupHabits{}},
		{"privateHabits", app.SelectPrivateHabits{}},
		{"explore", app.SelectExplore{}},
		{"", app.SelectExplore{}},
		{"bogusPath", app.SelectExplore{}},
		{"bogusPath/with-id", app.SelectExplore{}},
		// id segment ignored for paths that take none
		{"events/123", app.SelectEvents{}},
		// missing required id falls back to explore
		{"habit", app.SelectExplore{}},
		{"profile/", app.SelectExplore{}},
		// surrounding slashes and whitespace tolerated
		{" /habit/habit-1/ ", app.SelectHabit{ID: "habit-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.fragment, func(t *testing.T) {
			if got := Parse(tt.fragment); got != tt.want {
				t.Errorf("Parse(%q) = %#v, want %#v", tt.fragment, got, tt.want)
			}
		})
	}
}

func TestParse_RoundTripsWithReducerFragments(t *testing.T) {
	s := app.Initial()
	s = app.Apply(s, app.Login{})
	s = app.Apply(s, app.SelectEvents{})
	if got := Parse(s.Fragment); got != (app.SelectEvents{}) {
		t.Errorf("Fragment %q did not parse back to its action", s.Fragment)
	}

	s = app.Apply(s, app.SelectHabit{ID: "h1"})
	if got := Parse(s.Fragment); got != (app.SelectHabit{ID: "h1"}) {
		t.Errorf("Fragment %q did not parse back to its action", s.Fragment)
	}
}
