package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/cohortapp/cohort-cli/internal/calendar"
	"github.com/cohortapp/cohort-cli/internal/constants"
	"github.com/cohortapp/cohort-cli/internal/models"
	"github.com/cohortapp/cohort-cli/internal/notify"
	"github.com/cohortapp/cohort-cli/internal/streak"
	"github.com/cohortapp/cohort-cli/internal/utils"
)

type HabitCmd struct {
	Add  HabitAddCmd  `cmd:"" help:"Create a new habit."`
	List HabitListCmd `cmd:"" help:"List habits."`
	Join HabitJoinCmd `cmd:"" help:"Join a group habit."`
	Log  HabitLogCmd  `cmd:"" help:"Log today for a habit you track."`
}

type HabitAddCmd struct {
	Name        string `arg:"" help:"Habit name."`
	Topic       string `help:"Topic tag, e.g. fitness."`
	Description string `help:"Longer description."`
	Rules       string `help:"House rules shown to members."`
	Limit       int    `help:"Member limit, 0 for unlimited."`
	Private     bool   `help:"Create a private habit instead of a group."`
}

func (cmd *HabitAddCmd) Run(ctx *Context) error {
	profile, err := ctx.CurrentProfile()
	if err != nil {
		return err
	}

	habitType := models.HabitGroup
	if cmd.Private {
		habitType = models.HabitPrivate
	}
	habit := models.Habit{
		ID:          models.NewID(),
		Name:        cmd.Name,
		Topic:       cmd.Topic,
		Description: cmd.Description,
		Rules:       cmd.Rules,
		MemberLimit: cmd.Limit,
		CreatorID:   profile.ID,
		Type:        habitType,
		Members:     []models.User{profile.User},
	}
	if err := ctx.Store.AddHabit(habit); err != nil {
		return err
	}
	st := models.HabitStreak{
		ID:      models.StreakID(profile.ID, habit.ID),
		HabitID: habit.ID,
		Name:    habit.Name,
		Topic:   habit.Topic,
	}
	if err := ctx.Store.AddStreak(profile.ID, st); err != nil {
		return err
	}
	fmt.Printf("Created %s habit %q (%s)\n", habitType, habit.Name, habit.ID)
	return nil
}

type HabitListCmd struct {
	Private bool `help:"Show only your private habits."`
}

func (cmd *HabitListCmd) Run(ctx *Context) error {
	habits, err := ctx.Store.GetAllHabits()
	if err != nil {
		return err
	}
	boosted, err := ctx.Store.GetBoostedHabitID()
	if err != nil {
		return err
	}

	var me string
	if profile, err := ctx.CurrentProfile(); err == nil {
		me = profile.ID
	}

	shown := 0
	for _, h := range habits {
		if cmd.Private {
			if h.Type != models.HabitPrivate || me == "" || !h.HasMember(me) {
				continue
			}
		} else if h.Type == models.HabitPrivate && (me == "" || !h.HasMember(me)) {
			continue
		}
		marker := " "
		if h.ID == boosted {
			marker = "★"
		}
		limit := ""
		if h.MemberLimit > 0 {
			limit = fmt.Sprintf("/%d", h.MemberLimit)
		}
		fmt.Printf("%s %-30s %-12s %d%s members  %s\n", marker, h.Name, h.Topic, len(h.Members), limit, h.ID)
		shown++
	}
	if shown == 0 {
		fmt.Println("No habits yet. Create one with 'cohort habit add'.")
	}
	return nil
}

type HabitJoinCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
}

func (cmd *HabitJoinCmd) Run(ctx *Context) error {
	profile, err := ctx.CurrentProfile()
	if err != nil {
		return err
	}
	habit, err := ctx.findHabit(cmd.Habit)
	if err != nil {
		return err
	}
	if habit.HasMember(profile.ID) {
		return fmt.Errorf("you are already a member of %q", habit.Name)
	}
	if habit.Full() {
		return fmt.Errorf("%q is full (%d members)", habit.Name, habit.MemberLimit)
	}

	if err := ctx.Store.AddMember(habit.ID, profile.User); err != nil {
		return err
	}
	st := models.HabitStreak{
		ID:      models.StreakID(profile.ID, habit.ID),
		HabitID: habit.ID,
		Name:    habit.Name,
		Topic:   habit.Topic,
	}
	if err := ctx.Store.AddStreak(profile.ID, st); err != nil {
		return err
	}
	// habit was read before the join, so Members is the pre-join list.
	notify.NewMember(ctx.Store, habit, profile.User)
	fmt.Printf("Joined %q\n", habit.Name)
	return nil
}

type HabitLogCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
	Note  string `help:"Optional note for today's log."`
	Date  string `help:"Day to log instead of today (2006-01-02)."`
}

func (cmd *HabitLogCmd) Run(ctx *Context) error {
	profile, err := ctx.CurrentProfile()
	if err != nil {
		return err
	}
	habit, err := ctx.findHabit(cmd.Habit)
	if err != nil {
		return err
	}

	day := utils.DayOf(time.Now())
	if cmd.Date != "" {
		if day, err = utils.ParseDay(cmd.Date); err != nil {
			return err
		}
	}

	streakID := models.StreakID(profile.ID, habit.ID)
	var logs []models.StreakLog
	found := false
	for _, st := range profile.Streaks {
		if st.ID == streakID {
			found = true
			// One log per day: replace today's entry if present.
			for _, l := range st.Logs {
				if !utils.SameDay(l.Date, day) {
					logs = append(logs, l)
				}
			}
		}
	}
	if !found {
		return fmt.Errorf("you are not tracking %q, join it first", habit.Name)
	}
	logs = append(logs, models.StreakLog{Date: day, Note: cmd.Note})

	if err := ctx.Store.UpdateStreakLogs(profile.ID, streakID, logs); err != nil {
		return err
	}
	fmt.Printf("Logged %s for %q\n", utils.DayString(day), habit.Name)
	return nil
}

type StreakCmd struct {
	Show StreakShowCmd `cmd:"" help:"Show streak stats and this month's calendar." default:"1"`
}

type StreakShowCmd struct {
	Habit string `arg:"" optional:"" help:"Habit id or name. Omit to show every tracked habit."`
}

func (cmd *StreakShowCmd) Run(ctx *Context) error {
	profile, err := ctx.CurrentProfile()
	if err != nil {
		return err
	}

	streaks := profile.Streaks
	if cmd.Habit != "" {
		habit, err := ctx.findHabit(cmd.Habit)
		if err != nil {
			return err
		}
		id := models.StreakID(profile.ID, habit.ID)
		streaks = nil
		for _, st := range profile.Streaks {
			if st.ID == id {
				streaks = []models.HabitStreak{st}
			}
		}
		if len(streaks) == 0 {
			return fmt.Errorf("you are not tracking %q", habit.Name)
		}
	}
	if len(streaks) == 0 {
		fmt.Println("You are not tracking any habits yet.")
		return nil
	}

	now := time.Now()
	for _, st := range streaks {
		fmt.Printf("%s: current %d, longest %d, last %d days %d%%\n",
			st.Name,
			streak.Current(st.Logs, now),
			streak.Longest(st.Logs),
			constants.CompletionWindowDays,
			streak.CompletionRate(st.Logs, now))
		printMonth(calendar.MonthGrid(now.Year(), now.Month(), st.Logs, now))
		fmt.Println()
	}
	return nil
}

func printMonth(weeks []calendar.Week) {
	fmt.Println("  Mo Tu We Th Fr Sa Su")
	for _, week := range weeks {
		var row []string
		for _, cell := range week {
			switch {
			case !cell.InMonth:
				row = append(row, "  ")
			case cell.Completed:
				row = append(row, fmt.Sprintf("%2s", "■"))
			case cell.IsToday:
				row = append(row, fmt.Sprintf("%2d", cell.Date.Day()))
			default:
				row = append(row, fmt.Sprintf("%2s", "·"))
			}
		}
		fmt.Println("  " + strings.Join(row, " "))
	}
}
