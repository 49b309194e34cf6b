package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cohortapp/cohort-cli/internal/models"
	"github.com/cohortapp/cohort-cli/internal/sync"
)

// timestampFields names every JSON key across the export format that carries a
// serialized timestamp. Exports written by older backends use epoch millis or
// bare dates for these, so they are normalized before decoding into models.
var timestampFields = []string{"timestamp", "date", "member_since"}

type exportFile struct {
	Profiles      []models.UserProfile  `json:"profiles"`
	Habits        []models.Habit        `json:"habits"`
	Events        []models.Event        `json:"events"`
	BoostRequests []models.BoostRequest `json:"boost_requests"`
	Conversations []models.Conversation `json:"conversations"`
}

type ImportCmd struct {
	File string `arg:"" type:"existingfile" help:"JSON export file to import."`
}

func (cmd *ImportCmd) Run(ctx *Context) error {
	raw, err := os.ReadFile(cmd.File)
	if err != nil {
		return err
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return fmt.Errorf("parsing export: %w", err)
	}
	coerced, err := json.Marshal(sync.CoerceDates(decoded, timestampFields))
	if err != nil {
		return err
	}
	var export exportFile
	if err := json.Unmarshal(coerced, &export); err != nil {
		return fmt.Errorf("export does not match the expected shape: %w", err)
	}

	for _, p := range export.Profiles {
		if err := ctx.Store.AddProfile(p); err != nil {
			return fmt.Errorf("importing profile %s: %w", p.ID, err)
		}
	}
	posts := 0
	for _, h := range export.Habits {
		habit := h
		habit.Posts = nil
		if err := ctx.Store.AddHabit(habit); err != nil {
			return fmt.Errorf("importing habit %s: %w", h.ID, err)
		}
		for _, p := range h.Posts {
			comments := p.Comments
			p.Comments = nil
			if err := ctx.Store.AddPost(p); err != nil {
				return fmt.Errorf("importing post %s: %w", p.ID, err)
			}
			for _, c := range comments {
				if err := ctx.Store.AddComment(p.ID, c); err != nil {
					return fmt.Errorf("importing comment %s: %w", c.ID, err)
				}
			}
			posts++
		}
	}
	for _, e := range export.Events {
		if err := ctx.Store.AddEvent(e); err != nil {
			return fmt.Errorf("importing event %s: %w", e.ID, err)
		}
	}
	for _, r := range export.BoostRequests {
		if err := ctx.Store.AddBoostRequest(r); err != nil {
			return fmt.Errorf("importing boost request %s: %w", r.ID, err)
		}
	}
	messages := 0
	for _, c := range export.Conversations {
		for _, m := range c.Messages {
			if err := ctx.Store.AddMessage(c.ID, c.ParticipantIDs, m); err != nil {
				return fmt.Errorf("importing message %s: %w", m.ID, err)
			}
			messages++
		}
	}

	fmt.Printf("Imported %d profiles, %d habits, %d posts, %d events, %d boost requests, %d messages\n",
		len(export.Profiles), len(export.Habits), posts, len(export.Events), len(export.BoostRequests), messages)
	return nil
}
