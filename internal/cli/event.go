package cli

import (
	"fmt"

	"github.com/cohortapp/cohort-cli/internal/models"
	"github.com/cohortapp/cohort-cli/internal/utils"
)

type EventCmd struct {
	Add  EventAddCmd  `cmd:"" help:"Create an event."`
	List EventListCmd `cmd:"" help:"List events." default:"1"`
}

type EventAddCmd struct {
	Title     string `arg:"" help:"Event title."`
	Date      string `arg:"" help:"Event date (2006-01-02)."`
	Start     string `help:"Start time (HH:MM)."`
	Online    bool   `help:"Online event."`
	Location  string `help:"Venue for offline events."`
	URL       string `name:"url" help:"Join URL for online events."`
	Price     string `help:"Ticket price. Omit for a free event."`
	Organizer string `help:"Organizer name."`
}

func (cmd *EventAddCmd) Run(ctx *Context) error {
	if _, err := ctx.CurrentProfile(); err != nil {
		return err
	}
	date, err := utils.ParseDay(cmd.Date)
	if err != nil {
		return err
	}

	eventType := models.EventOffline
	if cmd.Online {
		eventType = models.EventOnline
	}
	event := models.Event{
		ID:        models.NewID(),
		Title:     cmd.Title,
		Date:      date,
		StartTime: cmd.Start,
		Type:      eventType,
		Location:  cmd.Location,
		OnlineURL: cmd.URL,
		IsFree:    cmd.Price == "",
		Price:     cmd.Price,
		Organizer: cmd.Organizer,
	}
	if err := ctx.Store.AddEvent(event); err != nil {
		return err
	}
	fmt.Printf("Created event %q on %s\n", event.Title, utils.DayString(event.Date))
	return nil
}

type EventListCmd struct{}

func (cmd *EventListCmd) Run(ctx *Context) error {
	events, err := ctx.Store.GetAllEvents()
	if err != nil {
		return err
	}
	if len(events) == 0 {
		fmt.Println("No events yet.")
		return nil
	}
	for _, e := range events {
		where := e.Location
		if e.Type == models.EventOnline {
			where = "online"
		}
		price := "free"
		if !e.IsFree {
			price = e.Price
		}
		fmt.Printf("%s %5s  %-30s %-20s %s\n",
			utils.DayString(e.Date), e.StartTime, e.Title, where, price)
	}
	return nil
}
