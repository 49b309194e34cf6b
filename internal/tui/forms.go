package tui

import (
	"errors"
	"strconv"

	"github.com/charmbracelet/huh"

	"github.com/cohortapp/cohort-cli/internal/constants"
)

type authFormModel struct {
	Mode constants.AuthMode
	Name string
}

type habitFormModel struct {
	Name        string
	Topic       string
	Description string
	Rules       string
	MemberLimit string
	Private     bool
}

type eventFormModel struct {
	Title     string
	Date      string
	StartTime string
	Online    bool
	Location  string
	OnlineURL string
	IsFree    bool
	Price     string
	Organizer string
}

type postFormModel struct {
	Content  string
	ImageURL string
}

type commentFormModel struct {
	Content string
}

type dayLogFormModel struct {
	Note string
}

type boostFormModel struct {
	ProofImage string
}

type messageFormModel struct {
	Content string
}

func notEmpty(label string) func(string) error {
	return func(s string) error {
		if s == "" {
			return errors.New(label + " is required")
		}
		return nil
	}
}

func newAuthForm(f *authFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[constants.AuthMode]().
				Title("Account").
				Options(
					huh.NewOption("Log in", constants.AuthModeLogin),
					huh.NewOption("Register", constants.AuthModeRegister),
				).
				Value(&f.Mode),
			huh.NewInput().
				Title("Name").
				Validate(notEmpty("name")).
				Value(&f.Name),
		),
	)
}

func newHabitForm(f *habitFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Validate(notEmpty("name")).Value(&f.Name),
			huh.NewInput().Title("Topic").Validate(notEmpty("topic")).Value(&f.Topic),
			huh.NewInput().Title("Description").Value(&f.Description),
			huh.NewInput().Title("Rules").Value(&f.Rules),
			huh.NewInput().
				Title("Member limit").
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					if n, err := strconv.Atoi(s); err != nil || n < 1 {
						return errors.New("must be a positive number")
					}
					return nil
				}).
				Value(&f.MemberLimit),
			huh.NewConfirm().Title("Private habit?").Value(&f.Private),
		),
	)
}

func newEventForm(f *eventFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Validate(notEmpty("title")).Value(&f.Title),
			huh.NewInput().
				Title("Date (" + constants.DateFormat + ")").
				Validate(notEmpty("date")).
				Value(&f.Date),
			huh.NewInput().Title("Start time (HH:MM)").Value(&f.StartTime),
			huh.NewConfirm().Title("Online event?").Value(&f.Online),
			huh.NewInput().Title("Location").Value(&f.Location),
			huh.NewInput().Title("URL").Value(&f.OnlineURL),
			huh.NewConfirm().Title("Free to attend?").Value(&f.IsFree),
			huh.NewInput().Title("Price").Value(&f.Price),
			huh.NewInput().Title("Organizer").Value(&f.Organizer),
		),
	)
}

func newPostForm(f *postFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().Title("What did you do today?").Validate(notEmpty("content")).Value(&f.Content),
			huh.NewInput().Title("Image path (optional)").Value(&f.ImageURL),
		),
	)
}

func newCommentForm(f *commentFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().Title("Comment").Validate(notEmpty("comment")).Value(&f.Content),
		),
	)
}

func newDayLogForm(f *dayLogFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Note for today (optional)").Value(&f.Note),
		),
	)
}

func newBoostForm(f *boostFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Proof of payment (image path)").
				Validate(notEmpty("proof image")).
				Value(&f.ProofImage),
		),
	)
}

func newMessageForm(f *messageFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().Title("Message").Validate(notEmpty("message")).Value(&f.Content),
		),
	)
}
