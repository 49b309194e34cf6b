package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/cohortapp/cohort-cli/internal/calendar"
	"github.com/cohortapp/cohort-cli/internal/constants"
	"github.com/cohortapp/cohort-cli/internal/models"
	"github.com/cohortapp/cohort-cli/internal/streak"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.form != nil {
		return docStyle.Render(m.form.View())
	}

	var content string
	switch {
	case m.state.KickConfirm.Open:
		content = m.viewKickConfirm()
	case m.pickingMember:
		content = m.viewMemberPick()
	default:
		switch m.state.View {
		case constants.ViewExplore, constants.ViewGroupHabits, constants.ViewPrivateHabits:
			content = m.viewHabitList()
		case constants.ViewHabitDetail:
			content = m.viewHabitDetail()
		case constants.ViewProfile:
			content = m.viewProfile()
		case constants.ViewEvents:
			content = m.viewEvents()
		case constants.ViewMessagingList:
			content = m.viewMessaging()
		case constants.ViewAdmin:
			content = m.viewAdmin()
		default:
			content = m.viewHabitList()
		}
	}

	var statusLine string
	if m.status != "" {
		statusLine = mutedStyle.Render(m.status)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		docStyle.Render(content),
		statusLine,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	type tab struct {
		title string
		view  constants.View
	}
	tabs := []tab{
		{"Explore", constants.ViewExplore},
		{"Groups", constants.ViewGroupHabits},
		{"Private", constants.ViewPrivateHabits},
		{"Events", constants.ViewEvents},
		{"Messages", constants.ViewMessagingList},
	}
	if m.state.IsAdmin() {
		tabs = append(tabs, tab{"Admin", constants.ViewAdmin})
	}

	var rendered []string
	for _, t := range tabs {
		if m.state.View == t.view {
			rendered = append(rendered, activeTabStyle.Render(t.title))
		} else {
			rendered = append(rendered, inactiveTabStyle.Render(t.title))
		}
	}

	session := mutedStyle.Render("  not logged in, press l")
	if m.state.LoggedIn() {
		session = mutedStyle.Render("  " + m.state.CurrentUser.Name)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, append(rendered, session)...)
}

func (m Model) viewHabitList() string {
	habits := m.visibleHabits()
	if len(habits) == 0 {
		return mutedStyle.Render("No habits here yet. Press c to create one.")
	}

	var b strings.Builder
	for i, h := range habits {
		line := fmt.Sprintf("%s  %s", h.Name, mutedStyle.Render(h.Topic))
		if h.ID == m.state.BoostedHabitID {
			line = boostStyle.Render("★ ") + line
		}
		line += mutedStyle.Render(fmt.Sprintf("  %d members", len(h.Members)))
		if i == m.cursor {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m Model) viewHabitDetail() string {
	habit, ok := m.state.HabitByID(m.state.SelectedHabitID)
	if !ok {
		return mutedStyle.Render("This habit is gone.")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(habit.Name) + "  " + mutedStyle.Render(habit.Topic) + "\n")
	if habit.Description != "" {
		b.WriteString(habit.Description + "\n")
	}
	if habit.Rules != "" {
		b.WriteString(mutedStyle.Render("Rules: "+habit.Rules) + "\n")
	}

	names := make([]string, 0, len(habit.Members))
	for i, member := range habit.Members {
		if i == constants.MemberAvatarCap {
			names = append(names, fmt.Sprintf("+%d more", len(habit.Members)-constants.MemberAvatarCap))
			break
		}
		names = append(names, member.Name)
	}
	limit := ""
	if habit.MemberLimit > 0 {
		limit = fmt.Sprintf("/%d", habit.MemberLimit)
	}
	b.WriteString(mutedStyle.Render(fmt.Sprintf("Members (%d%s): %s", len(habit.Members), limit, strings.Join(names, ", "))) + "\n\n")

	if len(habit.Posts) == 0 {
		b.WriteString(mutedStyle.Render("No posts yet. Press p to share your progress.") + "\n")
	}
	for i, post := range habit.Posts {
		b.WriteString(m.renderPost(post, i == m.cursor))
	}
	return b.String()
}

func (m Model) renderPost(post models.Post, selected bool) string {
	header := fmt.Sprintf("%s  %s", post.Author.Name, mutedStyle.Render(post.Timestamp.Format("Jan 2 15:04")))
	if post.Streak > 0 {
		header += todayStyle.Render(fmt.Sprintf("  %d day streak", post.Streak))
	}
	if selected {
		header = selectedStyle.Render("> " + header)
	} else {
		header = "  " + header
	}

	var b strings.Builder
	b.WriteString(header + "\n")
	b.WriteString("    " + post.Content + "\n")
	if post.ImageURL != "" {
		b.WriteString("    " + mutedStyle.Render("[image] "+post.ImageURL) + "\n")
	}

	cheers, pushes := 0, 0
	for _, r := range post.Reactions {
		switch r.Type {
		case models.ReactionCheer:
			cheers++
		case models.ReactionPush:
			pushes++
		}
	}
	if cheers+pushes > 0 {
		b.WriteString("    " + mutedStyle.Render(fmt.Sprintf("%d cheers, %d pushes", cheers, pushes)) + "\n")
	}
	for _, c := range post.Comments {
		b.WriteString(fmt.Sprintf("      %s: %s\n", mutedStyle.Render(c.Author.Name), c.Content))
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewProfile() string {
	profile, ok := m.state.ProfileByID(m.state.ViewingProfileID)
	if !ok {
		return mutedStyle.Render("Profile not found.")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(profile.Name) + "\n")
	if profile.Motto != "" {
		b.WriteString(mutedStyle.Render("\""+profile.Motto+"\"") + "\n")
	}
	b.WriteString(mutedStyle.Render("Member since "+profile.MemberSince.Format("January 2006")) + "\n\n")

	for _, st := range profile.Streaks {
		b.WriteString(fmt.Sprintf("%s  current %d, longest %d, last 30 days %d%%\n",
			titleStyle.Render(st.Name),
			streak.CurrentNow(st.Logs),
			streak.Longest(st.Logs),
			streak.CompletionRateNow(st.Logs)))
		b.WriteString(renderActivityGrid(calendar.ActivityGrid(st.Logs, time.Now())) + "\n")
	}
	if len(profile.Streaks) == 0 {
		b.WriteString(mutedStyle.Render("No tracked habits yet.") + "\n")
	}

	if len(profile.Badges) > 0 {
		var badges []string
		for _, badge := range profile.Badges {
			badges = append(badges, badge.Icon+" "+badge.Name)
		}
		b.WriteString("\n" + mutedStyle.Render("Badges: "+strings.Join(badges, ", ")) + "\n")
	}

	isOwn := m.state.LoggedIn() && profile.ID == m.state.CurrentUser.ID
	if isOwn {
		unread := 0
		for _, n := range profile.Notifications {
			if !n.IsRead {
				unread++
			}
		}
		if unread > 0 {
			b.WriteString("\n" + boostStyle.Render(fmt.Sprintf("%d unread notifications", unread)) +
				mutedStyle.Render("  press n to mark read") + "\n")
		}
		for _, n := range profile.Notifications {
			marker := "·"
			if !n.IsRead {
				marker = "●"
			}
			b.WriteString(fmt.Sprintf("  %s %s\n", marker, notificationLine(n)))
		}
	}
	return b.String()
}

// renderActivityGrid draws one column per week row, newest column last.
func renderActivityGrid(weeks []calendar.Week) string {
	var b strings.Builder
	for day := 0; day < 7; day++ {
		b.WriteString("  ")
		for _, week := range weeks {
			cell := week[day]
			switch {
			case cell.Future:
				b.WriteString(" ")
			case cell.Completed && cell.IsToday:
				b.WriteString(todayStyle.Render("■"))
			case cell.Completed:
				b.WriteString("■")
			case cell.IsToday:
				b.WriteString(todayStyle.Render("□"))
			default:
				b.WriteString(mutedStyle.Render("·"))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func notificationLine(n models.Notification) string {
	switch n.Type {
	case models.NotificationNewMessage:
		return n.Sender.Name + " sent you a message"
	case models.NotificationNewReaction:
		verb := "cheered"
		if n.ReactionType == models.ReactionPush {
			verb = "pushed"
		}
		return fmt.Sprintf("%s %s your post in %s", n.Sender.Name, verb, n.HabitName)
	case models.NotificationNewPost:
		return fmt.Sprintf("%s posted in %s", n.Sender.Name, n.HabitName)
	case models.NotificationNewMember:
		return fmt.Sprintf("%s joined %s", n.Sender.Name, n.HabitName)
	}
	return "Something happened"
}

func (m Model) viewEvents() string {
	if len(m.state.Events) == 0 {
		return mutedStyle.Render("No upcoming events. Press a to add one.")
	}

	var b strings.Builder
	for i, e := range m.state.Events {
		where := e.Location
		if e.Type == models.EventOnline {
			where = "online"
		}
		price := "free"
		if !e.IsFree {
			price = e.Price
		}
		line := fmt.Sprintf("%s  %s  %s  %s",
			e.Date.Format(constants.DateFormat), e.Title,
			mutedStyle.Render(where), mutedStyle.Render(price))
		if i == m.cursor {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m Model) viewMessaging() string {
	if !m.state.LoggedIn() {
		return mutedStyle.Render("Log in to see your messages.")
	}

	partners := m.messagingPartners()
	if len(partners) == 0 {
		return mutedStyle.Render("Nobody to message yet.")
	}

	var b strings.Builder
	for i, p := range partners {
		line := p.Name
		if i == m.cursor {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	if m.state.ActiveConversationID != "" {
		b.WriteString("\n" + m.viewConversation())
	}
	return b.String()
}

func (m Model) viewConversation() string {
	var conv *models.Conversation
	for i := range m.state.Conversations {
		if m.state.Conversations[i].ID == m.state.ActiveConversationID {
			conv = &m.state.Conversations[i]
			break
		}
	}
	if conv == nil || len(conv.Messages) == 0 {
		return mutedStyle.Render("No messages yet. Press w to write one.")
	}

	var b strings.Builder
	for _, msg := range conv.Messages {
		who := "them"
		if msg.SenderID == m.state.CurrentUser.ID {
			who = "you"
		}
		b.WriteString(fmt.Sprintf("%s %s\n", mutedStyle.Render(who+":"), msg.Content))
	}
	return b.String()
}

func (m Model) viewAdmin() string {
	pending := m.pendingBoosts()
	if len(pending) == 0 {
		return mutedStyle.Render("No pending boost requests.")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Pending boost requests") + mutedStyle.Render("  y approve, n reject") + "\n\n")
	for i, r := range pending {
		name := r.HabitID
		if h, ok := m.state.HabitByID(r.HabitID); ok {
			name = h.Name
		}
		line := fmt.Sprintf("%s  by %s  %s", name, r.UserID, mutedStyle.Render(r.Timestamp.Format(constants.DateFormat)))
		if r.ProofImage != "" {
			line += mutedStyle.Render("  proof: " + r.ProofImage)
		}
		if i == m.cursor {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m Model) viewMemberPick() string {
	habit, ok := m.state.HabitByID(m.state.SelectedHabitID)
	if !ok {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("Remove which member?") + "\n\n")
	for i, member := range habit.Members {
		line := member.Name
		if i == m.memberCursor {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + mutedStyle.Render("enter to choose, esc to cancel"))
	return b.String()
}

func (m Model) viewKickConfirm() string {
	name := m.state.KickConfirm.UserID
	if p, ok := m.state.ProfileByID(m.state.KickConfirm.UserID); ok {
		name = p.Name
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		dangerStyle.Render(fmt.Sprintf("Remove %s from this habit?", name)),
		mutedStyle.Render("Their streak for it will be deleted."),
		"",
		"[y] Yes   [n] No",
	)
}
