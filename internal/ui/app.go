// Package ui provides the terminal settings screen for selah.
// This file contains the main App model which renders the notification
// settings and routes messages using the Bubble Tea architecture.
package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"selah/internal/notifications"
	"selah/internal/platform"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// row identifies one selectable line on the settings screen.
type row int

const (
	rowDaily row = iota
	rowPrayer
	rowCommunity
	rowMilestones
	rowTime
	rowCount
)

var rowLabels = map[row]string{
	rowDaily:      "Daily devotions",
	rowPrayer:     "Prayer updates",
	rowCommunity:  "Community activity",
	rowMilestones: "Spiritual milestones",
	rowTime:       "Daily reminder time",
}

// App is the settings screen model. It subscribes to the orchestrator's
// snapshot and invokes its action surface; nothing else touches the
// notification engine.
type App struct {
	orch   *notifications.Orchestrator
	styles *Styles
	keys   KeyMap

	snap     notifications.Snapshot
	cursor   row
	editing  bool
	input    textinput.Model
	declined bool // user dismissed the educational prompt this session

	status    string
	statusErr bool
	width     int
	height    int
	quitting  bool
}

// NewApp creates the settings screen. Initialization is deferred to Init()
// to keep the constructor non-blocking.
func NewApp(orch *notifications.Orchestrator, styles *Styles) *App {
	input := textinput.New()
	input.Placeholder = "HH:MM"
	input.CharLimit = 5
	input.Width = 7

	return &App{
		orch:   orch,
		styles: styles,
		keys:   DefaultKeyMap(),
		input:  input,
	}
}

// Init starts orchestrator initialization in the background.
func (a *App) Init() tea.Cmd {
	return func() tea.Msg {
		a.orch.Initialize(context.Background())
		return snapshotMsg{snap: a.orch.Snapshot()}
	}
}

// Update routes messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case snapshotMsg:
		a.snap = msg.snap
		return a, nil

	case settingsSavedMsg:
		a.snap = msg.snap
		if msg.err != nil {
			a.setStatus(friendlyError(msg.err), true)
		} else {
			a.setStatus("Saved", false)
		}
		return a, nil

	case permissionMsg:
		a.snap = msg.snap
		switch {
		case msg.err != nil:
			a.setStatus(friendlyError(msg.err), true)
		case msg.granted:
			a.setStatus("Notifications enabled", false)
		default:
			a.setStatus("Permission not granted", true)
		}
		return a, nil

	case testSentMsg:
		if msg.err != nil {
			a.setStatus(friendlyError(msg.err), true)
		} else {
			a.setStatus("Test notification sent", false)
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

// handleKey dispatches key presses depending on mode.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.editing {
		return a.handleEditKey(msg)
	}

	if a.flowAction() == notifications.FlowEducate && !a.declined {
		switch {
		case key.Matches(msg, a.keys.Accept):
			return a, a.requestCmd()
		case key.Matches(msg, a.keys.Decline):
			a.declined = true
			return a, nil
		case key.Matches(msg, a.keys.Quit):
			a.quitting = true
			return a, tea.Quit
		}
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		a.quitting = true
		return a, tea.Quit

	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}

	case key.Matches(msg, a.keys.Down):
		if a.cursor < rowCount-1 {
			a.cursor++
		}

	case key.Matches(msg, a.keys.Refresh):
		return a, a.refreshCmd()

	case key.Matches(msg, a.keys.Test):
		return a, a.testCmd()

	case key.Matches(msg, a.keys.Toggle), key.Matches(msg, a.keys.Edit):
		if a.cursor == rowTime {
			a.editing = true
			a.input.SetValue(a.snap.Settings.Time)
			a.input.Focus()
			return a, textinput.Blink
		}
		if key.Matches(msg, a.keys.Toggle) {
			return a, a.saveCmd(a.toggled(a.cursor))
		}
	}

	return a, nil
}

// handleEditKey drives the inline time editor.
func (a *App) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Cancel):
		a.editing = false
		a.input.Blur()
		return a, nil

	case key.Matches(msg, a.keys.Confirm):
		a.editing = false
		a.input.Blur()
		s := a.snap.Settings
		s.Time = strings.TrimSpace(a.input.Value())
		return a, a.saveCmd(s)
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// toggled returns the settings record with the given category flipped.
func (a *App) toggled(r row) notifications.Settings {
	s := a.snap.Settings
	switch r {
	case rowDaily:
		s.DailyDevotions = !s.DailyDevotions
	case rowPrayer:
		s.PrayerUpdates = !s.PrayerUpdates
	case rowCommunity:
		s.CommunityActivity = !s.CommunityActivity
	case rowMilestones:
		s.SpiritualMilestones = !s.SpiritualMilestones
	}
	return s
}

// flowAction derives what the permission banner should offer.
func (a *App) flowAction() notifications.FlowAction {
	return notifications.DecideFlow(platform.Status{
		Permission:  a.snap.Permission,
		CanAskAgain: a.snap.CanAskAgain,
	})
}

// =============================================================================
// Commands
// =============================================================================

func (a *App) saveCmd(s notifications.Settings) tea.Cmd {
	return func() tea.Msg {
		err := a.orch.UpdateSettings(context.Background(), s)
		return settingsSavedMsg{snap: a.orch.Snapshot(), err: err}
	}
}

func (a *App) requestCmd() tea.Cmd {
	return func() tea.Msg {
		granted, err := a.orch.RequestPermissions(context.Background())
		return permissionMsg{granted: granted, snap: a.orch.Snapshot(), err: err}
	}
}

func (a *App) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		_ = a.orch.RefreshScheduled(context.Background())
		return snapshotMsg{snap: a.orch.Snapshot()}
	}
}

func (a *App) testCmd() tea.Cmd {
	return func() tea.Msg {
		return testSentMsg{err: a.orch.SendTest(context.Background())}
	}
}

// =============================================================================
// View
// =============================================================================

// View renders the settings screen.
func (a *App) View() string {
	if a.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(a.styles.TitleStyle.Render("selah — notification settings"))
	b.WriteString("\n")

	if banner := a.renderBanner(); banner != "" {
		b.WriteString(banner)
		b.WriteString("\n")
	}

	b.WriteString(a.styles.SectionStyle.Render("Reminders"))
	b.WriteString("\n")
	for r := rowDaily; r < rowCount; r++ {
		b.WriteString(a.renderRow(r))
		b.WriteString("\n")
	}

	b.WriteString(a.styles.SectionStyle.Render("Scheduled"))
	b.WriteString("\n")
	if len(a.snap.Scheduled) == 0 {
		b.WriteString(a.styles.MutedStyle.Render("  nothing scheduled"))
		b.WriteString("\n")
	}
	for _, sched := range a.snap.Scheduled {
		line := fmt.Sprintf("  %s — %s", formatTrigger(sched.Trigger), sched.Title)
		b.WriteString(a.styles.RowStyle.Render(line))
		b.WriteString("\n")
	}

	if a.status != "" {
		b.WriteString("\n")
		if a.statusErr {
			b.WriteString(a.styles.ErrorStyle.Render(a.status))
		} else {
			b.WriteString(a.styles.StatusStyle.Render(a.status))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(a.styles.HelpStyle.Render(
		"j/k move · space toggle · e edit time · t test · r refresh · q quit"))
	return b.String()
}

// renderBanner shows the permission prompt appropriate to the flow state.
func (a *App) renderBanner() string {
	switch a.flowAction() {
	case notifications.FlowEducate:
		if a.declined {
			return a.styles.MutedStyle.Render("Notifications are off — press y to enable them")
		}
		return a.styles.BannerStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			"Selah can remind you of your daily devotion and",
			"encourage you along the way.",
			"",
			"Enable notifications?  [y]es  [n]ot now"))
	case notifications.FlowOpenSettings:
		return a.styles.ErrorStyle.Render(
			"Notifications are blocked. Enable them for selah in your system settings.")
	}
	return ""
}

// renderRow renders one settings line with cursor and toggle state.
func (a *App) renderRow(r row) string {
	cursor := "  "
	style := a.styles.RowStyle
	if r == a.cursor && !a.editing {
		cursor = "> "
		style = a.styles.SelectedStyle
	}

	if r == rowTime {
		value := a.snap.Settings.Time
		if a.editing {
			return fmt.Sprintf("> %s  %s", rowLabels[r], a.input.View())
		}
		return style.Render(fmt.Sprintf("%s%s  %s", cursor, rowLabels[r], value))
	}

	icon := a.styles.ToggleOffIcon
	if a.snap.Settings.Enabled(rowCategory(r)) {
		icon = a.styles.ToggleOnIcon
	}
	return style.Render(fmt.Sprintf("%s%s %s", cursor, icon, rowLabels[r]))
}

// rowCategory maps toggle rows to their settings category.
func rowCategory(r row) notifications.Category {
	switch r {
	case rowDaily:
		return notifications.CategoryDevotion
	case rowPrayer:
		return notifications.CategoryPrayer
	case rowCommunity:
		return notifications.CategoryCommunity
	default:
		return notifications.CategoryMilestone
	}
}

// formatTrigger renders a trigger in human terms.
func formatTrigger(tr platform.Trigger) string {
	clock := fmt.Sprintf("%02d:%02d", tr.Hour, tr.Minute)
	if tr.Kind == platform.TriggerWeekly {
		return fmt.Sprintf("%ss at %s", tr.Weekday, clock)
	}
	return "daily at " + clock
}

// friendlyError maps engine errors to short user-facing text.
func friendlyError(err error) string {
	if notifications.IsValidation(err) {
		return "Time must be HH:MM (24-hour)"
	}
	if errors.Is(err, notifications.ErrPermissionDenied) {
		return "Enable notifications for selah in your system settings"
	}
	return err.Error()
}

// setStatus records a transient status line.
func (a *App) setStatus(s string, isErr bool) {
	a.status = s
	a.statusErr = isErr
}
