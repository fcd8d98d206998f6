package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/ordek/studyr/internal/analytics"
	"github.com/ordek/studyr/internal/store"
)

type topicsModel struct {
	store  *store.Store
	width  int
	height int

	topics      []store.Topic
	cursor      int
	viewingDays bool
	subCursor   int // position in the flattened subtopic list of the open topic

	formActive bool
	form       *huh.Form
	formType   string // "topic", "hours"

	// Form field pointers (survive value copies)
	formName       *string
	formDifficulty *string
	formDays       *string
	formHours      *string

	logDayIdx int // day the hours form targets
}

func newTopicsModel(s *store.Store) topicsModel {
	name, diff, days, hours := "", string(store.DifficultyMedium), "", ""
	return topicsModel{
		store:          s,
		formName:       &name,
		formDifficulty: &diff,
		formDays:       &days,
		formHours:      &hours,
	}
}

func (m *topicsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type topicsDataMsg struct {
	topics []store.Topic
}

func (m topicsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return topicsDataMsg{topics: m.store.Topics()}
	}
}

// subRef locates one subtopic of the open topic by day and position.
type subRef struct {
	dayIdx int
	subIdx int
}

// flattened returns cursor targets for the day view: every subtopic of
// the open topic in day order.
func (m topicsModel) flattened() []subRef {
	if m.cursor >= len(m.topics) {
		return nil
	}
	var refs []subRef
	for di, d := range m.topics[m.cursor].Days {
		for si := range d.Subtopics {
			refs = append(refs, subRef{dayIdx: di, subIdx: si})
		}
	}
	return refs
}

func (m topicsModel) update(msg tea.Msg) (topicsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case topicsDataMsg:
		m.topics = msg.topics
		if m.cursor >= len(m.topics) {
			m.cursor = max(0, len(m.topics)-1)
		}
		if len(m.topics) == 0 {
			m.viewingDays = false
		}
		refs := m.flattened()
		if m.subCursor >= len(refs) {
			m.subCursor = max(0, len(refs)-1)
		}
		return m, nil

	case tea.KeyMsg:
		if m.viewingDays {
			return m.updateDayView(msg)
		}
		return m.updateTopicList(msg)
	}
	return m, nil
}

func (m topicsModel) updateTopicList(msg tea.KeyMsg) (topicsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.topics)-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.Enter):
		if len(m.topics) > 0 {
			m.viewingDays = true
			m.subCursor = 0
		}
	case key.Matches(msg, keys.New):
		return m.showNewTopicForm()
	case key.Matches(msg, keys.Delete):
		if len(m.topics) > 0 {
			m.store.DeleteTopic(m.topics[m.cursor].ID)
			return m, tea.Batch(
				m.refresh(),
				func() tea.Msg { return topicDeletedMsg{} },
			)
		}
	case key.Matches(msg, keys.Start):
		if len(m.topics) > 0 {
			m.store.StartTimer(m.topics[m.cursor].ID)
			return m, func() tea.Msg { return timerStartedMsg{} }
		}
	}
	return m, nil
}

func (m topicsModel) updateDayView(msg tea.KeyMsg) (topicsModel, tea.Cmd) {
	refs := m.flattened()

	switch {
	case key.Matches(msg, keys.Back):
		m.viewingDays = false
		return m, nil
	case key.Matches(msg, keys.Up):
		if m.subCursor > 0 {
			m.subCursor--
		}
	case key.Matches(msg, keys.Down):
		if m.subCursor < len(refs)-1 {
			m.subCursor++
		}
	case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Pause):
		if m.subCursor < len(refs) {
			t := m.topics[m.cursor]
			ref := refs[m.subCursor]
			m.store.ToggleSubtopic(t.ID, ref.dayIdx, t.Days[ref.dayIdx].Subtopics[ref.subIdx].ID)
			return m, m.refresh()
		}
	case key.Matches(msg, keys.LogHours):
		if m.subCursor < len(refs) {
			return m.showLogHoursForm(refs[m.subCursor].dayIdx)
		}
	}
	return m, nil
}

func (m topicsModel) showNewTopicForm() (topicsModel, tea.Cmd) {
	*m.formName = ""
	*m.formDifficulty = string(store.DifficultyMedium)
	*m.formDays = ""
	m.formType = "topic"

	diffOptions := []huh.Option[string]{
		huh.NewOption("Easy", string(store.DifficultyEasy)),
		huh.NewOption("Medium", string(store.DifficultyMedium)),
		huh.NewOption("Hard", string(store.DifficultyHard)),
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Topic Name").Value(m.formName),
			huh.NewSelect[string]().Title("Difficulty").Options(diffOptions...).Value(m.formDifficulty),
			huh.NewText().
				Title("Days & Subtopics").
				Description("One line per day, subtopics separated by ;").
				Placeholder("vectors; dot product\nmatrices; determinants").
				Value(m.formDays),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m topicsModel) showLogHoursForm(dayIdx int) (topicsModel, tea.Cmd) {
	*m.formHours = ""
	m.formType = "hours"
	m.logDayIdx = dayIdx

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("Hours for day %d", dayIdx+1)).
				Placeholder("1.5").
				Validate(validateHours).
				Value(m.formHours),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func validateHours(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("enter a number")
	}
	if v < 0 {
		return fmt.Errorf("hours cannot be negative")
	}
	return nil
}

// parseDayLines turns the form's day text into create-topic input:
// one line per day, subtopics split on ";". Blank subtopics and empty
// days are cleaned up by the store.
func parseDayLines(text string) []store.DayInput {
	var days []store.DayInput
	for _, line := range strings.Split(text, "\n") {
		days = append(days, store.DayInput{Subtopics: strings.Split(line, ";")})
	}
	return days
}

func (m topicsModel) updateForm(msg tea.Msg) (topicsModel, tea.Cmd) {
	// Check for escape to cancel form
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		switch m.formType {
		case "topic":
			m.store.CreateTopic(*m.formName, store.Difficulty(*m.formDifficulty), parseDayLines(*m.formDays))
			return m, tea.Batch(
				m.refresh(),
				func() tea.Msg { return topicCreatedMsg{} },
			)
		case "hours":
			if m.cursor < len(m.topics) {
				if v, err := strconv.ParseFloat(strings.TrimSpace(*m.formHours), 64); err == nil && v > 0 {
					m.store.LogHours(m.topics[m.cursor].ID, m.logDayIdx, v)
					return m, tea.Batch(
						m.refresh(),
						func() tea.Msg { return statusMsg{text: fmt.Sprintf("Logged %.2fh", v)} },
					)
				}
			}
			return m, m.refresh()
		}
	}

	return m, cmd
}

func (m topicsModel) view() string {
	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Topic")
		if m.formType == "hours" {
			title = titleStyle.Render("Log Hours")
		}
		formView := m.form.View()
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", formView)
		return panelStyle.Width(m.width - 4).Render(content)
	}

	if m.viewingDays {
		return m.renderDayView()
	}
	return m.renderTopicList()
}

func (m topicsModel) renderTopicList() string {
	w := m.width - 4
	title := titleStyle.Render("Topics")

	if len(m.topics) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No topics yet. Press n to create one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	// Table header
	header := mutedStyle.Render(fmt.Sprintf("  %-3s %-24s %-10s %6s %8s", "", "Name", "Level", "Done", "Hours"))
	rows = append(rows, header)

	for i, t := range m.topics {
		dot := difficultyStyle(t.Difficulty).Render("●")
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		pct := analytics.CompletionPercentage(t)
		row := style.Render(fmt.Sprintf("%s%s %-24s %-10s %5d%% %8s",
			cursor, dot, t.Name, t.Difficulty, pct, formatHours(t.TotalHoursStudied)))
		rows = append(rows, row)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  d: delete  s: start timer  enter: days"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m topicsModel) renderDayView() string {
	w := m.width - 4
	t := m.topics[m.cursor]
	dot := difficultyStyle(t.Difficulty).Render("●")
	title := titleStyle.Render(fmt.Sprintf("%s %s — %d%% complete", dot, t.Name, analytics.CompletionPercentage(t)))

	refs := m.flattened()
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	flat := 0
	for _, d := range t.Days {
		check := " "
		if d.Completed {
			check = successStyle.Render("✓")
		}
		dateStr := ""
		if d.Date != "" {
			dateStr = mutedStyle.Render("  " + d.Date)
		}
		rows = append(rows, fmt.Sprintf("  %s Day %d  %s%s",
			check, d.Day, highlightStyle.Render(formatHours(d.HoursStudied)), dateStr))

		for _, sub := range d.Subtopics {
			cursor := "   "
			style := normalItemStyle
			if flat == m.subCursor && flat < len(refs) {
				cursor = " > "
				style = selectedItemStyle
			}
			box := "☐"
			if sub.Completed {
				box = successStyle.Render("☑")
			}
			rows = append(rows, style.Render(fmt.Sprintf("%s%s %s", cursor, box, sub.Name)))
			flat++
		}
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  space/enter: toggle  g: log hours  esc: back"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
