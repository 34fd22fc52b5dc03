package browse

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kakarot0105/JobBot/internal/store"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Padding(1, 0, 1, 2)

	itemTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 0, 0, 4)

	itemSubtitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245")).
				Padding(0, 0, 0, 4)

	selectedTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("24")).
				Padding(0, 0, 0, 2)

	selectedSubtitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252")).
				Background(lipgloss.Color("24")).
				Padding(0, 0, 0, 2)

	appliedBadgeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("42")).
				Bold(true)

	detailLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				Width(12)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(1, 0, 0, 2)
)

type viewState int

const (
	viewList viewState = iota
	viewDetail
)

// appliedMarker abstracts the store write so tests can run the model
// without a database.
type appliedMarker interface {
	MarkApplied(url, recipientID string) error
}

type browseModel struct {
	recipientID string
	jobs        []store.DeliveredJob
	marker      appliedMarker

	cursor  int
	view    viewState
	detail  viewport.Model
	width   int
	height  int
	ready   bool
	errLine string
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.detail = viewport.New(msg.Width-4, msg.Height-6)
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		if m.view == viewDetail {
			return m.updateDetail(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m browseModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.jobs)-1 {
			m.cursor++
		}
	case "enter":
		if len(m.jobs) > 0 {
			m.view = viewDetail
			m.detail.SetContent(m.renderDetail(m.jobs[m.cursor]))
			m.detail.GotoTop()
		}
	case "a":
		m = m.toggleApplied()
	}
	return m, nil
}

func (m browseModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "backspace":
		m.view = viewList
	case "a":
		m = m.toggleApplied()
		m.detail.SetContent(m.renderDetail(m.jobs[m.cursor]))
	default:
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m browseModel) toggleApplied() browseModel {
	if len(m.jobs) == 0 {
		return m
	}
	dj := &m.jobs[m.cursor]
	if dj.Applied {
		return m // applications are append-only; no un-apply
	}
	if err := m.marker.MarkApplied(dj.Job.URL, m.recipientID); err != nil {
		m.errLine = fmt.Sprintf("mark applied: %v", err)
		return m
	}
	dj.Applied = true
	m.errLine = ""
	return m
}

func (m browseModel) View() string {
	if !m.ready {
		return ""
	}
	if m.view == viewDetail {
		return m.viewDetailPane()
	}
	return m.viewList()
}

func (m browseModel) viewList() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Delivered jobs — recipient %s (%d)", m.recipientID, len(m.jobs))))
	b.WriteString("\n")

	if len(m.jobs) == 0 {
		b.WriteString(itemSubtitleStyle.Render("Nothing delivered yet. Run `jobbot search` first."))
		b.WriteString("\n")
	}

	for i, dj := range m.jobs {
		title := dj.Job.Title
		if dj.Applied {
			title += " " + appliedBadgeStyle.Render("[applied]")
		}
		subtitle := fmt.Sprintf("%s · %s · %s · via %s",
			dj.Job.Company, dj.Job.Location, dj.Job.SalaryDisplay, dj.Job.Source)

		if i == m.cursor {
			b.WriteString(selectedTitleStyle.Render("> "+title) + "\n")
			b.WriteString(selectedSubtitleStyle.Render("  "+subtitle) + "\n")
		} else {
			b.WriteString(itemTitleStyle.Render(title) + "\n")
			b.WriteString(itemSubtitleStyle.Render(subtitle) + "\n")
		}
	}

	if m.errLine != "" {
		b.WriteString(hintStyle.Render(m.errLine))
	}
	b.WriteString(hintStyle.Render("↑/↓/j/k navigate  enter detail  a mark applied  q quit"))
	return b.String()
}

func (m browseModel) viewDetailPane() string {
	header := titleStyle.Render("Job detail")
	footer := hintStyle.Render("esc back  a mark applied  q quit")
	return header + "\n" + m.detail.View() + "\n" + footer
}

func (m browseModel) renderDetail(dj store.DeliveredJob) string {
	var b strings.Builder
	row := func(label, value string) {
		b.WriteString(detailLabelStyle.Render(label) + value + "\n")
	}
	row("Title", dj.Job.Title)
	row("Company", dj.Job.Company)
	row("Location", dj.Job.Location)
	row("Type", string(dj.Job.Type))
	row("Salary", dj.Job.SalaryDisplay)
	row("Source", dj.Job.Source)
	row("URL", dj.Job.URL)
	row("Delivered", dj.DeliveredAt.Format("2006-01-02 15:04"))
	if dj.Applied {
		row("Applied", appliedBadgeStyle.Render("yes"))
	}
	if dj.Job.Description != "" {
		b.WriteString("\n" + dj.Job.Description + "\n")
	}
	return b.String()
}

// Run launches the browse TUI over a recipient's delivery history.
func Run(recipientID string, jobs []store.DeliveredJob, marker *store.SQLiteStore) error {
	m := browseModel{
		recipientID: recipientID,
		jobs:        jobs,
		marker:      marker,
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
