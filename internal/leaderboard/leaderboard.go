// Package leaderboard provides the Bubble Tea leaderboard view.
package leaderboard

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/typeproof/typeproof/internal/model"
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
)

// Model renders ranked rows for one challenge in a scrollable table.
type Model struct {
	title string
	rows  []model.LeaderboardRow
	tbl   table.Model

	width  int
	height int
}

// NewModel constructs a leaderboard view over already-ranked rows.
func NewModel(title string, rows []model.LeaderboardRow) *Model {
	m := &Model{title: title, rows: rows}
	m.tbl = buildTable(rows, 1)
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		bodyHeight := m.height - 3
		if bodyHeight < 1 {
			bodyHeight = 1
		}
		m.tbl = buildTable(m.rows, bodyHeight)
		m.tbl.SetWidth(m.width)
		m.tbl.Focus()
		return m, nil
	case tea.KeyMsg:
		switch {
		case msg.Type == tea.KeyCtrlC, msg.Type == tea.KeyEsc, msg.String() == "q":
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.tbl, cmd = m.tbl.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	if len(m.rows) == 0 {
		return titleStyle.Render(m.title) + "\n" + emptyStyle.Render("No accepted submissions yet.") + "\n"
	}
	return titleStyle.Render(m.title) + "\n" +
		m.tbl.View() + "\n" +
		footerStyle.Render("up/down scroll  q quit")
}

// Render returns the table as plain text for non-interactive output.
func Render(title string, rows []model.LeaderboardRow) string {
	m := NewModel(title, rows)
	m.tbl.SetHeight(len(rows) + 1)
	return m.View()
}

func buildTable(rows []model.LeaderboardRow, height int) table.Model {
	columns := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Player", Width: 16},
		{Title: "Score", Width: 8},
		{Title: "WPM", Width: 7},
		{Title: "Accuracy", Width: 9},
		{Title: "Duration", Width: 9},
	}
	tableRows := make([]table.Row, 0, len(rows))
	for i, row := range rows {
		tableRows = append(tableRows, table.Row{
			fmt.Sprintf("%d", i+1),
			shortPlayer(row.Player),
			fmt.Sprintf("%d", row.Score),
			fmt.Sprintf("%d.%02d", row.WpmX100/100, row.WpmX100%100),
			fmt.Sprintf("%d.%02d%%", row.AccuracyBps/100, row.AccuracyBps%100),
			fmt.Sprintf("%d ms", row.DurationMs),
		})
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(tableRows),
		table.WithHeight(height),
	)
	t.SetStyles(tableStyles())
	return t
}

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

// shortPlayer abbreviates a 64-char hex key so rows stay readable.
func shortPlayer(player string) string {
	if len(player) <= 16 {
		return player
	}
	return player[:6] + ".." + player[len(player)-6:]
}
