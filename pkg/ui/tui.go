// Package ui provides the Bubble Tea TUI for the flip scanner.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fliplab/bzflip/business/flip/domain"
)

// Phase represents the current UI phase.
type Phase string

const (
	PhaseWelcome  Phase = "welcome"  // Initial welcome screen
	PhaseScanning Phase = "scanning" // Fetching feeds and evaluating
	PhaseResults  Phase = "results"  // Ranked flip table
	PhaseFailed   Phase = "failed"   // Scan error
)

// WelcomeDuration is how long the welcome screen shows before auto-advancing.
const WelcomeDuration = 2 * time.Second

// Model is the main Bubble Tea model for the TUI.
type Model struct {
	keys  KeyMap
	table table.Model

	phase        Phase
	welcomeStart time.Time
	scanStart    time.Time

	strategy   domain.Strategy
	results    []domain.Result
	statusLine string
	errorMsg   string

	width    int
	height   int
	ready    bool
	quitting bool
	ticks    int
}

// New creates a new TUI model.
func New() Model {
	return Model{
		keys:         DefaultKeyMap(),
		table:        newResultsTable(),
		phase:        PhaseWelcome,
		welcomeStart: time.Now(),
		statusLine:   "waiting",
	}
}

func newResultsTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Item", Width: 28},
		{Title: "Strategy", Width: 8},
		{Title: "Profit", Width: 14},
		{Title: "Buy/wk", Width: 10},
		{Title: "Sell/wk", Width: 10},
		{Title: "Detail", Width: 40},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(20),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		Bold(true).
		Foreground(ColorPrimary).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorBorder).
		BorderBottom(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(ColorBorder)
	t.SetStyles(s)

	return t
}

// Init initializes the TUI model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// tickCmd returns a command that sends a tick every 100ms for smooth animations.
func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
		// During welcome phase, any other key skips straight to the scan.
		if m.phase == PhaseWelcome {
			return m.startScan(), tickCmd()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		if msg.Height > 12 {
			m.table.SetHeight(msg.Height - 8)
		}

	case TickMsg:
		m.ticks++
		if m.phase == PhaseWelcome && time.Since(m.welcomeStart) >= WelcomeDuration {
			return m.startScan(), tickCmd()
		}
		return m, tickCmd()

	case StartScanMsg:
		if m.phase == PhaseWelcome {
			return m.startScan(), tickCmd()
		}

	case StatusMsg:
		m.statusLine = msg.Message

	case ResultsMsg:
		m.phase = PhaseResults
		m.strategy = msg.Strategy
		m.results = msg.Results
		m.table.SetRows(resultRows(msg.Results))

	case ErrorMsg:
		m.phase = PhaseFailed
		if msg.Error != nil {
			m.errorMsg = msg.Error.Error()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// startScan moves to the scanning phase and fires the scan callback.
func (m Model) startScan() Model {
	m.phase = PhaseScanning
	m.scanStart = time.Now()
	// Trigger callback directly (don't use Send() from within Update).
	if OnStartScan != nil {
		go OnStartScan()
	}
	return m
}

// View renders the TUI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.phase {
	case PhaseWelcome:
		return m.viewWelcome()
	case PhaseScanning:
		return m.viewScanning()
	case PhaseFailed:
		return m.viewFailed()
	default:
		return m.viewResults()
	}
}

func (m Model) viewWelcome() string {
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(TitleStyle.Render("bzflip — bazaar flip scanner"))
	b.WriteString("\n\n")
	b.WriteString(StatusStyle.Render("press any key to start the scan"))
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("q: quit"))
	return b.String()
}

func (m Model) viewScanning() string {
	dots := strings.Repeat(".", m.ticks%4)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(TitleStyle.Render("bzflip"))
	b.WriteString("\n\n")
	b.WriteString(StatusStyle.Render(fmt.Sprintf("scanning%s %s", dots, m.statusLine)))
	b.WriteString("\n")
	b.WriteString(StatusStyle.Render(fmt.Sprintf("elapsed %s", time.Since(m.scanStart).Round(time.Second))))
	return b.String()
}

func (m Model) viewFailed() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(TitleStyle.Render("bzflip"))
	b.WriteString("\n\n")
	b.WriteString(ErrorStyle.Render("scan failed: " + m.errorMsg))
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("q: quit"))
	return b.String()
}

func (m Model) viewResults() string {
	header := fmt.Sprintf("bzflip — %s flips (%d)", m.strategy, len(m.results))

	var b strings.Builder
	b.WriteString(TitleStyle.Render(header))
	b.WriteString("\n")
	b.WriteString(BoxStyle.Render(m.table.View()))
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("↑/↓: scroll  q: quit"))
	return b.String()
}

func resultRows(results []domain.Result) []table.Row {
	rows := make([]table.Row, 0, len(results))
	for i, result := range results {
		base := result.Base()

		profit := base.Profit.StringFixed(1)
		if base.Profit.IsNegative() {
			profit = LossValue.Render(profit)
		} else {
			profit = ProfitValue.Render(profit)
		}

		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			base.ItemID,
			string(base.Strategy),
			profit,
			fmt.Sprintf("%d", base.BuyVolume),
			fmt.Sprintf("%d", base.SellVolume),
			detail(result),
		})
	}
	return rows
}

func detail(result domain.Result) string {
	switch f := result.(type) {
	case domain.MarketFlip:
		return fmt.Sprintf("sell %s", f.SellPrice.StringFixed(1))
	case domain.CraftFlip:
		return fmt.Sprintf("%d materials", len(f.Materials))
	case domain.NPCFlip:
		return fmt.Sprintf("npc %s, cap %d/day", f.NPCSellPrice.StringFixed(1), f.MaxDailyVolume)
	}
	return ""
}

// Program holds the Bubble Tea program instance for external access.
var Program *tea.Program

// OnStartScan is called when the welcome screen completes and the scan should run.
var OnStartScan func()

// Send delivers a message to the running program, if any.
func Send(msg tea.Msg) {
	if Program != nil {
		Program.Send(msg)
	}
}
