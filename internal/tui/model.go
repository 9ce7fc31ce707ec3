package tui

import (
	"context"
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/medloans/internal/compare"
	"github.com/rgehrsitz/medloans/internal/config"
)

// DefaultLivingExpenses is used when the payoff pane is toggled on
var DefaultLivingExpenses = decimal.NewFromInt(80000)

// DefaultAggressiveYears is used when the payoff pane is toggled on
const DefaultAggressiveYears = 5

// Model is the root Bubble Tea model for the comparison viewer
type Model struct {
	inputPath string
	engine    *compare.CompareEngine
	options   compare.CompareOptions

	comparison *compare.ComparisonSet
	table      table.Model
	help       help.Model
	keys       keyMap
	pane       Pane

	width  int
	height int

	loading bool
	err     error
}

// NewModel creates a viewer for the input file at inputPath. A nil engine
// uses the built-in reference tables.
func NewModel(inputPath string, engine *compare.CompareEngine) Model {
	if engine == nil {
		engine = compare.NewCompareEngine(nil)
	}

	t := table.New(
		table.WithColumns(columnsFor(100)),
		table.WithFocused(true),
		table.WithHeight(8),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorBorder).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(ColorForeground).
		Background(ColorPrimary).
		Bold(false)
	t.SetStyles(s)

	return Model{
		inputPath: inputPath,
		engine:    engine,
		options: compare.CompareOptions{
			ConfigPath:      inputPath,
			LivingExpenses:  DefaultLivingExpenses,
			AggressiveYears: DefaultAggressiveYears,
		},
		table:   t,
		help:    help.New(),
		keys:    defaultKeyMap(),
		pane:    PaneDetail,
		loading: true,
	}
}

// Init starts the first comparison run
func (m Model) Init() tea.Cmd {
	return loadComparisonCmd(m.inputPath, m.engine, m.options)
}

// loadComparisonCmd parses the input file and runs the comparison off the UI loop
func loadComparisonCmd(path string, engine *compare.CompareEngine, options compare.CompareOptions) tea.Cmd {
	return func() tea.Msg {
		inputs, err := config.NewInputParser().LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}

		comparison, err := engine.Compare(context.Background(), *inputs, options)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ComparisonLoadedMsg{Comparison: comparison}
	}
}

// Comparison returns the comparison currently on screen, if any
func (m Model) Comparison() *compare.ComparisonSet {
	return m.comparison
}

// Pane returns the active lower pane
func (m Model) Pane() Pane {
	return m.pane
}

// Selected returns the index of the highlighted strategy, or -1
func (m Model) Selected() int {
	if m.comparison == nil || len(m.comparison.Results) == 0 {
		return -1
	}
	return m.table.Cursor()
}

// columnsFor sizes the strategy column to the terminal width
func columnsFor(width int) []table.Column {
	nameWidth := max(20, width-72)
	return []table.Column{
		{Title: "#", Width: 3},
		{Title: "Strategy", Width: nameWidth},
		{Title: "NPV", Width: 11},
		{Title: "Total Paid", Width: 11},
		{Title: "Forgiven", Width: 11},
		{Title: "Tax", Width: 9},
		{Title: "Yrs", Width: 4},
		{Title: "Monthly", Width: 13},
	}
}

// rowsFor builds one table row per ranked strategy
func rowsFor(comparison *compare.ComparisonSet) []table.Row {
	recommended := comparison.Recommended()
	rows := make([]table.Row, 0, len(comparison.Results))
	for i, r := range comparison.Results {
		rank := strconv.Itoa(i + 1)
		if i == recommended {
			rank += "*"
		}

		monthly := FormatCurrency(r.MonthlyPaymentRange.Min)
		if !r.MonthlyPaymentRange.Min.Equal(r.MonthlyPaymentRange.Max) {
			monthly += "-" + FormatCurrency(r.MonthlyPaymentRange.Max)[1:]
		}

		rows = append(rows, table.Row{
			rank,
			r.StrategyName,
			FormatCurrency(r.NPV),
			FormatCurrency(r.TotalPayments),
			FormatCurrency(r.ForgivenessAmount),
			FormatCurrency(r.TaxOnForgiveness),
			strconv.Itoa(r.TotalYears),
			monthly,
		})
	}
	return rows
}
