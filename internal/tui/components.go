package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/medloans/internal/domain"
)

// MetricCard displays a single metric with a label, value and optional note
type MetricCard struct {
	Label       string
	Value       string
	Description string
	Width       int
}

// NewMetricCard creates a new metric card
func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{
		Label: label,
		Value: value,
		Width: 22,
	}
}

// WithDescription adds a description/subtitle
func (m *MetricCard) WithDescription(desc string) *MetricCard {
	m.Description = desc
	return m
}

// WithWidth sets the card width
func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

// Render returns the styled metric card
func (m *MetricCard) Render() string {
	content := MetricLabelStyle.Render(m.Label) + "\n" + MetricValueStyle.Render(m.Value)
	if m.Description != "" {
		content += "\n" + SubtitleStyle.Render(m.Description)
	}

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 1).
		Width(m.Width)

	return cardStyle.Render(content)
}

// MetricRow renders cards side by side
func MetricRow(cards []*MetricCard) string {
	if len(cards) == 0 {
		return ""
	}

	rendered := make([]string, len(cards))
	for i, card := range cards {
		rendered[i] = card.Render()
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// BalanceChart draws one horizontal bar per year, scaled to the largest balance
type BalanceChart struct {
	States   []domain.YearlyLoanState
	Width    int
	MaxYears int
}

// NewBalanceChart creates a chart over a strategy's yearly breakdown
func NewBalanceChart(states []domain.YearlyLoanState) *BalanceChart {
	return &BalanceChart{
		States:   states,
		Width:    40,
		MaxYears: 30,
	}
}

// WithWidth sets the longest bar's width in cells
func (c *BalanceChart) WithWidth(width int) *BalanceChart {
	c.Width = width
	return c
}

// Render returns the chart, or a note when there is nothing to draw
func (c *BalanceChart) Render() string {
	if len(c.States) == 0 {
		return InfoStyle.Render("No balance to display")
	}

	states := c.States
	if c.MaxYears > 0 && len(states) > c.MaxYears {
		states = states[:c.MaxYears]
	}

	peak := decimal.Zero
	for _, s := range states {
		peak = decimal.Max(peak, s.EndingBalance)
	}

	var sb strings.Builder
	for _, s := range states {
		cells := 0
		if peak.IsPositive() {
			cells = int(s.EndingBalance.Div(peak).Mul(decimal.NewFromInt(int64(c.Width))).Round(0).IntPart())
		}
		bar := BarStyle.Render(strings.Repeat("█", cells))
		pad := strings.Repeat(" ", c.Width-cells)
		sb.WriteString(MetricLabelStyle.Render(yearLabel(s.Year)) + " " + bar + pad + " " + FormatCurrency(s.EndingBalance) + "\n")
	}
	return sb.String()
}

func yearLabel(year int) string {
	return fmt.Sprintf("Y%02d", year)
}
