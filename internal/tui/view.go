package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/medloans/internal/compare"
	"github.com/rgehrsitz/medloans/internal/domain"
)

// View renders the current state of the application
func (m Model) View() string {
	var content string
	switch {
	case m.err != nil:
		content = m.renderError()
	case m.comparison == nil:
		content = m.renderLoading()
	default:
		content = lipgloss.JoinVertical(
			lipgloss.Left,
			BorderStyle.Render(m.table.View()),
			m.renderPane(),
		)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		content,
		m.help.View(m.keys),
	)
}

// renderTitleBar renders the application title and the input summary
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("MEDLOANS - Student Loan Strategy Comparison")

	subtitle := m.inputPath
	if m.comparison != nil {
		loans := m.comparison.Inputs.Loans
		subtitle = fmt.Sprintf("%s  •  %s at %s%%  •  %s",
			m.inputPath,
			FormatCurrency(loans.TotalBalance),
			loans.WeightedInterestRate.Mul(decimal.NewFromInt(100)).StringFixed(2),
			m.pane)
	}
	if m.loading && m.comparison != nil {
		subtitle += "  •  recalculating..."
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, SubtitleStyle.Render(subtitle))
}

// renderLoading renders the placeholder shown before the first result arrives
func (m Model) renderLoading() string {
	return BorderStyle.Render("⠋ Running comparison...")
}

// renderError renders an error message
func (m Model) renderError() string {
	return ErrorStyle.Render(fmt.Sprintf("Error: %s\n\nPress any key to continue...", m.err.Error()))
}

// renderPane renders the lower pane for the highlighted strategy
func (m Model) renderPane() string {
	idx := m.Selected()
	if idx < 0 {
		return InfoStyle.Render("No strategies were evaluated")
	}
	selected := m.comparison.Results[idx]

	switch m.pane {
	case PaneBreakdown:
		return m.renderBreakdown(selected)
	case PaneRecommendation:
		return m.renderRecommendation()
	default:
		return m.renderDetail(selected)
	}
}

// renderDetail shows the highlighted strategy's summary, risks and benefits
func (m Model) renderDetail(r domain.StrategyResult) string {
	var sb strings.Builder

	sb.WriteString(SectionStyle.Render(r.StrategyName))
	sb.WriteString("\n")
	if r.Description != "" {
		sb.WriteString(r.Description + "\n")
	}
	sb.WriteString("\n")

	cards := []*MetricCard{
		NewMetricCard("Present Cost", FormatCurrency(r.NPV)),
		NewMetricCard("Total Paid", FormatCurrency(r.TotalPayments)),
		NewMetricCard("Monthly", FormatCurrency(r.MonthlyPaymentRange.Min)+" - "+FormatCurrency(r.MonthlyPaymentRange.Max)),
	}
	if r.ForgivenessAmount.IsPositive() {
		cards = append(cards, NewMetricCard("Forgiven", FormatCurrency(r.ForgivenessAmount)).
			WithDescription("tax "+FormatCurrency(r.TaxOnForgiveness)))
	}
	sb.WriteString(MetricRow(cards))
	sb.WriteString("\n")

	for _, b := range r.Benefits {
		sb.WriteString(BenefitStyle.Render("+ "+b) + "\n")
	}
	for _, risk := range r.Risks {
		sb.WriteString(RiskStyle.Render("! "+risk) + "\n")
	}

	return sb.String()
}

// renderBreakdown charts the highlighted strategy's balance year by year
func (m Model) renderBreakdown(r domain.StrategyResult) string {
	var sb strings.Builder

	sb.WriteString(SectionStyle.Render(r.StrategyName + " - ending balance by year"))
	sb.WriteString("\n")

	chart := NewBalanceChart(r.YearlyBreakdown)
	if m.width > 0 {
		chart = chart.WithWidth(max(10, m.width-30))
	}
	sb.WriteString(chart.Render())

	return sb.String()
}

// renderRecommendation shows the recommendation, its reasoning and key metrics
func (m Model) renderRecommendation() string {
	rec := m.comparison.Recommendation
	var sb strings.Builder

	sb.WriteString(SectionStyle.Render("Recommendation"))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Primary:     %s\n", rec.PrimaryStrategy.StrategyName))
	if rec.AlternativeStrategy != nil {
		sb.WriteString(fmt.Sprintf("Alternative: %s\n", rec.AlternativeStrategy.StrategyName))
	}
	sb.WriteString("Confidence:  " + ConfidenceStyle(string(rec.Confidence)).Render(string(rec.Confidence)) + "\n\n")
	for _, reason := range rec.Reasoning {
		sb.WriteString("• " + reason + "\n")
	}
	sb.WriteString("\n")

	metrics := rec.KeyMetrics
	cards := []*MetricCard{
		NewMetricCard("Debt-to-Income", metrics.DebtToIncomeRatio.StringFixed(2)),
		NewMetricCard("Savings vs Refi", FormatCurrency(metrics.TotalSavingsVsRefi)),
		NewMetricCard("Forgiveness", FormatCurrency(metrics.ForgivenessBenefit)),
	}
	if metrics.PSLFSalaryPremium != nil {
		cards = append(cards, NewMetricCard("PSLF Premium", FormatCurrency(*metrics.PSLFSalaryPremium)+"/yr"))
	}
	sb.WriteString(MetricRow(cards))

	if m.comparison.Payoff != nil {
		sb.WriteString("\n")
		sb.WriteString(renderPayoff(m.comparison.Payoff))
	}

	return sb.String()
}

// renderPayoff summarizes the aggressive payoff alternative
func renderPayoff(p *domain.AggressivePayoffResult) string {
	var sb strings.Builder

	sb.WriteString(SectionStyle.Render("Aggressive Payoff"))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Training %s/mo, then %s/mo", FormatCurrency(p.TrainingMonthlyPayment), FormatCurrency(p.AggressiveMonthlyPayment)))
	if p.StandardMonthlyPayment.IsPositive() {
		sb.WriteString(fmt.Sprintf(", then %s/mo", FormatCurrency(p.StandardMonthlyPayment)))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Paid off in %d months. Total %s, present cost %s\n",
		p.MonthsToPayoff, FormatCurrency(p.TotalPayments), FormatCurrency(p.NPV)))

	return sb.String()
}

// comparisonTitle names the terminal window after the recommendation
func comparisonTitle(c *compare.ComparisonSet) string {
	if c == nil || c.Recommendation.PrimaryStrategy.StrategyName == "" {
		return "medloans"
	}
	return "medloans: " + c.Recommendation.PrimaryStrategy.StrategyName
}
