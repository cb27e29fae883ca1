package report

import (
	"fmt"

	"github.com/go-analyze/charts"
	"github.com/shopspring/decimal"
)

// ExpenseBreakdownChart renders a PNG pie chart of the month's expenses
// by category.
func ExpenseBreakdownChart(period string, categoryTotals map[string]decimal.Decimal) ([]byte, error) {
	if len(categoryTotals) == 0 {
		return nil, fmt.Errorf("no expenses to chart")
	}

	var values []float64
	var categoryNames []string
	for categoryName, total := range categoryTotals {
		categoryNames = append(categoryNames, categoryName)
		values = append(values, total.InexactFloat64())
	}

	p, err := charts.PieRender(
		values,
		charts.TitleOptionFunc(charts.TitleOption{
			Text: fmt.Sprintf("Expense Breakdown - %s", period),
		}),
		charts.LegendLabelsOptionFunc(categoryNames),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create chart: %w", err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return buf, nil
}
