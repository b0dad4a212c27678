package components

import (
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/shipshape/internal/category"
)

// SummaryData aggregates counts for rendering the readiness summary.
type SummaryData struct {
	Total       int
	Completed   int
	Failed      int
	Running     int
	AllComplete bool
	Categories  []category.Aggregate
}

// Summary renders a textual readiness summary.
type Summary struct {
	data SummaryData
}

// NewSummary creates a new Summary component.
func NewSummary(data SummaryData) Summary {
	return Summary{data: data}
}

// Score returns the overall pass ratio in [0,1]; zero items score 0.
func (s Summary) Score() float64 {
	if s.data.Total == 0 {
		return 0
	}
	return float64(s.data.Completed) / float64(s.data.Total)
}

// View renders the summary.
func (s Summary) View() string {
	var lines []string
	if s.data.Total > 0 {
		lines = append(lines, fmt.Sprintf("Items: %d/%d ready (%.0f%%)", s.data.Completed, s.data.Total, s.Score()*100))
	}

	switch {
	case s.data.AllComplete:
		lines = append(lines, "Machine is ship shape")
	case s.data.Failed > 0:
		lines = append(lines, fmt.Sprintf("%d check(s) failed", s.data.Failed))
	case s.data.Running > 0:
		lines = append(lines, fmt.Sprintf("%d check(s) in flight", s.data.Running))
	}

	if len(s.data.Categories) > 0 {
		lines = append(lines, "Categories:")
		for _, agg := range s.data.Categories {
			lines = append(lines, fmt.Sprintf("  %s %s %d/%d (%.0f%%)",
				agg.Icon, agg.Name, agg.Passed, agg.Total, agg.Score()*100))
		}
	}

	return strings.Join(lines, "\n")
}
