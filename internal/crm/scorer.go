package crm

import (
	"fmt"
	"strings"
)

// Qualification is the derived purchase-readiness judgment for a lead. It is
// recomputed from scratch on every call; nothing here is stored state.
type Qualification struct {
	Score       int      `json:"score"`     // 0-100
	Qualified   bool     `json:"qualified"` // budget/urgency gate, independent of Score
	Intent      string   `json:"intent"`
	Urgency     string   `json:"urgency"`
	Budget      float64  `json:"budget"`
	ActionItems []string `json:"action_items,omitempty"`
}

// QualifiedBudgetThreshold is the budget above which a lead is sales-ready
// regardless of score.
const QualifiedBudgetThreshold = 20000

// Score converts raw caller attributes into a bounded qualification score and
// a prioritized action list. Pure: identical input yields identical output,
// and missing fields weigh zero rather than erroring.
func Score(info CustomerInfo) Qualification {
	q := Qualification{
		Intent:  info.Intent,
		Urgency: info.Urgency,
		Budget:  info.Budget,
	}
	if q.Intent == "" {
		q.Intent = "browse"
	}
	if q.Urgency == "" {
		q.Urgency = "low"
	}

	q.Score = scoreTotal(info)
	q.Qualified = info.Budget > QualifiedBudgetThreshold || strings.EqualFold(info.Urgency, "high")
	q.ActionItems = actionItems(info)
	return q
}

func scoreTotal(info CustomerInfo) int {
	score := budgetPoints(info.Budget) +
		timelinePoints(info.Timeline) +
		intentPoints(info.Intent) +
		specificityPoints(info) +
		contactPoints(info)
	if score > 100 {
		score = 100
	}
	return score
}

// budgetPoints caps at 30.
func budgetPoints(budget float64) int {
	switch {
	case budget >= 50000:
		return 30
	case budget >= 35000:
		return 25
	case budget >= 25000:
		return 20
	case budget >= 15000:
		return 15
	case budget > 0:
		return 10
	default:
		return 0
	}
}

// timelinePoints caps at 25, keyed on urgency keywords in free text.
func timelinePoints(timeline string) int {
	t := strings.ToLower(timeline)
	switch {
	case strings.Contains(t, "today") || strings.Contains(t, "now") || strings.Contains(t, "immediate"):
		return 25
	case strings.Contains(t, "week") || strings.Contains(t, "soon"):
		return 20
	case strings.Contains(t, "month"):
		return 15
	case strings.Contains(t, "quarter"):
		return 10
	default:
		return 0
	}
}

// intentPoints caps at 20.
func intentPoints(intent string) int {
	switch strings.ToLower(intent) {
	case "buy":
		return 20
	case "finance":
		return 15
	case "test_drive":
		return 10
	case "browse":
		return 5
	default:
		return 0
	}
}

// specificityPoints caps at 15: the more exactly the caller knows what they
// want, the warmer the lead.
func specificityPoints(info CustomerInfo) int {
	switch {
	case info.StockNumber != "":
		return 15
	case info.PreferredYear != 0 && info.PreferredMake != "" && info.PreferredModel != "":
		return 12
	case info.PreferredMake != "" && info.PreferredModel != "":
		return 10
	case info.PreferredMake != "" || info.VehicleType != "":
		return 5
	default:
		return 0
	}
}

// contactPoints caps at 10.
func contactPoints(info CustomerInfo) int {
	switch {
	case info.Email != "" && info.PhoneNumber != "":
		return 10
	case info.PhoneNumber != "":
		return 7
	case info.Email != "":
		return 5
	default:
		return 0
	}
}

// actionItems produces human-readable follow-up tasks ordered by priority:
// ready-to-buy signals first, data-completeness chores last.
func actionItems(info CustomerInfo) []string {
	var items []string

	if strings.EqualFold(info.Intent, "buy") || strings.Contains(strings.ToLower(info.Timeline), "today") {
		items = append(items, "Priority follow-up - customer ready to buy")
	}
	if info.StockNumber != "" {
		items = append(items, fmt.Sprintf("Check availability of stock #%s", info.StockNumber))
	}
	if info.Budget > 40000 {
		items = append(items, "Discuss financing options and warranties")
	}
	if info.PreferredMake != "" && info.PreferredModel != "" {
		items = append(items, fmt.Sprintf("Show all %s %s options", info.PreferredMake, info.PreferredModel))
	}
	if strings.EqualFold(info.Intent, "test_drive") {
		items = append(items, "Schedule test drive appointment")
	}
	if info.Email == "" {
		items = append(items, "Collect email address for follow-up")
	}

	return items
}
