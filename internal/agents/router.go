package agents

import "strings"

// Context carries the conversational facts the router consults. All fields are
// optional; missing values fall through to each agent's default branch.
type Context struct {
	Intent       string
	CustomerType string
	Urgency      string
	Stage        string
}

// NormalizedContext lower-cases and trims the consulted fields so routing is
// insensitive to how the voice platform capitalizes extracted values.
func (c Context) normalized() Context {
	norm := func(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
	return Context{
		Intent:       norm(c.Intent),
		CustomerType: norm(c.CustomerType),
		Urgency:      norm(c.Urgency),
		Stage:        norm(c.Stage),
	}
}

// Route decides the next agent for a call given the current agent and the
// conversational context. It is pure and total: every input maps to one of the
// fixed agent variants and it never returns an error. An unrecognized current
// agent routes as the lead qualifier so a live caller is never stranded.
func Route(current Agent, ctx Context) Agent {
	c := ctx.normalized()

	switch current {
	case SalesAgent:
		switch {
		case c.Intent == "testdrive" || c.Intent == "test_drive":
			return TestDriveCoordinator
		case c.Intent == "financing" || c.Intent == "finance":
			return FinanceSpecialist
		case c.Urgency == "high" || c.Intent == "escalate":
			return Manager
		default:
			return SalesAgent
		}

	case TestDriveCoordinator:
		// Coordinator is a terminal detour; the call always returns to sales.
		return SalesAgent

	case FinanceSpecialist:
		switch c.Intent {
		case "approved":
			return SalesAgent
		case "declined":
			return Manager
		default:
			return SalesAgent
		}

	case Manager:
		if c.Intent == "resolved" {
			return SalesAgent
		}
		return FollowUpAgent

	case FollowUpAgent:
		if c.Intent == "interested" {
			return SalesAgent
		}
		return EndCall

	case EndCall, HumanTransfer:
		// Terminal agents stay terminal; a late route request does not revive
		// the call.
		return current

	default:
		// LeadQualifier, plus any agent name we don't recognize.
		switch {
		case c.Urgency == "high":
			return Manager
		case c.Intent == "buy" && c.CustomerType == "qualified":
			return SalesAgent
		case c.Intent == "browse":
			return FollowUpAgent
		default:
			// Ambiguous leads still reach a sales flow rather than stalling.
			return SalesAgent
		}
	}
}
