package toolcall

import (
	"context"
	"fmt"
	"strings"

	"github.com/wheelhouse-ai/dealership-ai-platform/internal/agents"
	"github.com/wheelhouse-ai/dealership-ai-platform/internal/comms"
	"github.com/wheelhouse-ai/dealership-ai-platform/internal/crm"
	"github.com/wheelhouse-ai/dealership-ai-platform/internal/inventory"
	"github.com/wheelhouse-ai/dealership-ai-platform/internal/sheets"
)

func (d *Dispatcher) handleLeadQualification(ctx context.Context, req Request) Response {
	info := req.Args.CustomerInfo
	if info == nil || req.Args.CallID == "" {
		return reply(req.ToolCallID, "I'd be happy to help you find the perfect vehicle! Could you please provide your information?")
	}

	d.persistProfile(ctx, *info)
	q := crm.Score(*info)

	d.appendSessionContext(ctx, req.Args.CallID, map[string]string{
		"intent":    q.Intent,
		"urgency":   q.Urgency,
		"budget":    fmt.Sprintf("%.0f", q.Budget),
		"qualified": fmt.Sprintf("%t", q.Qualified),
	})

	d.appendLeadRow(ctx, *info, q.Score, fmt.Sprintf("%s - %s %s - Budget: $%.0f - Timeline: %s",
		info.Name, info.PreferredMake, info.PreferredModel, info.Budget, orNA(info.Timeline)))

	var b strings.Builder
	fmt.Fprintf(&b, "Thank you %s! ", info.Name)
	if info.PreferredMake != "" || info.PreferredModel != "" {
		fmt.Fprintf(&b, "I see you're interested in a %s. ", strings.TrimSpace(info.PreferredMake+" "+info.PreferredModel))
	}
	if info.Budget > 0 {
		fmt.Fprintf(&b, "With your budget of $%.0f, we have some great options. ", info.Budget)
	}
	b.WriteString("Let me connect you with the right specialist who can help you find the perfect vehicle!")

	return replyData(req.ToolCallID, b.String(), q)
}

func (d *Dispatcher) handleEnhancedLeadQualification(ctx context.Context, req Request) Response {
	info := req.Args.CustomerInfo
	if info == nil || req.Args.CallID == "" {
		return reply(req.ToolCallID, "I'd be happy to help you find the perfect vehicle! Could you please tell me what specific year, make, and model you're looking for?")
	}
	if info.Email == "" {
		return reply(req.ToolCallID, "I'll need your email address to send you the vehicle details and pricing information. What's the best email to reach you at?")
	}

	profile := d.persistProfile(ctx, *info)
	q := crm.Score(*info)

	matches := d.searchByPreferences(ctx, *info)

	var linkURL string
	if len(matches) > 0 && d.cfg.Links != nil {
		ids := make([]string, len(matches))
		for i, v := range matches {
			ids[i] = v.ID
		}
		customerID := ""
		if profile != nil {
			customerID = profile.ID
		}
		link, err := d.cfg.Links.Create(ctx, req.Args.CallID, customerID, ids)
		if err != nil {
			d.logger.Error("toolcall: create shareable link failed", "call_id", req.Args.CallID, "error", err)
		} else {
			linkURL = link.FullURL
		}
	}

	rep := d.assignSalesperson(*info)

	d.appendSessionContext(ctx, req.Args.CallID, map[string]string{
		"intent":      q.Intent,
		"urgency":     q.Urgency,
		"budget":      fmt.Sprintf("%.0f", q.Budget),
		"qualified":   fmt.Sprintf("%t", q.Qualified),
		"salesperson": rep.Name,
	})

	if d.cfg.Planner != nil {
		_, err := d.cfg.Planner.PlanAfterCall(ctx, comms.PlanInput{
			CallID:      req.Args.CallID,
			Profile:     profile,
			Salesperson: rep,
			LinkURL:     linkURL,
			Vehicles:    matches,
		})
		if err != nil {
			d.logger.Error("toolcall: post-call scheduling incomplete", "call_id", req.Args.CallID, "error", err)
		}
	}

	d.appendLeadRow(ctx, *info, q.Score, fmt.Sprintf("%s - %s %s %s - Budget: $%.0f",
		info.Name, yearOrEmpty(info.PreferredYear), info.PreferredMake, info.PreferredModel, info.Budget))

	var b strings.Builder
	fmt.Fprintf(&b, "Thank you %s! ", info.Name)
	if len(matches) > 0 {
		makeWord := info.PreferredMake
		if makeWord == "" {
			makeWord = "vehicles"
		}
		fmt.Fprintf(&b, "Great news! We have %d %s that match your criteria. ", len(matches), makeWord)
		if linkURL != "" {
			b.WriteString("I'll send you a link to view them shortly. ")
		}
	} else {
		fmt.Fprintf(&b, "I'll help you find the perfect %s. ",
			strings.TrimSpace(fmt.Sprintf("%s %s %s", yearOrEmpty(info.PreferredYear), orAnyVehicle(info.PreferredMake), info.PreferredModel)))
	}
	fmt.Fprintf(&b, "%s will be assisting you today!", rep.Name)

	return replyData(req.ToolCallID, b.String(), map[string]any{
		"matchedVehicles": len(matches),
		"inventoryLink":   linkURL,
		"salesperson":     rep,
		"qualification":   q,
	})
}

// persistProfile writes the customer record best-effort; a sink failure never
// blocks the caller-facing response.
func (d *Dispatcher) persistProfile(ctx context.Context, info crm.CustomerInfo) *crm.CustomerProfile {
	if d.cfg.Profiles == nil || info.PhoneNumber == "" {
		return crm.NewProfile(info)
	}
	profile, err := d.cfg.Profiles.GetOrCreateByPhone(ctx, crm.NewProfile(info))
	if err != nil {
		d.logger.Error("toolcall: persist customer profile failed", "phone", info.PhoneNumber, "error", err)
		return crm.NewProfile(info)
	}
	return profile
}

func (d *Dispatcher) searchByPreferences(ctx context.Context, info crm.CustomerInfo) []inventory.Vehicle {
	if d.cfg.Inventory == nil {
		return nil
	}
	criteria := inventory.SearchCriteria{
		Make:        info.PreferredMake,
		Model:       info.PreferredModel,
		Type:        info.VehicleType,
		StockNumber: info.StockNumber,
		YearMin:     info.PreferredYear,
		YearMax:     info.PreferredYear,
		PriceMin:    info.PriceRangeMin,
		PriceMax:    info.PriceRangeMax,
		MileageMin:  info.MinMileage,
		MileageMax:  info.MaxMileage,
	}
	if criteria.PriceMin == 0 && info.Budget > 0 {
		criteria.PriceMin = info.Budget * 0.8
	}
	if criteria.PriceMax == 0 && info.Budget > 0 {
		criteria.PriceMax = info.Budget * 1.2
	}
	matches, err := d.cfg.Inventory.Search(ctx, criteria)
	if err != nil {
		d.logger.Error("toolcall: inventory search failed", "error", err)
		return nil
	}
	return matches
}

func (d *Dispatcher) assignSalesperson(info crm.CustomerInfo) agents.Salesperson {
	if d.cfg.Assignment == nil {
		return agents.Salesperson{Name: "Our sales specialist"}
	}
	rep, err := d.cfg.Assignment.Assign(info.PreferredMake)
	if err != nil {
		d.logger.Error("toolcall: salesperson assignment failed", "error", err)
		return agents.Salesperson{Name: "Our sales specialist"}
	}
	return rep
}

func (d *Dispatcher) appendLeadRow(ctx context.Context, info crm.CustomerInfo, score int, summary string) {
	if d.cfg.Leads == nil {
		return
	}
	row := sheets.LeadRow{
		Timestamp:       d.now(),
		CustomerName:    info.Name,
		PhoneNumber:     info.PhoneNumber,
		Intent:          info.Intent,
		VehicleInterest: strings.TrimSpace(info.PreferredMake + " " + info.PreferredModel),
		LeadScore:       score,
		Summary:         summary,
	}
	if err := d.cfg.Leads.AppendLead(ctx, row); err != nil {
		d.logger.Error("toolcall: lead sheet append failed", "phone", info.PhoneNumber, "error", err)
	}
}

func (d *Dispatcher) appendSessionContext(ctx context.Context, callID string, kv map[string]string) {
	if d.cfg.Sessions == nil {
		return
	}
	if _, err := d.cfg.Sessions.AppendContext(ctx, callID, kv); err != nil {
		d.logger.Error("toolcall: session context update failed", "call_id", callID, "error", err)
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func yearOrEmpty(year int) string {
	if year == 0 {
		return ""
	}
	return fmt.Sprintf("%d", year)
}

func orAnyVehicle(s string) string {
	if s == "" {
		return "vehicle"
	}
	return s
}
