package comms

import (
	"fmt"
	"strings"

	"github.com/wheelhouse-ai/dealership-ai-platform/internal/agents"
	"github.com/wheelhouse-ai/dealership-ai-platform/internal/crm"
	"github.com/wheelhouse-ai/dealership-ai-platform/internal/inventory"
)

// SMSLinkBody is the text sent right after the call with the shareable
// inventory link.
func SMSLinkBody(customerName string, link string, rep agents.Salesperson) string {
	name := customerName
	if name == "" {
		name = "there"
	}
	return fmt.Sprintf("Hi %s, here are your matched vehicles: %s\n\n%s will follow up shortly.\n%s",
		name, link, rep.Name, rep.Phone)
}

// SummarySubject builds the subject line for the post-call summary email.
func SummarySubject(profile *crm.CustomerProfile) string {
	makeName := "Multiple"
	if profile != nil && profile.PreferredMake != "" {
		makeName = profile.PreferredMake
	}
	return fmt.Sprintf("Your Vehicle Search Results - %s Options Available", makeName)
}

// SummaryBody renders the post-call summary email: the assigned rep, the
// caller's stated preferences, and up to five matched vehicles.
func SummaryBody(profile *crm.CustomerProfile, rep agents.Salesperson, link string, vehicles []inventory.Vehicle) string {
	var b strings.Builder

	name := "Valued Customer"
	if profile != nil && profile.Name != "" {
		name = profile.Name
	}
	fmt.Fprintf(&b, "Dear %s,\n\n", name)
	b.WriteString("Thank you for your interest in finding the perfect vehicle with us today!\n\n")

	fmt.Fprintf(&b, "Your Assigned Sales Specialist:\n%s\n%s\n%s\n\n", rep.Name, rep.Email, rep.Phone)

	b.WriteString("Your Vehicle Preferences:\n")
	fmt.Fprintf(&b, "- %s %s %s\n", orAny(yearString(profile), "Any Year"), orAny(prefMake(profile), "Any Make"), orAny(prefModel(profile), "Any Model"))
	fmt.Fprintf(&b, "- Budget: %s\n\n", budgetString(profile))

	if len(vehicles) > 0 {
		fmt.Fprintf(&b, "Matched Vehicles (%d found):\n", len(vehicles))
		for i, v := range vehicles {
			if i == 5 {
				break
			}
			fmt.Fprintf(&b, "- %d %s %s - $%.0f - %d miles (Stock #%s)\n",
				v.Year, v.Make, v.Model, v.Price, v.Mileage, v.StockNumber)
		}
		if link != "" {
			fmt.Fprintf(&b, "\nView all matches: %s\n", link)
		}
		b.WriteString("\n")
	}

	b.WriteString("Next Steps:\n")
	fmt.Fprintf(&b, "1. %s will contact you within the next hour to discuss your options\n", rep.Name)
	b.WriteString("2. Feel free to browse the inventory link above\n")
	b.WriteString("3. Reply to this email with any questions or specific requirements\n\n")
	b.WriteString("We look forward to helping you find your perfect vehicle!\n\nBest regards,\nThe Wheelhouse Motors Team\n")

	return b.String()
}

func orAny(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func yearString(p *crm.CustomerProfile) string {
	if p == nil || p.PreferredYear == 0 {
		return ""
	}
	return fmt.Sprintf("%d", p.PreferredYear)
}

func prefMake(p *crm.CustomerProfile) string {
	if p == nil {
		return ""
	}
	return p.PreferredMake
}

func prefModel(p *crm.CustomerProfile) string {
	if p == nil {
		return ""
	}
	return p.PreferredModel
}

func budgetString(p *crm.CustomerProfile) string {
	if p == nil || p.Budget <= 0 {
		return "Flexible"
	}
	return fmt.Sprintf("$%.0f", p.Budget)
}
