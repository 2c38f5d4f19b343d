package toolcall

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/wheelhouse-ai/dealership-ai-platform/internal/dealerbooking"
	"github.com/wheelhouse-ai/dealership-ai-platform/internal/finance"
	"github.com/wheelhouse-ai/dealership-ai-platform/internal/inventory"
)

func (d *Dispatcher) handleCheckInventory(ctx context.Context, req Request) Response {
	if d.cfg.Inventory == nil {
		return reply(req.ToolCallID, "I'm having trouble accessing our inventory right now. Let me get someone to help you.")
	}

	criteria := inventory.SearchCriteria{
		Type:     req.Args.VehicleType,
		Make:     req.Args.Make,
		Model:    req.Args.Model,
		Features: req.Args.Features,
	}
	if r := req.Args.YearRange; r != nil {
		criteria.YearMin = int(r.Min)
		criteria.YearMax = int(r.Max)
	}
	if r := req.Args.PriceRange; r != nil {
		criteria.PriceMin = r.Min
		criteria.PriceMax = r.Max
	}

	matches, err := d.cfg.Inventory.Search(ctx, criteria)
	if err != nil {
		d.logger.Error("toolcall: inventory search failed", "error", err)
		return reply(req.ToolCallID, "I'm having trouble accessing our inventory right now. Let me get someone to help you.")
	}

	if len(matches) == 0 {
		return reply(req.ToolCallID, "I couldn't find any vehicles matching those exact criteria. Would you like me to broaden the search or show you similar options?")
	}

	var b strings.Builder
	plural := ""
	if len(matches) > 1 {
		plural = "s"
	}
	fmt.Fprintf(&b, "I found %d vehicle%s matching your criteria:\n", len(matches), plural)
	for i, v := range matches {
		fmt.Fprintf(&b, "\n%d. %d %s %s - %s\n", i+1, v.Year, v.Make, v.Model, v.Color)
		fmt.Fprintf(&b, "   Price: $%.0f | Mileage: %d miles\n", v.Price, v.Mileage)
		if len(v.Features) > 0 {
			top := v.Features
			if len(top) > 3 {
				top = top[:3]
			}
			fmt.Fprintf(&b, "   Key features: %s\n", strings.Join(top, ", "))
		}
		fmt.Fprintf(&b, "   MPG: %d city / %d highway", v.MPGCity, v.MPGHighway)
		if i < len(matches)-1 {
			b.WriteString("\n")
		}
	}

	return replyData(req.ToolCallID, b.String(), map[string]any{
		"count":    len(matches),
		"vehicles": matches,
	})
}

func (d *Dispatcher) handleGetVehicleDetails(ctx context.Context, req Request) Response {
	if req.Args.VehicleID == "" || d.cfg.Inventory == nil {
		return reply(req.ToolCallID, "I couldn't find that specific vehicle. Could you provide the correct ID or would you like me to search for similar vehicles?")
	}

	v, err := d.cfg.Inventory.GetByID(ctx, req.Args.VehicleID)
	if err != nil {
		if !errors.Is(err, inventory.ErrVehicleNotFound) {
			d.logger.Error("toolcall: vehicle lookup failed", "vehicle_id", req.Args.VehicleID, "error", err)
			return reply(req.ToolCallID, "I'm having trouble retrieving those details. Let me connect you with someone who can help.")
		}
		return reply(req.ToolCallID, "I couldn't find that specific vehicle. Could you provide the correct ID or would you like me to search for similar vehicles?")
	}

	// Rough monthly figure: 10% down over 60 months, before rate.
	estMonthly := math.Round(v.Price * 0.9 / 60)

	var b strings.Builder
	fmt.Fprintf(&b, "Here are the complete details for the %s:\n\n", v.Description())
	fmt.Fprintf(&b, "Specifications:\n- Color: %s\n- Mileage: %d miles\n- VIN: %s\n- Type: %s\n\n", v.Color, v.Mileage, v.VIN, capitalize(v.Type))
	fmt.Fprintf(&b, "Pricing:\n- List Price: $%.0f\n- Estimated Monthly: $%.0f (60 months, 10%% down)\n\n", v.Price, estMonthly)
	fmt.Fprintf(&b, "Fuel Economy:\n- City: %d MPG\n- Highway: %d MPG\n\n", v.MPGCity, v.MPGHighway)
	b.WriteString("Features:\n")
	for _, f := range v.Features {
		fmt.Fprintf(&b, "- %s\n", f)
	}
	fmt.Fprintf(&b, "\nThis vehicle is currently %s and ready for a test drive. Would you like to schedule one?", v.Status)

	return replyData(req.ToolCallID, b.String(), v)
}

func (d *Dispatcher) handleScheduleTestDrive(ctx context.Context, req Request) Response {
	if d.cfg.Inventory == nil || d.cfg.Bookings == nil {
		return reply(req.ToolCallID, "I'm having trouble scheduling that right now. Let me transfer you to someone who can help set up your test drive.")
	}

	v, err := d.cfg.Inventory.GetByID(ctx, req.Args.VehicleID)
	if err != nil {
		return reply(req.ToolCallID, "I couldn't find that vehicle for the test drive. Let me help you find the right one.")
	}

	booking, err := d.cfg.Bookings.Create(ctx, dealerbooking.Request{
		CallID:        req.Args.CallID,
		CustomerName:  req.Args.CustomerName,
		CustomerPhone: req.Args.CustomerPhone,
		VehicleID:     v.ID,
		VehicleLabel:  v.Description(),
		PreferredDate: req.Args.PreferredDate,
		PreferredTime: req.Args.PreferredTime,
	})
	if err != nil {
		switch {
		case errors.Is(err, dealerbooking.ErrMissingCustomer):
			return reply(req.ToolCallID, "I'd love to get that test drive on the books. Could you give me your name and the best phone number to reach you?")
		case errors.Is(err, dealerbooking.ErrMissingSlot):
			return reply(req.ToolCallID, "I'd be happy to schedule a test drive for you. What day and time works best?")
		default:
			d.logger.Error("toolcall: create booking failed", "call_id", req.Args.CallID, "error", err)
			return reply(req.ToolCallID, "I'm having trouble scheduling that right now. Let me transfer you to someone who can help set up your test drive.")
		}
	}

	var b strings.Builder
	b.WriteString("Perfect! I've scheduled your test drive:\n\n")
	b.WriteString("Appointment Details:\n")
	fmt.Fprintf(&b, "- Vehicle: %s (%s)\n", booking.VehicleLabel, v.Color)
	fmt.Fprintf(&b, "- Date: %s\n- Time: %s\n", booking.PreferredDate, booking.PreferredTime)
	fmt.Fprintf(&b, "- Confirmation #: %s\n\n", booking.Confirmation)
	fmt.Fprintf(&b, "I'll send you a text confirmation to %s. Please bring your driver's license and proof of insurance.\n\n", booking.CustomerPhone)
	fmt.Fprintf(&b, "Is there anything specific about the %s you'd like me to highlight during the test drive?", v.Model)

	return replyData(req.ToolCallID, b.String(), booking)
}

func (d *Dispatcher) handleCalculatePayment(ctx context.Context, req Request) Response {
	if req.Args.VehiclePrice <= 0 {
		return reply(req.ToolCallID, "I can put together a payment estimate for you. What's the price of the vehicle you're considering?")
	}

	term := req.Args.LoanTerm
	if term <= 0 {
		term = 60
	}
	tier := finance.TierFromString(req.Args.CreditScore)

	est, err := finance.MonthlyPayment(req.Args.VehiclePrice, req.Args.DownPayment, req.Args.TradeInValue, term, tier)
	if err != nil {
		if errors.Is(err, finance.ErrInvalidLoan) {
			return reply(req.ToolCallID, "With that down payment and trade-in, you'd cover the vehicle outright with no financing needed. Would you like to talk through the cash purchase?")
		}
		d.logger.Error("toolcall: payment calculation failed", "error", err)
		return reply(req.ToolCallID, "I'm having trouble running those numbers right now. Our finance specialist can walk you through an exact quote.")
	}

	var b strings.Builder
	b.WriteString("Based on your information, here's your payment estimate:\n\n")
	b.WriteString("Loan Details:\n")
	fmt.Fprintf(&b, "- Vehicle Price: $%.0f\n", req.Args.VehiclePrice)
	fmt.Fprintf(&b, "- Down Payment: $%.0f\n", req.Args.DownPayment)
	fmt.Fprintf(&b, "- Trade-in Value: $%.0f\n", req.Args.TradeInValue)
	fmt.Fprintf(&b, "- Loan Amount: $%.0f\n\n", est.LoanAmount)
	fmt.Fprintf(&b, "Monthly Payment: $%.0f\n", est.MonthlyPayment)
	fmt.Fprintf(&b, "- Term: %d months\n", est.TermMonths)
	fmt.Fprintf(&b, "- Interest Rate: %.2f%% APR (%s credit)\n", est.AnnualRate*100, est.CreditTier)
	fmt.Fprintf(&b, "- Total Interest: $%.0f\n\n", est.TotalInterest)
	b.WriteString("This is an estimate. Your actual rate may vary based on credit approval. Would you like to explore different down payment options or loan terms?")

	return replyData(req.ToolCallID, b.String(), est)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
