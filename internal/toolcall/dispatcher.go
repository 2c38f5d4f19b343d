package toolcall

import (
	"context"
	"fmt"
	"time"

	"github.com/wheelhouse-ai/dealership-ai-platform/internal/agents"
	"github.com/wheelhouse-ai/dealership-ai-platform/internal/callsession"
	"github.com/wheelhouse-ai/dealership-ai-platform/internal/comms"
	"github.com/wheelhouse-ai/dealership-ai-platform/internal/crm"
	"github.com/wheelhouse-ai/dealership-ai-platform/internal/dealerbooking"
	"github.com/wheelhouse-ai/dealership-ai-platform/internal/inventory"
	"github.com/wheelhouse-ai/dealership-ai-platform/internal/sheets"
	"github.com/wheelhouse-ai/dealership-ai-platform/pkg/logging"
)

// Metrics receives per-dispatch observations. Nil is tolerated.
type Metrics interface {
	ObserveToolCall(function, status string, seconds float64)
}

// Config wires the dispatcher's collaborators.
type Config struct {
	Agents          *agents.Directory
	Assignment      agents.AssignmentPolicy
	Profiles        crm.Repository
	Sessions        callsession.Store
	Inventory       inventory.Repository
	Links           inventory.LinkStore
	Bookings        dealerbooking.Store
	Planner         *comms.Planner
	Leads           sheets.LeadSink
	Metrics         Metrics
	DealershipPhone string
	Logger          *logging.Logger
}

// Dispatcher is the single entry point for tool-call webhooks. Every branch
// returns a caller-presentable utterance, including internal failures; the
// voice platform has no visual fallback.
type Dispatcher struct {
	cfg    Config
	logger *logging.Logger
	now    func() time.Time
}

func NewDispatcher(cfg Config) *Dispatcher {
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	if cfg.Agents == nil {
		cfg.Agents = agents.NewDirectory()
	}
	return &Dispatcher{cfg: cfg, logger: cfg.Logger, now: time.Now}
}

// Dispatch normalizes the raw body and routes it to the matching handler.
func (d *Dispatcher) Dispatch(ctx context.Context, raw []byte) Response {
	start := d.now()
	req := Parse(raw)

	if req.Shape == ShapeUnrecognized {
		d.logger.Warn("toolcall: unrecognized request shape")
		d.observe("unknown", "unrecognized_shape", start)
		return reply("", "I'd be happy to help you with your vehicle search! Could you tell me a bit about what you're looking for?")
	}

	d.logger.Info("toolcall: dispatching", "function", req.Function, "shape", req.Shape.String(), "call_id", req.Args.CallID)

	var resp Response
	status := "ok"
	switch req.Function {
	case "leadQualification":
		resp = d.handleLeadQualification(ctx, req)
	case "enhancedLeadQualification":
		resp = d.handleEnhancedLeadQualification(ctx, req)
	case "transferAgent", "transferToAgent":
		resp = d.handleTransfer(ctx, req)
	case "getCallContext":
		resp = d.handleGetCallContext(ctx, req)
	case "checkInventory":
		resp = d.handleCheckInventory(ctx, req)
	case "getVehicleDetails":
		resp = d.handleGetVehicleDetails(ctx, req)
	case "scheduleTestDrive":
		resp = d.handleScheduleTestDrive(ctx, req)
	case "calculatePayment":
		resp = d.handleCalculatePayment(ctx, req)
	case "endCall":
		resp = d.handleEndCall(ctx, req)
	default:
		status = "unsupported"
		d.logger.Warn("toolcall: unsupported function", "function", req.Function)
		resp = reply(req.ToolCallID, fmt.Sprintf(
			"I'm sorry, %q is an unsupported operation. I can help with finding a vehicle, scheduling a test drive, payment estimates, or connecting you with the right person.",
			req.Function))
	}

	d.observe(req.Function, status, start)
	return resp
}

func (d *Dispatcher) observe(function, status string, start time.Time) {
	if d.cfg.Metrics == nil {
		return
	}
	d.cfg.Metrics.ObserveToolCall(function, status, d.now().Sub(start).Seconds())
}
