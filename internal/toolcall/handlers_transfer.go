package toolcall

import (
	"context"
	"fmt"
	"strings"

	"github.com/wheelhouse-ai/dealership-ai-platform/internal/agents"
)

// agentAliases maps the shorthand department names the assistants use to the
// fixed agent variants.
var agentAliases = map[string]agents.Agent{
	"sales":                agents.SalesAgent,
	"salesagent":           agents.SalesAgent,
	"leadqualifier":        agents.LeadQualifier,
	"testdrive":            agents.TestDriveCoordinator,
	"testdrivecoordinator": agents.TestDriveCoordinator,
	"finance":              agents.FinanceSpecialist,
	"financespecialist":    agents.FinanceSpecialist,
	"manager":              agents.Manager,
	"followup":             agents.FollowUpAgent,
	"followupagent":        agents.FollowUpAgent,
	"endcall":              agents.EndCall,
	"human":                agents.HumanTransfer,
	"humantransfer":        agents.HumanTransfer,
}

func resolveTargetAgent(name string) (agents.Agent, bool) {
	key := strings.ToLower(strings.ReplaceAll(strings.ReplaceAll(strings.TrimSpace(name), "_", ""), " ", ""))
	if a, ok := agentAliases[key]; ok {
		return a, true
	}
	return agents.SalesAgent, false
}

func (d *Dispatcher) handleTransfer(ctx context.Context, req Request) Response {
	targetName := firstNonEmpty(req.Args.TargetAgent, req.Args.ToAgent)
	transferCtx := req.Args.Context
	if len(transferCtx) == 0 {
		transferCtx = req.Args.ConversationContext
	}

	target, known := resolveTargetAgent(targetName)
	if !known {
		d.logger.Warn("toolcall: unknown target agent, defaulting to sales", "target", targetName, "call_id", req.Args.CallID)
	}

	from := agents.LeadQualifier
	reason := "customer_request"
	if transferCtx != nil {
		if cur := transferCtx["currentAgent"]; cur != "" {
			if a, ok := resolveTargetAgent(cur); ok {
				from = a
			}
		}
		if intent := transferCtx["intent"]; intent != "" {
			reason = intent
		}
	}

	if d.cfg.Sessions != nil && req.Args.CallID != "" {
		d.appendSessionContext(ctx, req.Args.CallID, transferCtx)
		if _, err := d.cfg.Sessions.RecordTransfer(ctx, req.Args.CallID, from, target, reason); err != nil {
			d.logger.Error("toolcall: record transfer failed", "call_id", req.Args.CallID, "error", err)
		}
	}

	if !known {
		return replyTransfer(req.ToolCallID,
			"I'm sorry, I couldn't find that department. Let me connect you with our main sales team.",
			Transfer{Type: TransferAssistant, Assistant: string(agents.SalesAgent)})
	}

	profile := d.cfg.Agents.Profile(target)

	switch target {
	case agents.HumanTransfer:
		return replyTransfer(req.ToolCallID, profile.TransferLine, Transfer{
			Type:        TransferHuman,
			PhoneNumber: d.cfg.DealershipPhone,
		})
	case agents.SalesAgent:
		// Sales still rides the dealership line until assistant squads exist.
		if d.cfg.DealershipPhone != "" {
			summary := transferCtx["summary"]
			if summary == "" {
				summary = "Qualified lead for sales"
			}
			return replyTransfer(req.ToolCallID, profile.TransferLine, Transfer{
				Type:        TransferPhone,
				PhoneNumber: d.cfg.DealershipPhone,
				Message:     fmt.Sprintf("Transferring customer: %s", summary),
			})
		}
		fallthrough
	default:
		return replyTransfer(req.ToolCallID, profile.TransferLine, Transfer{
			Type:      TransferAssistant,
			Assistant: string(target),
		})
	}
}

func (d *Dispatcher) handleGetCallContext(ctx context.Context, req Request) Response {
	if req.Args.CallID == "" {
		return reply(req.ToolCallID, "I don't have any previous context for this call yet, but I'm happy to help. What can I do for you?")
	}
	if d.cfg.Sessions == nil {
		return reply(req.ToolCallID, "I don't have any previous context for this call yet, but I'm happy to help. What can I do for you?")
	}

	sess, err := d.cfg.Sessions.GetOrCreate(ctx, req.Args.CallID)
	if err != nil {
		d.logger.Error("toolcall: get call context failed", "call_id", req.Args.CallID, "error", err)
		return reply(req.ToolCallID, "I wasn't able to pull up the earlier conversation, but I can still help. What are you looking for today?")
	}

	if len(sess.Context) == 0 {
		return reply(req.ToolCallID, "No previous context found for this call. How can I help you today?")
	}
	return replyData(req.ToolCallID, "Context retrieved successfully", sess)
}

func (d *Dispatcher) handleEndCall(ctx context.Context, req Request) Response {
	line := d.cfg.Agents.Profile(agents.EndCall).TransferLine

	if req.Args.CallID == "" || d.cfg.Sessions == nil {
		return reply(req.ToolCallID, line)
	}

	outcome := req.Args.Outcome
	if outcome == "" {
		outcome = "completed"
	}
	sess, err := d.cfg.Sessions.Complete(ctx, req.Args.CallID, outcome, req.Args.Summary)
	if err != nil {
		d.logger.Error("toolcall: complete session failed", "call_id", req.Args.CallID, "error", err)
		return reply(req.ToolCallID, line)
	}

	d.logger.Info("toolcall: call completed",
		"call_id", req.Args.CallID, "outcome", outcome, "transfers", len(sess.TransferHistory))
	return reply(req.ToolCallID, line)
}
