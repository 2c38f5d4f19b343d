package toolcall

import (
	"encoding/json"
	"strings"

	"github.com/wheelhouse-ai/dealership-ai-platform/internal/crm"
)

// Shape identifies which of the known request layouts a webhook body used.
// The voice platform has shipped several formats over time; we match them
// explicitly instead of probing fields.
type Shape int

const (
	// ShapeParameters is {"function": "...", "parameters": {...}}.
	ShapeParameters Shape = iota
	// ShapeEnvelope is {"message": {"toolCalls": [{"id", "function": {"name", "arguments"}}]}}.
	ShapeEnvelope
	// ShapeFlat carries the function name and arguments at the root.
	ShapeFlat
	// ShapeUnrecognized is the fallback when no layout matches.
	ShapeUnrecognized
)

func (s Shape) String() string {
	switch s {
	case ShapeParameters:
		return "parameters"
	case ShapeEnvelope:
		return "envelope"
	case ShapeFlat:
		return "flat"
	default:
		return "unrecognized"
	}
}

// Range is a {min,max} argument pair.
type Range struct {
	Min float64 `json:"min,omitempty"`
	Max float64 `json:"max,omitempty"`
}

// Arguments is the canonical argument bag after normalization. Fields are a
// union across all tool functions; each handler reads its own subset.
type Arguments struct {
	ToolCallID string `json:"toolCallId,omitempty"`
	CallID     string `json:"callId,omitempty"`

	CustomerInfo *crm.CustomerInfo `json:"customerInfo,omitempty"`

	// Transfer fields. Older callers used toAgent/conversationContext.
	TargetAgent         string            `json:"targetAgent,omitempty"`
	ToAgent             string            `json:"toAgent,omitempty"`
	Context             map[string]string `json:"context,omitempty"`
	ConversationContext map[string]string `json:"conversationContext,omitempty"`

	// Inventory search fields.
	VehicleType string   `json:"vehicleType,omitempty"`
	Make        string   `json:"make,omitempty"`
	Model       string   `json:"model,omitempty"`
	YearRange   *Range   `json:"yearRange,omitempty"`
	PriceRange  *Range   `json:"priceRange,omitempty"`
	Features    []string `json:"features,omitempty"`

	// Vehicle detail / test drive fields.
	VehicleID     string `json:"vehicleId,omitempty"`
	CustomerName  string `json:"customerName,omitempty"`
	CustomerPhone string `json:"customerPhone,omitempty"`
	PreferredDate string `json:"preferredDate,omitempty"`
	PreferredTime string `json:"preferredTime,omitempty"`

	// Payment fields.
	VehiclePrice float64 `json:"vehiclePrice,omitempty"`
	DownPayment  float64 `json:"downPayment,omitempty"`
	TradeInValue float64 `json:"tradeInValue,omitempty"`
	LoanTerm     int     `json:"loanTerm,omitempty"`
	CreditScore  string  `json:"creditScore,omitempty"`

	// End-call fields.
	Outcome string `json:"outcome,omitempty"`
	Summary string `json:"summary,omitempty"`
}

// Request is a normalized tool-call request.
type Request struct {
	Shape      Shape
	Function   string
	ToolCallID string
	Args       Arguments
}

type envelopeToolCall struct {
	ID       string `json:"id"`
	Function struct {
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments"`
	} `json:"function"`
}

type probe struct {
	// Parameters wrapper.
	Function   string          `json:"function"`
	Name       string          `json:"name"`
	Parameters json.RawMessage `json:"parameters"`

	// Platform envelope.
	Message *struct {
		Type      string             `json:"type"`
		ToolCalls []envelopeToolCall `json:"toolCalls"`
	} `json:"message"`

	ToolCallID string `json:"toolCallId"`
	CallID     string `json:"callId"`
}

// Parse normalizes a raw webhook body into a Request. Precedence:
// parameters wrapper, then platform envelope, then flat root. The first
// matching shape wins; shapes are never merged.
func Parse(raw []byte) Request {
	var p probe
	if err := json.Unmarshal(raw, &p); err != nil {
		return Request{Shape: ShapeUnrecognized}
	}

	if len(p.Parameters) > 0 && isObject(p.Parameters) {
		name := firstNonEmpty(p.Function, p.Name)
		if name == "" {
			return Request{Shape: ShapeUnrecognized}
		}
		req := Request{Shape: ShapeParameters, Function: name, ToolCallID: p.ToolCallID}
		decodeArgs(p.Parameters, &req)
		return req
	}

	if p.Message != nil && len(p.Message.ToolCalls) > 0 {
		tc := p.Message.ToolCalls[0]
		if tc.Function.Name == "" {
			return Request{Shape: ShapeUnrecognized}
		}
		req := Request{Shape: ShapeEnvelope, Function: tc.Function.Name, ToolCallID: tc.ID}
		decodeArgs(tc.Function.Arguments, &req)
		return req
	}

	name := firstNonEmpty(p.Function, p.Name)
	if name == "" {
		return Request{Shape: ShapeUnrecognized}
	}
	req := Request{Shape: ShapeFlat, Function: name, ToolCallID: p.ToolCallID}
	decodeArgs(raw, &req)
	return req
}

// decodeArgs fills req.Args from an argument payload. The envelope shape
// sometimes carries arguments as a JSON-encoded string; unwrap once.
func decodeArgs(raw json.RawMessage, req *Request) {
	if len(raw) == 0 {
		return
	}
	if !isObject(raw) {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return
		}
		raw = json.RawMessage(inner)
		if !isObject(raw) {
			return
		}
	}
	_ = json.Unmarshal(raw, &req.Args)
	if req.ToolCallID == "" {
		req.ToolCallID = req.Args.ToolCallID
	}
}

func isObject(raw json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	return strings.HasPrefix(trimmed, "{")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
