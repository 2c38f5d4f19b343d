package toolcall

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseParametersWrapper(t *testing.T) {
	raw := []byte(`{
		"function": "calculatePayment",
		"toolCallId": "tc-1",
		"parameters": {"vehiclePrice": 30000, "creditScore": "excellent"}
	}`)

	req := Parse(raw)
	assert.Equal(t, ShapeParameters, req.Shape)
	assert.Equal(t, "calculatePayment", req.Function)
	assert.Equal(t, "tc-1", req.ToolCallID)
	assert.Equal(t, 30000.0, req.Args.VehiclePrice)
	assert.Equal(t, "excellent", req.Args.CreditScore)
}

func TestParseEnvelope(t *testing.T) {
	raw := []byte(`{
		"message": {
			"type": "tool-calls",
			"toolCalls": [{
				"id": "tc-2",
				"function": {
					"name": "leadQualification",
					"arguments": {"callId": "call-9", "customerInfo": {"phoneNumber": "+15551234567", "name": "Dana"}}
				}
			}]
		}
	}`)

	req := Parse(raw)
	assert.Equal(t, ShapeEnvelope, req.Shape)
	assert.Equal(t, "leadQualification", req.Function)
	assert.Equal(t, "tc-2", req.ToolCallID)
	assert.Equal(t, "call-9", req.Args.CallID)
	require.NotNil(t, req.Args.CustomerInfo)
	assert.Equal(t, "Dana", req.Args.CustomerInfo.Name)
}

func TestParseEnvelopeStringArguments(t *testing.T) {
	raw := []byte(`{
		"message": {
			"toolCalls": [{
				"id": "tc-3",
				"function": {
					"name": "checkInventory",
					"arguments": "{\"make\": \"Honda\", \"model\": \"Accord\"}"
				}
			}]
		}
	}`)

	req := Parse(raw)
	assert.Equal(t, ShapeEnvelope, req.Shape)
	assert.Equal(t, "Honda", req.Args.Make)
	assert.Equal(t, "Accord", req.Args.Model)
}

func TestParseFlatRoot(t *testing.T) {
	raw := []byte(`{"function": "getCallContext", "callId": "call-7", "toolCallId": "tc-4"}`)

	req := Parse(raw)
	assert.Equal(t, ShapeFlat, req.Shape)
	assert.Equal(t, "getCallContext", req.Function)
	assert.Equal(t, "call-7", req.Args.CallID)
	assert.Equal(t, "tc-4", req.ToolCallID)
}

func TestParsePrecedenceParametersOverEnvelope(t *testing.T) {
	// Both shapes present: the parameters wrapper wins, no merging.
	raw := []byte(`{
		"function": "calculatePayment",
		"parameters": {"vehiclePrice": 25000},
		"message": {
			"toolCalls": [{
				"id": "tc-5",
				"function": {"name": "checkInventory", "arguments": {"make": "Ford"}}
			}]
		}
	}`)

	req := Parse(raw)
	assert.Equal(t, ShapeParameters, req.Shape)
	assert.Equal(t, "calculatePayment", req.Function)
	assert.Equal(t, 25000.0, req.Args.VehiclePrice)
	assert.Empty(t, req.Args.Make, "envelope fields must not leak into the parameters shape")
}

func TestParseUnrecognized(t *testing.T) {
	for name, raw := range map[string][]byte{
		"empty object":  []byte(`{}`),
		"no name":       []byte(`{"parameters": {"x": 1}}`),
		"invalid json":  []byte(`{nope`),
		"empty toolcalls": []byte(`{"message": {"toolCalls": []}}`),
	} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, ShapeUnrecognized, Parse(raw).Shape)
		})
	}
}

func TestParseToolCallIDFromArguments(t *testing.T) {
	raw := []byte(`{"function": "endCall", "parameters": {"toolCallId": "tc-inner", "callId": "call-1"}}`)
	req := Parse(raw)
	assert.Equal(t, "tc-inner", req.ToolCallID)
}
