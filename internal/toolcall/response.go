package toolcall

// TransferType says how the platform should move the caller.
type TransferType string

const (
	TransferAssistant TransferType = "assistant"
	TransferPhone     TransferType = "phone"
	TransferHuman     TransferType = "human"
)

// Transfer is an outbound routing directive. Message is always populated;
// the voice platform needs something to say while it moves the caller.
type Transfer struct {
	Type        TransferType `json:"type"`
	Assistant   string       `json:"assistant,omitempty"`
	PhoneNumber string       `json:"phoneNumber,omitempty"`
	Message     string       `json:"message"`
}

// Result is one tool-call result in the platform's expected envelope.
type Result struct {
	ToolCallID string `json:"toolCallId"`
	Result     string `json:"result"`
	Data       any    `json:"data,omitempty"`
}

// Response is the webhook reply body.
type Response struct {
	Results  []Result  `json:"results"`
	Transfer *Transfer `json:"transfer,omitempty"`
}

const defaultToolCallID = "default"

func reply(toolCallID, text string) Response {
	return Response{Results: []Result{{ToolCallID: orDefault(toolCallID), Result: text}}}
}

func replyData(toolCallID, text string, data any) Response {
	return Response{Results: []Result{{ToolCallID: orDefault(toolCallID), Result: text, Data: data}}}
}

func replyTransfer(toolCallID, text string, t Transfer) Response {
	if t.Message == "" {
		t.Message = text
	}
	resp := reply(toolCallID, text)
	resp.Transfer = &t
	return resp
}

func orDefault(id string) string {
	if id == "" {
		return defaultToolCallID
	}
	return id
}
