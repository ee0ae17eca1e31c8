package llm

import "encoding/json"

const (
	stopEnd       = "end"
	stopMaxTokens = "max_tokens"
)

// vendorReply is what an adapter extracts from an SDK response before the
// shared post-processing in finish.
type vendorReply struct {
	text  string
	stop  string // raw vendor stop reason
	model string
	usage Usage
}

// finish turns a vendor reply into a Response. A structured request that
// hit the token cap fails with ErrMaxTokensExceeded, since the JSON is
// almost certainly cut short.
func finish(req Request, r vendorReply) (*Response, error) {
	content := json.RawMessage(r.text)
	stop := stopReason(r.stop)
	if req.Schema != nil && stop == stopMaxTokens {
		return nil, &ErrMaxTokensExceeded{Content: content}
	}
	content, err := structuredContent(req.Schema, content)
	if err != nil {
		return nil, err
	}
	if r.usage.TotalTokens == 0 {
		r.usage.TotalTokens = r.usage.InputTokens + r.usage.OutputTokens
	}
	return &Response{Content: content, Usage: r.usage, Model: r.model, StopReason: stop}, nil
}

func stopReason(vendor string) string {
	switch vendor {
	case "max_tokens", "length", "MAX_TOKENS":
		return stopMaxTokens
	}
	return stopEnd
}

// resolveModel expands a short alias ("gemini-flash") to the vendor's
// model ID. Anything else is taken as a model ID already.
func resolveModel(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}
