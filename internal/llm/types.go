package llm

// Options carries the sampling parameters sent with every generation
// request. Zero-valued optional fields are omitted from the payload.
type Options struct {
	Temperature   float64 `json:"temperature"`
	TopP          float64 `json:"top_p"`
	RepeatPenalty float64 `json:"repeat_penalty,omitempty"`
	NumPredict    int     `json:"num_predict,omitempty"`
}

// DefaultOptions matches the sampling setup used by the generators.
func DefaultOptions() Options {
	return Options{
		Temperature: 0.7,
		TopP:        0.9,
	}
}

// Request is one synchronous generation call.
type Request struct {
	Model   string
	Prompt  string
	System  string
	Options Options
}

// generateRequest is the wire payload for the /api/generate endpoint.
// Stream is always false so the full response returns as one unit.
type generateRequest struct {
	Model   string  `json:"model"`
	Prompt  string  `json:"prompt"`
	System  string  `json:"system"`
	Options Options `json:"options"`
	Stream  bool    `json:"stream"`
}

// generateResponse is the wire shape of the endpoint's reply.
type generateResponse struct {
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}
