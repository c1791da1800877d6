package brain

// Stimulus is the outbound control message: free text pushed into the
// backend, optionally forced past its attention gate.
type Stimulus struct {
	Text  string `json:"text"`
	Force bool   `json:"force"`
}
