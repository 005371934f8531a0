package transcript

// Turn roles. Stored transcripts only ever contain these two.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is a single role-tagged message in a session transcript.
// Content is always plain text: even when an outbound inference request
// carries a structured multimodal body, the stored form stays flat so
// history retrieval is stable and provider-agnostic.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
