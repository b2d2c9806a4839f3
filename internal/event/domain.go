package event

const (
	Queue string = "EVENTS"
)

// Message asks for event to be announced to the webhooks of Site.
type Message struct {
	Site    string `json:"site"`
	Event   string `json:"event"`
	Payload any    `json:"payload,omitempty"`
}
