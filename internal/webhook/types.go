package webhook

import "github.com/hyzhou/larkrelay/internal/event"

// Dispatcher accepts a notification job for detached delivery. It
// returns the dispatch id and whether the job was actually queued; a
// full queue drops the job.
type Dispatcher interface {
	Submit(job *event.Job) (string, bool)
}

// GitHub webhook request headers.
const (
	SignatureHeader = "X-Hub-Signature-256"
	EventHeader     = "X-GitHub-Event"
	DeliveryHeader  = "X-GitHub-Delivery"
)

// WebhookPath is the inbound endpoint path.
const WebhookPath = "/github/webhook"

// MaxBodySize is the maximum allowed request body size in bytes.
const MaxBodySize = 1048576 // 1 MB

// AcceptedResponse is the JSON response when an event has been
// accepted. DispatchID is present only when the notification was
// queued; delivery is still best-effort either way.
type AcceptedResponse struct {
	Status     string `json:"status"`
	DispatchID string `json:"dispatch_id,omitempty"`
}

// IgnoredResponse is the JSON response for acknowledged-but-dropped
// events (unrecognized pair, or repository not allow-listed).
type IgnoredResponse struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

// ErrorResponse is the JSON response for webhook errors.
type ErrorResponse struct {
	Error string `json:"error"`
}
