package event

import (
	"errors"

	"github.com/hyzhou/larkrelay/internal/message"
)

// ErrNoRoute marks an (event, action) pair with no registered handler.
// The caller acknowledges the event without further action.
var ErrNoRoute = errors.New("no handler for event")

// Key identifies a handler by webhook event type and payload action.
type Key struct {
	Event  string
	Action string
}

// RenderFunc builds the outbound message for an accepted event. It runs
// detached from the request path, after the inbound response has been
// sent.
type RenderFunc func() (message.Message, error)

// Job is an accepted notification unit, ready for dispatch.
type Job struct {
	Event      string
	Action     string
	DeliveryID string
	Repo       string
	Render     RenderFunc
}

// HandlerFunc turns an envelope into a render function.
type HandlerFunc func(env *Envelope, users message.UserMap) RenderFunc

// Router maps (event, action) pairs to handlers. Adding an event type
// is a table entry, not a new branch. The router performs no I/O.
type Router struct {
	handlers map[Key]HandlerFunc
	users    message.UserMap
}

// NewRouter returns a Router with the default handler table.
func NewRouter(users message.UserMap) *Router {
	r := &Router{
		handlers: make(map[Key]HandlerFunc),
		users:    users,
	}
	r.Register("issues", "closed", renderIssueClosed)
	r.Register("issue_comment", "created", renderCommentCreated)
	return r
}

// Register binds a handler to an (event, action) pair.
func (r *Router) Register(eventType, action string, h HandlerFunc) {
	r.handlers[Key{Event: eventType, Action: action}] = h
}

// Route selects the handler for the envelope's (event, action) pair and
// returns the notification job. Returns ErrNoRoute when no handler is
// registered for the pair.
func (r *Router) Route(env *Envelope) (*Job, error) {
	h, ok := r.handlers[Key{Event: env.Event, Action: env.Action}]
	if !ok {
		return nil, ErrNoRoute
	}

	return &Job{
		Event:      env.Event,
		Action:     env.Action,
		DeliveryID: env.DeliveryID,
		Repo:       env.Repo,
		Render:     h(env, r.users),
	}, nil
}
