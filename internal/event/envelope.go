// Package event decodes inbound webhook payloads and routes
// (event, action) pairs to notification handlers.
package event

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformedPayload marks a request body that is not valid JSON.
// Callers must map it to a client error, never to an auth failure.
var ErrMalformedPayload = errors.New("malformed payload")

// Envelope is the decoded representation of one inbound webhook event.
// It is immutable once decoded and lives for a single request. Body
// retains the raw bytes so handlers can decode the typed payload.
type Envelope struct {
	Event      string
	Action     string
	DeliveryID string
	Repo       string
	Body       []byte
}

// Decode parses the raw request body into an Envelope. The event type
// and delivery id come from request headers, not the body.
func Decode(eventType, deliveryID string, body []byte) (*Envelope, error) {
	var probe struct {
		Action     string `json:"action"`
		Repository struct {
			FullName string `json:"full_name"`
		} `json:"repository"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	return &Envelope{
		Event:      eventType,
		Action:     probe.Action,
		DeliveryID: deliveryID,
		Repo:       probe.Repository.FullName,
		Body:       body,
	}, nil
}
