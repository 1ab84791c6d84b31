// Package dispatch runs accepted notification jobs off the request path.
//
// The dispatcher owns a buffered job channel and a small pool of worker
// goroutines. The webhook handler submits a job and returns 202
// immediately; rendering and delivery happen on a worker. Delivery is
// best-effort and at-most-one-attempt: a failed or dropped notification
// produces a log entry, never a retry, and is never surfaced to the
// inbound caller.
//
// Each submission is assigned a dispatch id, used only for log
// correlation alongside the webhook delivery id.
package dispatch
