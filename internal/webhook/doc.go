// Package webhook implements the inbound HTTP endpoint with
// HMAC-SHA256 signature verification.
//
// # Security Model
//
// - HMAC-SHA256 signatures verified using crypto/subtle (constant-time comparison)
// - Signature computed over the raw, unparsed request body
// - Body size limits enforced to prevent DoS attacks
// - No signature details leaked in error responses (always generic 401)
// - Request logging excludes payload content
//
// # Request Flow
//
//  1. HTTP POST arrives at /github/webhook
//  2. Required configuration checked (reject with 500 if missing)
//  3. Body size checked (reject with 413 if too large)
//  4. HMAC-SHA256 computed over request body, constant-time compare
//     against X-Hub-Signature-256 (reject with 401 on mismatch)
//  5. Envelope decoded from JSON (reject with 400 if malformed)
//  6. Repository checked against allow-list (acknowledge with 200 if
//     filtered)
//  7. (event, action) routed to a handler (acknowledge with 200 if
//     unrecognized)
//  8. Notification job submitted to the dispatcher, 202 returned
//     before delivery completes
//
// Delivery outcome is observed only in logs; the inbound caller is
// never informed of downstream failures.
package webhook
