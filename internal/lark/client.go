// Package lark delivers rendered notifications to a Lark (Feishu)
// custom-bot webhook, signing the payload when a secret is configured.
package lark

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/hyzhou/larkrelay/internal/log"
	"github.com/hyzhou/larkrelay/internal/message"
)

// maxResponseBytes caps the downstream response body captured in errors.
const maxResponseBytes = 4 * 1024

// DeliveryError reports a non-success response from the downstream
// webhook. It is observed only by the dispatch log, never by the
// original inbound caller.
type DeliveryError struct {
	Status int
	Body   string
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("webhook delivery failed: status %d: %s", e.Status, e.Body)
}

// Client posts rendered messages to a single configured webhook URL.
type Client struct {
	webhookURL string
	signSecret string
	httpc      *http.Client
	logger     *slog.Logger

	// now is swappable for signature tests.
	now func() time.Time
}

// New creates a Client. signSecret may be empty, in which case payloads
// are sent unsigned.
func New(webhookURL, signSecret string) *Client {
	return &Client{
		webhookURL: webhookURL,
		signSecret: signSecret,
		httpc:      &http.Client{},
		logger:     log.WithComponent("lark"),
		now:        time.Now,
	}
}

// Send builds the webhook payload for the message kind, signs it if
// configured, and POSTs it. A non-2xx response is a *DeliveryError.
func (c *Client) Send(ctx context.Context, msg message.Message) error {
	payload, err := c.buildPayload(msg)
	if err != nil {
		return err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		return &DeliveryError{Status: resp.StatusCode, Body: string(respBody)}
	}

	c.logger.Debug("notification delivered", "status", resp.StatusCode)
	return nil
}

func (c *Client) buildPayload(msg message.Message) (*payload, error) {
	p := &payload{}

	switch m := msg.(type) {
	case message.Text:
		p.MsgType = "text"
		p.Content = content{Text: m.Body}
	case message.Post:
		p.MsgType = "post"
		p.Content = content{Post: buildPost(m)}
	default:
		return nil, fmt.Errorf("unsupported message kind %T", msg)
	}

	if c.signSecret != "" {
		ts := c.now().Unix()
		p.Timestamp = fmt.Sprintf("%d", ts)
		p.Sign = genSign(c.signSecret, ts)
	}

	return p, nil
}

// genSign computes the webhook signature: base64 of HMAC-SHA256 keyed
// by the secret over "{timestamp}\n{secret}". This is a different
// scheme from inbound verification (different message, base64 not hex).
func genSign(secret string, timestamp int64) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d\n%s", timestamp, secret)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
