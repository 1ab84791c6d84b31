// Package message defines the rendered notification model and the
// renderers that build notifications from GitHub event fields.
//
// A rendered message is one of two kinds: a plain Text body, or a rich
// Post made of ordered segments (text runs, hyperlinks, @-mentions).
// Renderers are pure: they perform no I/O and never fail on missing
// payload fields, falling back to "unknown" attribution instead.
package message

// Message is a rendered notification body. Implementations are Text and Post.
type Message interface {
	message()
}

// Text is a plain-text notification.
type Text struct {
	Body string
}

func (Text) message() {}

// Post is a rich notification: a title plus an ordered run of segments.
type Post struct {
	Title    string
	Segments []Segment
}

func (Post) message() {}

// Segment is one fragment of a Post. Implementations are TextSegment,
// LinkSegment, and AtSegment.
type Segment interface {
	segment()
}

// TextSegment is a literal text run.
type TextSegment struct {
	Text string
}

func (TextSegment) segment() {}

// LinkSegment is a hyperlink with a display label.
type LinkSegment struct {
	Label string
	URL   string
}

func (LinkSegment) segment() {}

// AtSegment mentions (notifies) a mapped recipient.
type AtSegment struct {
	OpenID string
	Name   string
}

func (AtSegment) segment() {}

// Recipient identifies a chat user that can be @-mentioned.
type Recipient struct {
	OpenID string `json:"open_id" yaml:"open_id"`
	Name   string `json:"name" yaml:"name"`
}

// UserMap maps GitHub logins to chat recipients. It is read-only after
// startup; a missing login is an expected state, not an error.
type UserMap map[string]Recipient

// Lookup returns the recipient mapped to a GitHub login.
func (m UserMap) Lookup(login string) (Recipient, bool) {
	r, ok := m[login]
	return r, ok
}
