package message

import "fmt"

const (
	// commentBodyLimit caps the comment excerpt included in a notification.
	commentBodyLimit = 200

	// unknownLogin stands in for any missing attribution field.
	unknownLogin = "unknown"
)

// Issue carries the issue fields consumed by renderers.
type Issue struct {
	Number      int
	Title       string
	URL         string
	OpenerLogin string
}

// Comment carries the comment fields consumed by renderers.
type Comment struct {
	AuthorLogin string
	Body        string
	URL         string
}

// IssueClosed renders the rich notification for a closed issue. The
// trailing mention segment is emitted only when the issue opener has an
// entry in users.
func IssueClosed(repo string, issue Issue, closedBy string, users UserMap) Post {
	segments := []Segment{
		TextSegment{Text: fmt.Sprintf("Issue #%d has been closed\n", issue.Number)},
		TextSegment{Text: fmt.Sprintf("Title: %s\n", issue.Title)},
		LinkSegment{Label: "view details", URL: issue.URL},
		TextSegment{Text: fmt.Sprintf("\nClosed by %s", orUnknown(closedBy))},
	}

	if recipient, ok := users.Lookup(issue.OpenerLogin); ok {
		segments = append(segments, AtSegment{OpenID: recipient.OpenID, Name: recipient.Name})
	}

	return Post{
		Title:    fmt.Sprintf("✅ [%s]", repo),
		Segments: segments,
	}
}

// CommentCreated renders the plain-text notification for a new issue comment.
func CommentCreated(repo string, issue Issue, comment Comment) Text {
	body := fmt.Sprintf("💬 [%s] New comment on issue #%d (%s)\n%s: %s\n%s",
		repo,
		issue.Number,
		issue.Title,
		orUnknown(comment.AuthorLogin),
		truncate(comment.Body, commentBodyLimit),
		comment.URL,
	)
	return Text{Body: body}
}

// truncate keeps the first limit runes and appends an ellipsis marker.
// Counting runes rather than bytes keeps multi-byte text intact.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

func orUnknown(login string) string {
	if login == "" {
		return unknownLogin
	}
	return login
}
