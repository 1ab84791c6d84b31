package event

import (
	"encoding/json"
	"fmt"

	"github.com/google/go-github/v72/github"

	"github.com/hyzhou/larkrelay/internal/message"
)

// renderIssueClosed builds the rich issue-closed notification. The
// typed payload decode is deferred into the render function so it runs
// off the request path.
func renderIssueClosed(env *Envelope, users message.UserMap) RenderFunc {
	return func() (message.Message, error) {
		var ev github.IssuesEvent
		if err := json.Unmarshal(env.Body, &ev); err != nil {
			return nil, fmt.Errorf("decode issues payload: %w", err)
		}

		issue := message.Issue{
			Number:      ev.GetIssue().GetNumber(),
			Title:       ev.GetIssue().GetTitle(),
			URL:         ev.GetIssue().GetHTMLURL(),
			OpenerLogin: ev.GetIssue().GetUser().GetLogin(),
		}
		return message.IssueClosed(env.Repo, issue, ev.GetSender().GetLogin(), users), nil
	}
}

// renderCommentCreated builds the plain-text new-comment notification.
func renderCommentCreated(env *Envelope, _ message.UserMap) RenderFunc {
	return func() (message.Message, error) {
		var ev github.IssueCommentEvent
		if err := json.Unmarshal(env.Body, &ev); err != nil {
			return nil, fmt.Errorf("decode issue_comment payload: %w", err)
		}

		issue := message.Issue{
			Number: ev.GetIssue().GetNumber(),
			Title:  ev.GetIssue().GetTitle(),
			URL:    ev.GetIssue().GetHTMLURL(),
		}
		comment := message.Comment{
			AuthorLogin: ev.GetComment().GetUser().GetLogin(),
			Body:        ev.GetComment().GetBody(),
			URL:         ev.GetComment().GetHTMLURL(),
		}
		return message.CommentCreated(env.Repo, issue, comment), nil
	}
}
