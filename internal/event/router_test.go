package event

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyzhou/larkrelay/internal/message"
)

func TestRoute_IssueClosed(t *testing.T) {
	body := []byte(`{
		"action": "closed",
		"repository": {"full_name": "acme/widgets"},
		"issue": {
			"number": 7,
			"title": "Crash on start",
			"html_url": "https://github.com/acme/widgets/issues/7",
			"user": {"login": "alice"}
		},
		"sender": {"login": "bob"}
	}`)

	env, err := Decode("issues", "d-1", body)
	require.NoError(t, err)

	users := message.UserMap{"alice": {OpenID: "ou_alice", Name: "Alice"}}
	router := NewRouter(users)

	job, err := router.Route(env)
	require.NoError(t, err)
	assert.Equal(t, "issues", job.Event)
	assert.Equal(t, "closed", job.Action)
	assert.Equal(t, "d-1", job.DeliveryID)
	assert.Equal(t, "acme/widgets", job.Repo)

	msg, err := job.Render()
	require.NoError(t, err)

	post, ok := msg.(message.Post)
	require.True(t, ok, "issue-closed should render a Post, got %T", msg)
	assert.Equal(t, "✅ [acme/widgets]", post.Title)

	last := post.Segments[len(post.Segments)-1]
	at, ok := last.(message.AtSegment)
	require.True(t, ok, "last segment should mention the opener")
	assert.Equal(t, "ou_alice", at.OpenID)
}

func TestRoute_CommentCreated(t *testing.T) {
	body := []byte(`{
		"action": "created",
		"repository": {"full_name": "acme/widgets"},
		"issue": {"number": 7, "title": "Crash on start", "html_url": "https://example.com/7"},
		"comment": {
			"user": {"login": "carol"},
			"body": "same here",
			"html_url": "https://example.com/7#comment-1"
		}
	}`)

	env, err := Decode("issue_comment", "d-2", body)
	require.NoError(t, err)

	job, err := NewRouter(message.UserMap{}).Route(env)
	require.NoError(t, err)

	msg, err := job.Render()
	require.NoError(t, err)

	text, ok := msg.(message.Text)
	require.True(t, ok, "new-comment should render Text, got %T", msg)
	assert.Contains(t, text.Body, "acme/widgets")
	assert.Contains(t, text.Body, "#7")
	assert.Contains(t, text.Body, "carol")
	assert.Contains(t, text.Body, "same here")
}

func TestRoute_NoRoute(t *testing.T) {
	env := &Envelope{Event: "issues", Action: "opened"}

	_, err := NewRouter(message.UserMap{}).Route(env)
	assert.True(t, errors.Is(err, ErrNoRoute))

	env = &Envelope{Event: "push", Action: ""}
	_, err = NewRouter(message.UserMap{}).Route(env)
	assert.True(t, errors.Is(err, ErrNoRoute))
}

func TestRegister_NewPair(t *testing.T) {
	router := NewRouter(message.UserMap{})
	router.Register("pull_request", "merged", func(env *Envelope, _ message.UserMap) RenderFunc {
		return func() (message.Message, error) {
			return message.Text{Body: "merged " + env.Repo}, nil
		}
	})

	env := &Envelope{Event: "pull_request", Action: "merged", Repo: "a/b"}
	job, err := router.Route(env)
	require.NoError(t, err)

	msg, err := job.Render()
	require.NoError(t, err)
	assert.Equal(t, message.Text{Body: "merged a/b"}, msg)
}
