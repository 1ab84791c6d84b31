package message

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueClosed_WithMention(t *testing.T) {
	users := UserMap{"alice": {OpenID: "ou_abc", Name: "Alice"}}
	issue := Issue{Number: 12, Title: "Broken build", URL: "https://example.com/12", OpenerLogin: "alice"}

	post := IssueClosed("acme/widgets", issue, "bob", users)

	assert.Equal(t, "✅ [acme/widgets]", post.Title)

	last := post.Segments[len(post.Segments)-1]
	at, ok := last.(AtSegment)
	require.True(t, ok, "last segment should be a mention")
	assert.Equal(t, "ou_abc", at.OpenID)
	assert.Equal(t, "Alice", at.Name)

	// a link segment pointing at the issue must be present
	var link *LinkSegment
	for _, seg := range post.Segments {
		if l, ok := seg.(LinkSegment); ok {
			link = &l
		}
	}
	require.NotNil(t, link)
	assert.Equal(t, "view details", link.Label)
	assert.Equal(t, "https://example.com/12", link.URL)
}

func TestIssueClosed_NoMapping(t *testing.T) {
	issue := Issue{Number: 12, Title: "Broken build", URL: "https://example.com/12", OpenerLogin: "stranger"}

	post := IssueClosed("acme/widgets", issue, "bob", UserMap{})

	for _, seg := range post.Segments {
		_, ok := seg.(AtSegment)
		assert.False(t, ok, "no mention segment expected for unmapped opener")
	}
}

func TestIssueClosed_UnknownCloser(t *testing.T) {
	post := IssueClosed("a/b", Issue{Number: 1}, "", UserMap{})

	var text strings.Builder
	for _, seg := range post.Segments {
		if ts, ok := seg.(TextSegment); ok {
			text.WriteString(ts.Text)
		}
	}
	assert.Contains(t, text.String(), "unknown")
}

func TestCommentCreated(t *testing.T) {
	issue := Issue{Number: 3, Title: "Typo", URL: "https://example.com/3"}
	comment := Comment{AuthorLogin: "carol", Body: "fixed in #4", URL: "https://example.com/3#c1"}

	text := CommentCreated("acme/widgets", issue, comment)

	assert.Contains(t, text.Body, "💬")
	assert.Contains(t, text.Body, "acme/widgets")
	assert.Contains(t, text.Body, "#3")
	assert.Contains(t, text.Body, "Typo")
	assert.Contains(t, text.Body, "carol")
	assert.Contains(t, text.Body, "fixed in #4")
	assert.Contains(t, text.Body, "https://example.com/3#c1")
}

func TestCommentCreated_MissingFields(t *testing.T) {
	text := CommentCreated("a/b", Issue{Number: 1}, Comment{})

	assert.Contains(t, text.Body, "unknown")
	assert.NotContains(t, text.Body, "...")
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"short unchanged", strings.Repeat("a", 50), strings.Repeat("a", 50)},
		{"exactly 200 unchanged", strings.Repeat("a", 200), strings.Repeat("a", 200)},
		{"201 truncated", strings.Repeat("a", 201), strings.Repeat("a", 200) + "..."},
		{"250 truncated", strings.Repeat("a", 250), strings.Repeat("a", 200) + "..."},
		{"empty", "", ""},
		{"multibyte counted as runes", strings.Repeat("好", 201), strings.Repeat("好", 200) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, truncate(tt.in, commentBodyLimit))
		})
	}
}

func TestUserMapLookup(t *testing.T) {
	users := UserMap{"alice": {OpenID: "ou_abc", Name: "Alice"}}

	r, ok := users.Lookup("alice")
	require.True(t, ok)
	assert.Equal(t, "ou_abc", r.OpenID)

	_, ok = users.Lookup("bob")
	assert.False(t, ok)
}
