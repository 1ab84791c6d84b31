package lark

import "github.com/hyzhou/larkrelay/internal/message"

// payload is the webhook request body. Timestamp and Sign are present
// only when signing is configured.
type payload struct {
	Timestamp string  `json:"timestamp,omitempty"`
	Sign      string  `json:"sign,omitempty"`
	MsgType   string  `json:"msg_type"`
	Content   content `json:"content"`
}

type content struct {
	Text string    `json:"text,omitempty"`
	Post *postBody `json:"post,omitempty"`
}

type postBody struct {
	ZhCn postLocale `json:"zh_cn"`
}

type postLocale struct {
	Title string       `json:"title"`
	Lines [][]postItem `json:"content"`
}

// postItem is one segment of a post line. Tag selects the variant:
// "text", "a" (hyperlink), or "at" (mention).
type postItem struct {
	Tag      string `json:"tag"`
	Text     string `json:"text,omitempty"`
	Href     string `json:"href,omitempty"`
	UserID   string `json:"user_id,omitempty"`
	UserName string `json:"user_name,omitempty"`
}

// buildPost flattens the rendered segment sequence into the webhook's
// post content shape (a single line of mixed items).
func buildPost(m message.Post) *postBody {
	items := make([]postItem, 0, len(m.Segments))
	for _, seg := range m.Segments {
		switch s := seg.(type) {
		case message.TextSegment:
			items = append(items, postItem{Tag: "text", Text: s.Text})
		case message.LinkSegment:
			items = append(items, postItem{Tag: "a", Text: s.Label, Href: s.URL})
		case message.AtSegment:
			items = append(items, postItem{Tag: "at", UserID: s.OpenID, UserName: s.Name})
		}
	}

	return &postBody{
		ZhCn: postLocale{
			Title: m.Title,
			Lines: [][]postItem{items},
		},
	}
}
