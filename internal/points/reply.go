package points

import "strings"

// NotConfigured is what ShowReply returns when no reply has been set.
const NotConfigured = "❌ No reply has been set."

// NewReplyConfig builds a reply from raw form input. Blank fields are
// stored as unset.
func NewReplyConfig(text, media string) ReplyConfig {
	return ReplyConfig{
		Text:  nonBlank(text),
		Media: nonBlank(media),
	}
}

func (r *ReplyConfig) IsEmpty() bool {
	return r == nil || (r.Text == nil && r.Media == nil)
}

// ShowReply renders the stored reply with the text first and the media
// reference on its own line after it.
func (d Document) ShowReply() string {
	if d.Reply.IsEmpty() {
		return NotConfigured
	}

	var parts []string
	if d.Reply.Text != nil {
		parts = append(parts, *d.Reply.Text)
	}
	if d.Reply.Media != nil {
		parts = append(parts, *d.Reply.Media)
	}
	return strings.Join(parts, "\n")
}

func nonBlank(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
