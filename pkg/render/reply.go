package render

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/duo/chatshot/pkg/chat"
)

const (
	replyPreviewLimit = 100
	replyPlaceholder  = "Click to see attachment"
)

// renderReply builds the compact one-line preview of the message being
// replied to. Content is truncated to the first 100 runes before the rich-text
// pass, line breaks collapse to spaces, and an ellipsis marks truncation.
func (r *Renderer) renderReply(_ context.Context, ref *chat.Message, mentions chat.MentionSource) string {
	author := r.resolveReplyAuthor(ref)

	content := ref.Content
	if content == "" {
		content = replyPlaceholder
	}

	runes := []rune(content)
	truncated := len(runes) > replyPreviewLimit
	if truncated {
		content = string(runes[:replyPreviewLimit])
	}

	rendered := r.renderText(content, modeReply, mentions)
	rendered = strings.ReplaceAll(rendered, "<br/>", " ")
	if truncated {
		rendered += "…"
	}

	return fmt.Sprintf(
		`<div class="reply"><img class="reply-avatar" src="%s" /><span class="reply-name" style="color: %s">%s</span><span class="reply-content">%s</span></div>`,
		html.EscapeString(author.Avatar), author.Color, html.EscapeString(author.Name), rendered)
}
