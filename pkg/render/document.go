package render

import (
	_ "embed"
	"fmt"
	"html"
	"strings"

	"github.com/duo/chatshot/pkg/chat"
)

//go:embed styles.css
var styleSheet string

type documentParts struct {
	Author      identity
	Timestamp   string
	Reply       string
	Content     string
	Embeds      string
	Attachments string
	Stickers    string
}

// assemble is pure composition: presence/absence toggles only, no layout
// logic of its own.
func (r *Renderer) assemble(parts documentParts) string {
	var sb strings.Builder

	sb.WriteString(`<!DOCTYPE html><html><head><meta charset="utf-8" /><style>`)
	sb.WriteString(styleSheet)
	sb.WriteString(`</style></head><body><div class="chat">`)

	messageClass := "message"
	if parts.Reply != "" {
		messageClass = "message has-reply"
	}
	sb.WriteString(fmt.Sprintf(`<div class="%s">`, messageClass))
	sb.WriteString(parts.Reply)

	sb.WriteString(fmt.Sprintf(`<img class="avatar" src="%s" />`, html.EscapeString(parts.Author.Avatar)))
	sb.WriteString(`<div class="message-body">`)

	sb.WriteString(`<div class="header">`)
	sb.WriteString(fmt.Sprintf(`<span class="author" style="color: %s">%s</span>`,
		parts.Author.Color, html.EscapeString(parts.Author.Name)))
	if parts.Author.RoleIcon != "" {
		sb.WriteString(fmt.Sprintf(`<img class="role-icon" src="%s" />`, html.EscapeString(parts.Author.RoleIcon)))
	}
	sb.WriteString(fmt.Sprintf(`<span class="timestamp">%s</span>`, parts.Timestamp))
	sb.WriteString(`</div>`)

	if parts.Content != "" {
		sb.WriteString(fmt.Sprintf(`<div class="content">%s</div>`, parts.Content))
	}
	sb.WriteString(parts.Embeds)
	sb.WriteString(parts.Attachments)
	sb.WriteString(parts.Stickers)

	sb.WriteString(`</div></div></div></body></html>`)

	return sb.String()
}

func (r *Renderer) renderStickers(stickers []chat.Sticker) string {
	if len(stickers) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(`<div class="stickers">`)
	for _, st := range stickers {
		sb.WriteString(fmt.Sprintf(`<img class="sticker" src="%s/%s.png" alt="%s" />`,
			r.StickerCDN, st.ID, html.EscapeString(st.Name)))
	}
	sb.WriteString(`</div>`)

	return sb.String()
}

// renderEmbeds gives embedded rich content a minimal block: accent bar, title
// (linked when a URL is present) and description run through the full
// rich-text pass.
func (r *Renderer) renderEmbeds(embeds []chat.Embed, mentions chat.MentionSource) string {
	if len(embeds) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, emb := range embeds {
		sb.WriteString(fmt.Sprintf(`<div class="embed" style="border-left-color: %s">`, hexColor(emb.Color)))
		if emb.Title != "" {
			title := html.EscapeString(emb.Title)
			if emb.URL != "" {
				title = fmt.Sprintf(`<a class="link" href="%s">%s</a>`, html.EscapeString(emb.URL), title)
			}
			sb.WriteString(fmt.Sprintf(`<div class="embed-title">%s</div>`, title))
		}
		if emb.Description != "" {
			sb.WriteString(fmt.Sprintf(`<div class="embed-description">%s</div>`,
				r.renderText(emb.Description, modeFull, mentions)))
		}
		sb.WriteString(`</div>`)
	}

	return sb.String()
}
