package render

import (
	"context"
	"errors"

	"github.com/duo/chatshot/pkg/chat"

	"github.com/rs/zerolog"
)

// Process-wide defaults. Every knob is overridable through Renderer fields
// (the CLI maps config onto them).
const (
	DefaultAvatarURL      = "https://cdn.discordapp.com/embed/avatars/0.png"
	DefaultAuthorColor    = "#ffffff"
	DefaultReplyColor     = "#b5bac1"
	DefaultEmojiCDN       = "https://cdn.jsdelivr.net/gh/jdecked/twemoji@latest/assets/72x72"
	DefaultCustomEmojiCDN = "https://cdn.discordapp.com/emojis"
	DefaultStickerCDN     = "https://media.discordapp.net/stickers"
)

var (
	ErrNoMessage = errors.New("no message to render")
	ErrNoContent = errors.New("message has no text, embeds, attachments or stickers")
)

// Document is the assembled markup, self-contained (inline stylesheet, no
// external scripts). It is the sole input to the rendering collaborator.
type Document struct {
	HTML string
}

type Renderer struct {
	// Source resolves reply references and mention ids. Optional; with a nil
	// Source replies are only rendered when the message carries the referenced
	// message inline, and mentions fall back to placeholders.
	Source chat.Source

	AvatarURL      string
	AuthorColor    string
	ReplyColor     string
	EmojiCDN       string
	CustomEmojiCDN string
	StickerCDN     string
}

func New() *Renderer {
	return &Renderer{
		AvatarURL:      DefaultAvatarURL,
		AuthorColor:    DefaultAuthorColor,
		ReplyColor:     DefaultReplyColor,
		EmojiCDN:       DefaultEmojiCDN,
		CustomEmojiCDN: DefaultCustomEmojiCDN,
		StickerCDN:     DefaultStickerCDN,
	}
}

// Render converts one message into a complete markup document. It refuses
// messages with nothing renderable and otherwise never fails: malformed text
// degrades to literal output, a missing reply target drops the reply block.
func (r *Renderer) Render(ctx context.Context, msg *chat.Message) (*Document, error) {
	if msg == nil {
		return nil, ErrNoMessage
	}
	if !msg.HasContent() {
		return nil, ErrNoContent
	}

	var mentions chat.MentionSource
	if r.Source != nil {
		mentions = r.Source
	}

	author := r.resolveAuthor(msg)

	reply := ""
	if ref := r.referencedMessage(ctx, msg); ref != nil {
		reply = r.renderReply(ctx, ref, mentions)
	}

	content := ""
	if msg.Content != "" {
		content = r.renderText(msg.Content, modeFull, mentions)
	}

	doc := r.assemble(documentParts{
		Author:      author,
		Timestamp:   r.formatMessageTime(msg),
		Reply:       reply,
		Content:     content,
		Embeds:      r.renderEmbeds(msg.Embeds, mentions),
		Attachments: r.renderAttachments(msg.Attachments),
		Stickers:    r.renderStickers(msg.Stickers),
	})

	return &Document{HTML: doc}, nil
}

// referencedMessage returns the message being replied to, or nil when there is
// no reply or it cannot be used. Fetch failures and authorless targets drop
// the reply block rather than failing the render.
func (r *Renderer) referencedMessage(ctx context.Context, msg *chat.Message) *chat.Message {
	ref := msg.Referenced
	if ref == nil {
		if msg.ReferenceID == "" || r.Source == nil {
			return nil
		}
		fetched, err := r.Source.GetMessage(ctx, msg.ChannelID, msg.ReferenceID)
		if err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).
				Str("reference_id", msg.ReferenceID).
				Msg("Failed to fetch referenced message, omitting reply block")
			return nil
		}
		ref = fetched
	}
	if ref == nil || ref.Author == nil {
		return nil
	}
	return ref
}
