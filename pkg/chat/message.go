package chat

import (
	"time"
)

// MessageOrigin tells apart messages handed over by the platform client from
// messages constructed by hand (CLI input, tests).
type MessageOrigin string

const (
	OriginPlatform MessageOrigin = "platform"
	OriginManual   MessageOrigin = "manual"
)

type Message struct {
	ID        string
	Origin    MessageOrigin
	GuildID   string
	ChannelID string

	Content   string
	Timestamp time.Time

	Author *Author
	Member *Member

	// ReferenceID is the id of the message this one replies to, if any.
	// Manual messages may instead carry the referenced message inline.
	ReferenceID string
	Referenced  *Message

	Attachments []Attachment
	Stickers    []Sticker
	Embeds      []Embed
}

// HasContent reports whether there is anything renderable at all. A message
// with no text, no embeds, no attachments and no stickers is refused upstream.
func (m *Message) HasContent() bool {
	return m.Content != "" || len(m.Embeds) > 0 || len(m.Attachments) > 0 || len(m.Stickers) > 0
}

type Author struct {
	ID          string
	Username    string
	DisplayName string
	AvatarURL   string
}

// Member is the author's per-guild identity snapshot.
type Member struct {
	Nick  string
	Roles []Role
}

type Role struct {
	ID       string
	Name     string
	Color    int
	IconURL  string
	Position int
}

type Attachment struct {
	URL         string
	ContentType string
	Size        int64
	Filename    string
}

type Sticker struct {
	ID   string
	Name string
}

type Embed struct {
	Title       string
	Description string
	URL         string
	Color       int
}
