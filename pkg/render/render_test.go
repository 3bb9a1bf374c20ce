package render

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/duo/chatshot/pkg/chat"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	fakeMentions
	messages map[string]*chat.Message
	err      error
	calls    int
}

func (f *fakeSource) GetMessage(_ context.Context, channelID, messageID string) (*chat.Message, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if msg, ok := f.messages[channelID+"/"+messageID]; ok {
		return msg, nil
	}
	return nil, errors.New("not found")
}

func basicMessage() *chat.Message {
	return &chat.Message{
		ID:        "m1",
		Origin:    chat.OriginPlatform,
		ChannelID: "c1",
		Content:   "hello world",
		Timestamp: time.Now(),
		Author:    &chat.Author{Username: "alice"},
	}
}

func TestRenderRefusal(t *testing.T) {
	r := New()
	ctx := context.Background()

	_, err := r.Render(ctx, nil)
	require.ErrorIs(t, err, ErrNoMessage)

	_, err = r.Render(ctx, &chat.Message{Author: &chat.Author{Username: "alice"}})
	require.ErrorIs(t, err, ErrNoContent)
}

func TestRenderAnyContentSuffices(t *testing.T) {
	r := New()
	ctx := context.Background()

	cases := []*chat.Message{
		{Content: "text"},
		{Attachments: []chat.Attachment{{URL: "u", ContentType: "image/png"}}},
		{Stickers: []chat.Sticker{{ID: "1", Name: "wave"}}},
		{Embeds: []chat.Embed{{Title: "t"}}},
	}
	for _, msg := range cases {
		msg.Timestamp = time.Now()
		_, err := r.Render(ctx, msg)
		require.NoError(t, err)
	}
}

func TestRenderDocumentShape(t *testing.T) {
	r := New()
	doc, err := r.Render(context.Background(), basicMessage())
	require.NoError(t, err)

	assert.Contains(t, doc.HTML, "<!DOCTYPE html>")
	assert.Contains(t, doc.HTML, "<style>")
	assert.Contains(t, doc.HTML, `<div class="content">hello world</div>`)
	assert.Contains(t, doc.HTML, `class="author"`)
	assert.Contains(t, doc.HTML, "Today at ")
	assert.NotContains(t, doc.HTML, `class="reply"`)
	// Self-contained: no external stylesheet or script references.
	assert.NotContains(t, doc.HTML, "<link")
	assert.NotContains(t, doc.HTML, "<script")
}

func TestRenderWithReply(t *testing.T) {
	src := &fakeSource{messages: map[string]*chat.Message{
		"c1/ref1": {Content: "original", Author: &chat.Author{Username: "bob"}},
	}}
	r := New()
	r.Source = src

	msg := basicMessage()
	msg.ReferenceID = "ref1"

	doc, err := r.Render(context.Background(), msg)
	require.NoError(t, err)
	assert.Contains(t, doc.HTML, `class="message has-reply"`)
	assert.Contains(t, doc.HTML, "original")
	assert.Contains(t, doc.HTML, "bob")
}

func TestRenderReplyFetchFailureOmitsBlock(t *testing.T) {
	src := &fakeSource{err: errors.New("gone")}
	r := New()
	r.Source = src

	msg := basicMessage()
	msg.ReferenceID = "ref1"

	doc, err := r.Render(context.Background(), msg)
	require.NoError(t, err, "fetch failure must not fail the render")
	assert.NotContains(t, doc.HTML, `class="reply"`)
}

func TestRenderReplyWithoutAuthorOmitsBlock(t *testing.T) {
	src := &fakeSource{messages: map[string]*chat.Message{
		"c1/ref1": {Content: "orphan"},
	}}
	r := New()
	r.Source = src

	msg := basicMessage()
	msg.ReferenceID = "ref1"

	doc, err := r.Render(context.Background(), msg)
	require.NoError(t, err)
	assert.NotContains(t, doc.HTML, `class="reply"`)
}

func TestRenderInlineReferencedMessage(t *testing.T) {
	r := New()
	msg := basicMessage()
	msg.Origin = chat.OriginManual
	msg.Referenced = &chat.Message{Content: "quoted", Author: &chat.Author{Username: "bob"}}

	doc, err := r.Render(context.Background(), msg)
	require.NoError(t, err)
	assert.Contains(t, doc.HTML, "quoted")
}

func TestRenderStickers(t *testing.T) {
	r := New()
	msg := &chat.Message{
		Timestamp: time.Now(),
		Author:    &chat.Author{Username: "alice"},
		Stickers:  []chat.Sticker{{ID: "42", Name: "wave"}},
	}

	doc, err := r.Render(context.Background(), msg)
	require.NoError(t, err)
	assert.Contains(t, doc.HTML, DefaultStickerCDN+"/42.png")
	assert.Contains(t, doc.HTML, `alt="wave"`)
}

func TestRenderEmbeds(t *testing.T) {
	r := New()
	msg := &chat.Message{
		Timestamp: time.Now(),
		Author:    &chat.Author{Username: "alice"},
		Embeds: []chat.Embed{{
			Title:       "Release notes",
			Description: "now with **bold**",
			URL:         "https://example.com/notes",
			Color:       0x5865F2,
		}},
	}

	doc, err := r.Render(context.Background(), msg)
	require.NoError(t, err)
	assert.Contains(t, doc.HTML, "border-left-color: #5865f2")
	assert.Contains(t, doc.HTML, "Release notes")
	assert.Contains(t, doc.HTML, "<strong>bold</strong>")
}

func TestRenderRoleIcon(t *testing.T) {
	r := New()
	msg := basicMessage()
	msg.Member = &chat.Member{Roles: []chat.Role{
		{ID: "r1", Name: "mod", Color: 0xFF0000, IconURL: "https://example.com/icon.png", Position: 1},
	}}

	doc, err := r.Render(context.Background(), msg)
	require.NoError(t, err)
	assert.Contains(t, doc.HTML, `<img class="role-icon" src="https://example.com/icon.png" />`)
	assert.Contains(t, doc.HTML, "color: #ff0000")
}
