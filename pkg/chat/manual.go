package chat

import (
	"fmt"
	"time"

	"github.com/tidwall/gjson"
)

// ParseManualMessage decodes a hand-written message JSON document into a
// Message tagged OriginManual. Unknown fields are ignored; a missing timestamp
// defaults to now.
func ParseManualMessage(data []byte) (*Message, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("manual message: invalid JSON")
	}

	return parseManual(gjson.ParseBytes(data))
}

func parseManual(root gjson.Result) (*Message, error) {
	msg := &Message{
		ID:          root.Get("id").String(),
		Origin:      OriginManual,
		GuildID:     root.Get("guild_id").String(),
		ChannelID:   root.Get("channel_id").String(),
		Content:     root.Get("content").String(),
		ReferenceID: root.Get("reference_id").String(),
		Timestamp:   time.Now(),
	}

	if ts := root.Get("timestamp"); ts.Exists() {
		parsed, err := time.Parse(time.RFC3339, ts.String())
		if err != nil {
			return nil, fmt.Errorf("manual message: bad timestamp %q: %w", ts.String(), err)
		}
		msg.Timestamp = parsed
	}

	if author := root.Get("author"); author.Exists() {
		msg.Author = &Author{
			ID:          author.Get("id").String(),
			Username:    author.Get("username").String(),
			DisplayName: author.Get("display_name").String(),
			AvatarURL:   author.Get("avatar_url").String(),
		}
	}

	if member := root.Get("member"); member.Exists() {
		m := &Member{Nick: member.Get("nick").String()}
		member.Get("roles").ForEach(func(_, role gjson.Result) bool {
			m.Roles = append(m.Roles, Role{
				ID:       role.Get("id").String(),
				Name:     role.Get("name").String(),
				Color:    int(role.Get("color").Int()),
				IconURL:  role.Get("icon_url").String(),
				Position: int(role.Get("position").Int()),
			})
			return true
		})
		msg.Member = m
	}

	root.Get("attachments").ForEach(func(_, att gjson.Result) bool {
		msg.Attachments = append(msg.Attachments, Attachment{
			URL:         att.Get("url").String(),
			ContentType: att.Get("content_type").String(),
			Size:        att.Get("size").Int(),
			Filename:    att.Get("filename").String(),
		})
		return true
	})

	root.Get("stickers").ForEach(func(_, st gjson.Result) bool {
		msg.Stickers = append(msg.Stickers, Sticker{
			ID:   st.Get("id").String(),
			Name: st.Get("name").String(),
		})
		return true
	})

	if ref := root.Get("referenced_message"); ref.Exists() {
		parsed, err := parseManual(ref)
		if err != nil {
			return nil, fmt.Errorf("manual message: referenced message: %w", err)
		}
		msg.Referenced = parsed
	}

	root.Get("embeds").ForEach(func(_, emb gjson.Result) bool {
		msg.Embeds = append(msg.Embeds, Embed{
			Title:       emb.Get("title").String(),
			Description: emb.Get("description").String(),
			URL:         emb.Get("url").String(),
			Color:       int(emb.Get("color").Int()),
		})
		return true
	})

	return msg, nil
}
