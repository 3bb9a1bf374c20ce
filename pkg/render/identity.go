package render

import (
	"fmt"

	"github.com/duo/chatshot/pkg/chat"
)

// identity is the resolved visual identity of a message author: what the
// bubble shows next to the content.
type identity struct {
	Name     string
	Color    string
	Avatar   string
	RoleIcon string
}

// resolveAuthor derives the primary author's display identity. Missing pieces
// fall back to configured defaults; a message without any author record at all
// renders as "Unknown User".
func (r *Renderer) resolveAuthor(msg *chat.Message) identity {
	id := identity{
		Name:   "Unknown User",
		Color:  r.AuthorColor,
		Avatar: r.AvatarURL,
	}

	if msg.Author != nil {
		if msg.Author.DisplayName != "" {
			id.Name = msg.Author.DisplayName
		} else if msg.Author.Username != "" {
			id.Name = msg.Author.Username
		}
		if msg.Author.AvatarURL != "" {
			id.Avatar = msg.Author.AvatarURL
		}
	}

	if msg.Member != nil {
		if msg.Member.Nick != "" {
			id.Name = msg.Member.Nick
		}
		if role := topColorRole(msg.Member.Roles, msg.GuildID); role != nil {
			id.Color = hexColor(role.Color)
			id.RoleIcon = role.IconURL
		}
	}

	return id
}

// resolveReplyAuthor is the reply-preview variant: same name and avatar rules,
// a muted fallback color, no role icon.
func (r *Renderer) resolveReplyAuthor(msg *chat.Message) identity {
	id := r.resolveAuthor(msg)
	if msg.Member == nil || topColorRole(msg.Member.Roles, msg.GuildID) == nil {
		id.Color = r.ReplyColor
	}
	id.RoleIcon = ""
	return id
}

// topColorRole picks the highest-positioned role with a non-zero color,
// skipping the guild's base role. Nil when no role qualifies.
func topColorRole(roles []chat.Role, guildID string) *chat.Role {
	var best *chat.Role
	for i := range roles {
		role := &roles[i]
		if role.Color == 0 || role.Name == "@everyone" || (guildID != "" && role.ID == guildID) {
			continue
		}
		if best == nil || role.Position > best.Position {
			best = role
		}
	}
	return best
}

func hexColor(color int) string {
	return fmt.Sprintf("#%06x", color&0xffffff)
}
