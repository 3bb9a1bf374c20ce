package render

import (
	"testing"

	"github.com/duo/chatshot/pkg/chat"
)

func TestResolveAuthorDefaults(t *testing.T) {
	r := New()
	id := r.resolveAuthor(&chat.Message{})

	if id.Name != "Unknown User" {
		t.Fatalf("name = %q", id.Name)
	}
	if id.Color != "#ffffff" {
		t.Fatalf("color = %q", id.Color)
	}
	if id.Avatar != DefaultAvatarURL {
		t.Fatalf("avatar = %q", id.Avatar)
	}
}

func TestResolveAuthorNamePrecedence(t *testing.T) {
	r := New()

	msg := &chat.Message{Author: &chat.Author{Username: "user", DisplayName: "Display"}}
	if id := r.resolveAuthor(msg); id.Name != "Display" {
		t.Fatalf("name = %q, want display name", id.Name)
	}

	msg.Member = &chat.Member{Nick: "Nick"}
	if id := r.resolveAuthor(msg); id.Name != "Nick" {
		t.Fatalf("name = %q, want nickname", id.Name)
	}

	msg = &chat.Message{Author: &chat.Author{Username: "user"}}
	if id := r.resolveAuthor(msg); id.Name != "user" {
		t.Fatalf("name = %q, want username", id.Name)
	}
}

func TestRoleColorSelection(t *testing.T) {
	r := New()
	msg := &chat.Message{
		Author: &chat.Author{Username: "user"},
		Member: &chat.Member{Roles: []chat.Role{
			{ID: "a", Name: "colorless", Color: 0, Position: 5},
			{ID: "b", Name: "red", Color: 0xFF0000, Position: 3},
			{ID: "c", Name: "green", Color: 0x00FF00, Position: 4},
		}},
	}

	id := r.resolveAuthor(msg)
	if id.Color != "#00ff00" {
		t.Fatalf("color = %q, want highest-positioned colored role", id.Color)
	}
}

func TestRoleColorSkipsEveryone(t *testing.T) {
	r := New()
	msg := &chat.Message{
		GuildID: "g1",
		Author:  &chat.Author{Username: "user"},
		Member: &chat.Member{Roles: []chat.Role{
			{ID: "g1", Name: "@everyone", Color: 0x123456, Position: 99},
		}},
	}

	if id := r.resolveAuthor(msg); id.Color != "#ffffff" {
		t.Fatalf("color = %q, everyone role must not supply the accent", id.Color)
	}
}

func TestRoleIcon(t *testing.T) {
	r := New()
	msg := &chat.Message{
		Author: &chat.Author{Username: "user"},
		Member: &chat.Member{Roles: []chat.Role{
			{ID: "b", Name: "mod", Color: 0xABCDEF, IconURL: "https://example.com/icon.png", Position: 1},
		}},
	}

	id := r.resolveAuthor(msg)
	if id.RoleIcon != "https://example.com/icon.png" {
		t.Fatalf("role icon = %q", id.RoleIcon)
	}
	if id.Color != "#abcdef" {
		t.Fatalf("color = %q", id.Color)
	}
}

func TestResolveReplyAuthor(t *testing.T) {
	r := New()

	id := r.resolveReplyAuthor(&chat.Message{Author: &chat.Author{Username: "user"}})
	if id.Color != "#b5bac1" {
		t.Fatalf("color = %q, want reply fallback", id.Color)
	}

	colored := r.resolveReplyAuthor(&chat.Message{
		Author: &chat.Author{Username: "user"},
		Member: &chat.Member{Roles: []chat.Role{
			{ID: "b", Name: "mod", Color: 1, IconURL: "https://example.com/icon.png", Position: 1},
		}},
	})
	if colored.Color != "#000001" {
		t.Fatalf("color = %q, want zero-padded role color", colored.Color)
	}
	if colored.RoleIcon != "" {
		t.Fatalf("reply identity must not carry a role icon")
	}
}
