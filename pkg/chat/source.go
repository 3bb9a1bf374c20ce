package chat

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Source is the platform collaborator boundary: anything that can resolve a
// message id (a reply reference) to a full message. Mention lookups share the
// same boundary.
type Source interface {
	GetMessage(ctx context.Context, channelID, messageID string) (*Message, error)
	MentionSource
}

// MentionSource resolves mention ids to display names. Implementations return
// ok=false for unknown ids; the renderer substitutes a placeholder.
type MentionSource interface {
	UserName(id string) (string, bool)
	ChannelName(id string) (string, bool)
	RoleName(id string) (string, bool)
}

// CachedSource wraps a Source with an LRU so reply chains rendered repeatedly
// don't refetch the same referenced messages.
type CachedSource struct {
	Source

	cache *lru.Cache[string, *Message]
}

func NewCachedSource(src Source, size int) (*CachedSource, error) {
	cache, err := lru.New[string, *Message](size)
	if err != nil {
		return nil, err
	}
	return &CachedSource{Source: src, cache: cache}, nil
}

func (cs *CachedSource) GetMessage(ctx context.Context, channelID, messageID string) (*Message, error) {
	key := channelID + "/" + messageID
	if msg, ok := cs.cache.Get(key); ok {
		return msg, nil
	}

	msg, err := cs.Source.GetMessage(ctx, channelID, messageID)
	if err != nil {
		return nil, err
	}
	cs.cache.Add(key, msg)

	return msg, nil
}
