package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/duo/chatshot/pkg/render"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Renderer RendererConfig `yaml:"renderer"`
	Assets   AssetConfig    `yaml:"assets"`
	Colors   ColorConfig    `yaml:"colors"`
	Logging  LoggingConfig  `yaml:"logging"`

	// MessageCacheSize bounds the referenced-message LRU.
	MessageCacheSize int `yaml:"message_cache_size"`
}

type RendererConfig struct {
	// URL of the headless-browser service that rasterizes documents.
	URL    string `yaml:"url"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type AssetConfig struct {
	DefaultAvatarURL string `yaml:"default_avatar_url"`
	EmojiCDN         string `yaml:"emoji_cdn"`
	CustomEmojiCDN   string `yaml:"custom_emoji_cdn"`
	StickerCDN       string `yaml:"sticker_cdn"`
}

type ColorConfig struct {
	AuthorFallback string `yaml:"author_fallback"`
	ReplyFallback  string `yaml:"reply_fallback"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

func Default() *Config {
	return &Config{
		Renderer: RendererConfig{
			URL:   "http://localhost:3000/render",
			Width: 600,
		},
		Assets: AssetConfig{
			DefaultAvatarURL: render.DefaultAvatarURL,
			EmojiCDN:         render.DefaultEmojiCDN,
			CustomEmojiCDN:   render.DefaultCustomEmojiCDN,
			StickerCDN:       render.DefaultStickerCDN,
		},
		Colors: ColorConfig{
			AuthorFallback: render.DefaultAuthorColor,
			ReplyFallback:  render.DefaultReplyColor,
		},
		Logging:          LoggingConfig{Level: "info"},
		MessageCacheSize: 256,
	}
}

// Load reads the optional yaml file on top of defaults, then applies
// environment overrides. A .env file next to the process is honored if present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if url := os.Getenv("CHATSHOT_RENDERER_URL"); url != "" {
		cfg.Renderer.URL = url
	}
	if width := os.Getenv("CHATSHOT_RENDER_WIDTH"); width != "" {
		w, err := strconv.Atoi(width)
		if err != nil {
			return nil, fmt.Errorf("bad CHATSHOT_RENDER_WIDTH: %w", err)
		}
		cfg.Renderer.Width = w
	}
	if level := os.Getenv("CHATSHOT_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}

	return cfg, nil
}
