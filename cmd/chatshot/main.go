package main

import (
	"fmt"
	"os"
	"time"

	"github.com/duo/chatshot/internal/config"
	"github.com/duo/chatshot/pkg/browser"
	"github.com/duo/chatshot/pkg/chat"
	"github.com/duo/chatshot/pkg/render"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Information to find out exactly which commit the binary was built from.
// These are filled at build time with the -X linker flag.
var (
	Tag       = "unknown"
	Commit    = "unknown"
	BuildTime = "unknown"
)

var (
	configPath string
	inputPath  string
	outputPath string
	htmlOnly   bool
	width      int
)

var rootCmd = &cobra.Command{
	Use:     "chatshot",
	Short:   "Render a chat message into a platform-styled image",
	Version: fmt.Sprintf("%s (%s, built %s)", Tag, Commit, BuildTime),
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a message JSON file to an image (or markup with --html)",
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file")
	renderCmd.Flags().StringVarP(&inputPath, "input", "i", "", "message JSON file (required)")
	renderCmd.Flags().StringVarP(&outputPath, "output", "o", "message.png", "output file")
	renderCmd.Flags().BoolVar(&htmlOnly, "html", false, "write the markup document instead of calling the render service")
	renderCmd.Flags().IntVar(&width, "width", 0, "target image width (overrides config)")
	_ = renderCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read message: %w", err)
	}
	msg, err := chat.ParseManualMessage(data)
	if err != nil {
		return err
	}

	renderer := render.New()
	renderer.AvatarURL = cfg.Assets.DefaultAvatarURL
	renderer.AuthorColor = cfg.Colors.AuthorFallback
	renderer.ReplyColor = cfg.Colors.ReplyFallback
	renderer.EmojiCDN = cfg.Assets.EmojiCDN
	renderer.CustomEmojiCDN = cfg.Assets.CustomEmojiCDN
	renderer.StickerCDN = cfg.Assets.StickerCDN

	doc, err := renderer.Render(ctx, msg)
	if err != nil {
		return err
	}

	if htmlOnly {
		if err := os.WriteFile(outputPath, []byte(doc.HTML), 0o644); err != nil {
			return fmt.Errorf("failed to write document: %w", err)
		}
		logger.Info().Str("path", outputPath).Msg("Wrote markup document")
		return nil
	}

	opts := browser.Options{Width: cfg.Renderer.Width, Height: cfg.Renderer.Height}
	if width > 0 {
		opts.Width = width
	}

	image, ext, err := browser.NewClient(cfg.Renderer.URL).Render(ctx, doc.HTML, opts)
	if err != nil {
		return err
	}

	if err := os.WriteFile(outputPath, image, 0o644); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}
	logger.Info().Str("path", outputPath).Str("format", ext).Msg("Wrote rendered image")

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
