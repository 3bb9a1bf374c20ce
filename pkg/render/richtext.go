package render

import (
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/duo/chatshot/pkg/chat"

	"go.mau.fi/util/variationselector"
)

type textMode int

const (
	modeFull textMode = iota
	modeReply
)

// span is one immutable piece of the text under transformation. Claimed spans
// are generated markup (or verbatim code bodies) that no later pass may touch;
// only unclaimed spans are ever matched again.
type span struct {
	text    string
	claimed bool
}

type spanList []span

func plain(text string) span   { return span{text: text} }
func claimed(text string) span { return span{text: text, claimed: true} }

func (sl spanList) String() string {
	var sb strings.Builder
	for _, sp := range sl {
		sb.WriteString(sp.text)
	}
	return sb.String()
}

// rewrite applies re to every unclaimed span and replaces each match with the
// spans produced by repl. Submatch groups are passed with the whole match at
// index 0; groups that did not participate are empty.
func (sl spanList) rewrite(re *regexp.Regexp, repl func(groups []string) spanList) spanList {
	out := make(spanList, 0, len(sl))
	for _, sp := range sl {
		if sp.claimed || sp.text == "" {
			out = append(out, sp)
			continue
		}
		text := sp.text
		last := 0
		for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
			groups := make([]string, len(loc)/2)
			for g := range groups {
				if loc[2*g] >= 0 {
					groups[g] = text[loc[2*g]:loc[2*g+1]]
				}
			}
			if loc[0] > last {
				out = append(out, plain(text[last:loc[0]]))
			}
			out = append(out, repl(groups)...)
			last = loc[1]
		}
		if last < len(text) {
			out = append(out, plain(text[last:]))
		}
	}
	return out
}

const emojiRanges = `\x{1F000}-\x{1FAFF}\x{2300}-\x{23FF}\x{2600}-\x{27BF}\x{2B00}-\x{2BFF}`

var (
	reMediaURL = regexp.MustCompile(`https?://\S+\.(?:png|jpe?g|gif|webp)(?:\?\S*)?`)
	reTenor    = regexp.MustCompile(`https?://tenor\.com/view/[\w-]+`)
	reGiphy    = regexp.MustCompile(`https?://giphy\.com/gifs/([\w-]+)`)
	reImgur    = regexp.MustCompile(`https?://imgur\.com/(\w+)`)
	reBareURL  = regexp.MustCompile(`https?://\S+`)

	reCustomEmoji = regexp.MustCompile(`&lt;(a?):(\w+):(\d+)&gt;`)

	reUnicodeEmoji = regexp.MustCompile(
		`[` + emojiRanges + `](?:[\x{1F3FB}-\x{1F3FF}]|\x{FE0F})?` +
			`(?:\x{200D}[` + emojiRanges + `](?:[\x{1F3FB}-\x{1F3FF}]|\x{FE0F})?)*`)

	reCodeFence  = regexp.MustCompile("(?s)```(.+?)```")
	reInlineCode = regexp.MustCompile("`([^`\n]+)`")
	reSubtext    = regexp.MustCompile(`(?m)^-# (.+)$`)
	reH3         = regexp.MustCompile(`(?m)^### (.+)$`)
	reH2         = regexp.MustCompile(`(?m)^## (.+)$`)
	reH1         = regexp.MustCompile(`(?m)^# (.+)$`)
	reBold       = regexp.MustCompile(`(?s)\*\*(.+?)\*\*|__(.+?)__`)
	reItalic     = regexp.MustCompile(`\*([^*\n]+)\*|_([^_\n]+)_`)
	reStrike     = regexp.MustCompile(`(?s)~~(.+?)~~`)
	reNewline    = regexp.MustCompile(`\n`)

	reRoleMention    = regexp.MustCompile(`&lt;@&amp;(\d+)&gt;`)
	reUserMention    = regexp.MustCompile(`&lt;@!?(\d+)&gt;`)
	reChannelMention = regexp.MustCompile(`&lt;#(\d+)&gt;`)
)

// renderText is the ordered transformation pipeline. Each pass only ever sees
// the previous pass's output, and markup a pass emits is claimed so later
// passes cannot re-trigger on it. The function is total: malformed input
// degrades to literal text, never an error.
func (r *Renderer) renderText(text string, mode textMode, mentions chat.MentionSource) string {
	escaped := html.EscapeString(text)

	// The jumbo decision is made once, against the escaped original, before
	// any emoji has been substituted.
	sizeClass := ""
	switch {
	case mode == modeReply:
		sizeClass = "emoji-small"
	case isEmojiOnly(escaped):
		sizeClass = "emoji-large"
	}

	spans := spanList{plain(escaped)}
	spans = r.rewriteMediaURLs(spans)
	spans = r.rewriteGifProviders(spans)
	spans = rewriteBareURLs(spans)
	spans = r.rewriteCustomEmoji(spans, sizeClass)
	spans = r.rewriteUnicodeEmoji(spans, sizeClass)
	spans = rewriteCodeFences(spans)
	spans = rewriteInlineCode(spans)
	spans = rewriteSubtext(spans)
	spans = rewriteHeadings(spans)
	spans = rewriteInlineStyles(spans)
	spans = rewriteNewlines(spans)
	spans = resolveMentions(spans, mentions)

	return spans.String()
}

// Pass 2: direct media URLs become inline images and are claimed so the GIF,
// bare-link and emoji passes skip them.
func (r *Renderer) rewriteMediaURLs(spans spanList) spanList {
	return spans.rewrite(reMediaURL, func(groups []string) spanList {
		return spanList{claimed(fmt.Sprintf(`<img class="media-embed" src="%s" />`, groups[0]))}
	})
}

// Pass 3: GIF-hosting page links, tried in fixed precedence. Each rewrite
// derives a direct media URL; the original page stays as the anchor fallback
// in case the direct URL fails to load.
func (r *Renderer) rewriteGifProviders(spans spanList) spanList {
	spans = spans.rewrite(reTenor, func(groups []string) spanList {
		// Tenor serves the raw GIF when ".gif" is appended to a view URL.
		return spanList{gifEmbed(groups[0], groups[0]+".gif")}
	})
	spans = spans.rewrite(reGiphy, func(groups []string) spanList {
		slug := groups[1]
		id := slug
		if i := strings.LastIndex(slug, "-"); i >= 0 {
			id = slug[i+1:]
		}
		return spanList{gifEmbed(groups[0], "https://media.giphy.com/media/"+id+"/giphy.gif")}
	})
	spans = spans.rewrite(reImgur, func(groups []string) spanList {
		return spanList{gifEmbed(groups[0], "https://i.imgur.com/"+groups[1]+".gif")}
	})
	return spans
}

func gifEmbed(page, direct string) span {
	return claimed(fmt.Sprintf(`<a class="media-link" href="%s"><img class="media-embed" src="%s" alt="%s" /></a>`,
		page, direct, page))
}

// Pass 4: anything still looking like a URL becomes a generic link.
func rewriteBareURLs(spans spanList) spanList {
	return spans.rewrite(reBareURL, func(groups []string) spanList {
		return spanList{claimed(fmt.Sprintf(`<a class="link" href="%s">%s</a>`, groups[0], groups[0]))}
	})
}

// Pass 5: escaped custom-emoji markers. Animated emoji resolve to .gif.
func (r *Renderer) rewriteCustomEmoji(spans spanList, sizeClass string) spanList {
	return spans.rewrite(reCustomEmoji, func(groups []string) spanList {
		ext := ".png"
		if groups[1] == "a" {
			ext = ".gif"
		}
		return spanList{claimed(fmt.Sprintf(`<img class="%s" src="%s/%s%s" alt=":%s:" />`,
			emojiClass(sizeClass), r.CustomEmojiCDN, groups[3], ext, groups[2]))}
	})
}

// Pass 6: Unicode emoji sequences (base + optional skin tone/variation
// selector, joined by ZWJ) become images from the emoji CDN.
func (r *Renderer) rewriteUnicodeEmoji(spans spanList, sizeClass string) spanList {
	return spans.rewrite(reUnicodeEmoji, func(groups []string) spanList {
		return spanList{claimed(fmt.Sprintf(`<img class="%s" src="%s/%s.png" alt="%s" />`,
			emojiClass(sizeClass), r.EmojiCDN, emojiCode(groups[0]), groups[0]))}
	})
}

func emojiClass(sizeClass string) string {
	if sizeClass == "" {
		return "emoji"
	}
	return "emoji " + sizeClass
}

// emojiCode maps an emoji sequence to its CDN file name: lower-case hex
// codepoints joined by dashes. Variation selectors are dropped unless the
// sequence is ZWJ-joined, matching the CDN's naming.
func emojiCode(seq string) string {
	if !strings.ContainsRune(seq, 0x200D) {
		seq = variationselector.Remove(seq)
	}
	parts := make([]string, 0, 4)
	for _, r := range seq {
		parts = append(parts, strconv.FormatInt(int64(r), 16))
	}
	return strings.Join(parts, "-")
}

// isEmojiOnly reports whether the escaped text consists solely of emoji:
// custom-emoji markers are disregarded, whitespace is disregarded, and any
// other rune disqualifies.
func isEmojiOnly(escaped string) bool {
	stripped := reCustomEmoji.ReplaceAllString(escaped, "")
	for _, r := range stripped {
		if unicode.IsSpace(r) || isEmojiRune(r) {
			continue
		}
		return false
	}
	return true
}

func isEmojiRune(r rune) bool {
	switch {
	case r >= 0x1F000 && r <= 0x1FAFF,
		r >= 0x2300 && r <= 0x23FF,
		r >= 0x2600 && r <= 0x27BF,
		r >= 0x2B00 && r <= 0x2BFF,
		r >= 0x1F3FB && r <= 0x1F3FF,
		r == 0x200D, r == 0xFE0F:
		return true
	}
	return false
}

// Pass 7: paired triple-backtick fences. A first line that is a single short
// token followed by more lines is treated as the language tag and moved into
// metadata. The body is claimed verbatim; an unterminated fence never matches
// and stays literal.
func rewriteCodeFences(spans spanList) spanList {
	return spans.rewrite(reCodeFence, func(groups []string) spanList {
		body := groups[1]
		lang := ""

		lines := strings.Split(body, "\n")
		first := strings.TrimSpace(lines[0])
		if len(lines) > 1 && first != "" && !strings.ContainsAny(first, " \t") && len(first) < 20 {
			lang = first
			body = strings.Join(lines[1:], "\n")
		}
		body = strings.Trim(body, "\n")

		attr := ""
		if lang != "" {
			attr = fmt.Sprintf(` data-language="%s"`, lang)
		}
		return spanList{claimed(fmt.Sprintf(`<pre><code class="code-block"%s>%s</code></pre>`, attr, body))}
	})
}

// Pass 8: single-backtick inline code, no embedded newline. Body is claimed.
func rewriteInlineCode(spans spanList) spanList {
	return spans.rewrite(reInlineCode, func(groups []string) spanList {
		return spanList{claimed(fmt.Sprintf(`<code class="inline-code">%s</code>`, groups[1]))}
	})
}

// Pass 9: -# line marker.
func rewriteSubtext(spans spanList) spanList {
	return spans.rewrite(reSubtext, func(groups []string) spanList {
		return spanList{claimed(`<span class="subtext">`), plain(groups[1]), claimed(`</span>`)}
	})
}

// Pass 10: heading markers, most-specific pattern first. The markers #, ##,
// ### map to levels 3 down to 1; the stylesheet sizes h3 largest so a single
// # renders biggest. Heading bodies stay unclaimed for inline formatting.
func rewriteHeadings(spans spanList) spanList {
	wrap := func(tag string) func([]string) spanList {
		return func(groups []string) spanList {
			return spanList{claimed("<" + tag + ">"), plain(groups[1]), claimed("</" + tag + ">")}
		}
	}
	spans = spans.rewrite(reH3, wrap("h1"))
	spans = spans.rewrite(reH2, wrap("h2"))
	spans = spans.rewrite(reH1, wrap("h3"))
	return spans
}

// Pass 11: bold, then italic, then strikethrough. Only the tags are claimed;
// the wrapped text flows on to the mention pass.
func rewriteInlineStyles(spans spanList) spanList {
	pair := func(tag string) func([]string) spanList {
		return func(groups []string) spanList {
			inner := groups[1]
			if inner == "" {
				inner = groups[2]
			}
			return spanList{claimed("<" + tag + ">"), plain(inner), claimed("</" + tag + ">")}
		}
	}
	spans = spans.rewrite(reBold, pair("strong"))
	spans = spans.rewrite(reItalic, pair("em"))
	spans = spans.rewrite(reStrike, func(groups []string) spanList {
		return spanList{claimed("<s>"), plain(groups[1]), claimed("</s>")}
	})
	return spans
}

// Pass 12: explicit line breaks.
func rewriteNewlines(spans spanList) spanList {
	return spans.rewrite(reNewline, func([]string) spanList {
		return spanList{claimed("<br/>")}
	})
}

// Pass 13: escaped mention markers for roles, users and channels. Unresolved
// ids render a generic placeholder instead of failing.
func resolveMentions(spans spanList, mentions chat.MentionSource) spanList {
	lookup := func(fn func(string) (string, bool), id, prefix, placeholder string) span {
		name := placeholder
		if mentions != nil {
			if resolved, ok := fn(id); ok {
				name = prefix + html.EscapeString(resolved)
			}
		}
		return claimed(fmt.Sprintf(`<span class="mention">%s</span>`, name))
	}

	spans = spans.rewrite(reRoleMention, func(groups []string) spanList {
		var fn func(string) (string, bool)
		if mentions != nil {
			fn = mentions.RoleName
		}
		return spanList{lookup(fn, groups[1], "@", "@role")}
	})
	spans = spans.rewrite(reUserMention, func(groups []string) spanList {
		var fn func(string) (string, bool)
		if mentions != nil {
			fn = mentions.UserName
		}
		return spanList{lookup(fn, groups[1], "@", "@User")}
	})
	spans = spans.rewrite(reChannelMention, func(groups []string) spanList {
		var fn func(string) (string, bool)
		if mentions != nil {
			fn = mentions.ChannelName
		}
		return spanList{lookup(fn, groups[1], "#", "#channel")}
	})
	return spans
}
