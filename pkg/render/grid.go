package render

import (
	"fmt"
	"html"
	"math"
	"strconv"
	"strings"

	"github.com/duo/chatshot/pkg/chat"
)

// renderAttachments lays the attachments out in the platform's fixed grid
// shapes. The shape is a pure function of the count; the attachment type only
// changes the tile itself, never the grid case.
func (r *Renderer) renderAttachments(atts []chat.Attachment) string {
	count := len(atts)
	if count == 0 {
		return ""
	}

	tiles := make([]string, count)
	for i, att := range atts {
		tiles[i] = renderTile(att)
	}

	var rows []string
	switch count {
	case 1:
		rows = []string{row(tiles[0])}
	case 2:
		rows = []string{row(tiles[:2]...)}
	case 3:
		rows = []string{row(tiles[0], column(tiles[1], tiles[2]))}
	case 4:
		rows = []string{row(column(tiles[0], tiles[1]), column(tiles[2], tiles[3]))}
	case 5:
		rows = []string{row(tiles[:2]...), row(tiles[2:5]...)}
	case 6:
		rows = []string{row(tiles[:3]...), row(tiles[3:6]...)}
	case 7:
		rows = []string{row(tiles[0]), row(tiles[1:4]...), row(tiles[4:7]...)}
	case 8:
		rows = []string{row(tiles[:2]...), row(tiles[2:5]...), row(tiles[5:8]...)}
	case 9:
		rows = []string{row(tiles[:3]...), row(tiles[3:6]...), row(tiles[6:9]...)}
	case 10:
		rows = []string{row(tiles[0]), row(tiles[1:4]...), row(tiles[4:7]...), row(tiles[7:10]...)}
	default:
		// 11 or more: eight plain tiles plus a ninth overlaid with the count
		// of everything beyond it.
		more := moreTile(tiles[8], count-9)
		rows = []string{row(tiles[:3]...), row(tiles[3:6]...), row(tiles[6], tiles[7], more)}
	}

	gridCase := count
	if gridCase > 10 {
		gridCase = 11
	}
	return fmt.Sprintf(`<div class="attachments attachments-%d">%s</div>`,
		gridCase, strings.Join(rows, ""))
}

func row(cells ...string) string {
	return `<div class="grid-row">` + strings.Join(cells, "") + `</div>`
}

func column(cells ...string) string {
	return `<div class="grid-col">` + strings.Join(cells, "") + `</div>`
}

func moreTile(tile string, hidden int) string {
	return fmt.Sprintf(`<div class="tile-more">%s<span class="more-count">+%d</span></div>`, tile, hidden)
}

func renderTile(att chat.Attachment) string {
	switch {
	case strings.HasPrefix(att.ContentType, "image/"):
		return fmt.Sprintf(`<img class="tile" src="%s" alt="%s" />`,
			html.EscapeString(att.URL), html.EscapeString(att.Filename))
	case strings.HasPrefix(att.ContentType, "video/"):
		return fmt.Sprintf(`<video class="tile" controls="controls"><source src="%s" type="%s" /></video>`,
			html.EscapeString(att.URL), html.EscapeString(att.ContentType))
	default:
		return fmt.Sprintf(`<div class="tile file-tile"><span class="file-name">%s</span><span class="file-size">%s</span></div>`,
			html.EscapeString(att.Filename), formatFileSize(att.Size))
	}
}

// formatFileSize renders a byte count with binary prefixes, trimming trailing
// zeros from the two-decimal value ("1.5 KB", not "1.50 KB").
func formatFileSize(size int64) string {
	if size == 0 {
		return "0 Bytes"
	}

	units := []string{"Bytes", "KB", "MB", "GB"}
	value := float64(size)
	unit := 0
	for value >= 1024 && unit < len(units)-1 {
		value /= 1024
		unit++
	}
	value = math.Round(value*100) / 100

	return strconv.FormatFloat(value, 'f', -1, 64) + " " + units[unit]
}
