package email

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
)

// mdRenderer escapes raw HTML in the source since WithUnsafe is not set.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// RenderMarkdown converts a Markdown email body to HTML.
// PRE: md is UTF-8 Markdown
// POST: Returns HTML with raw HTML from md escaped
func RenderMarkdown(md string) (string, error) {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("failed to render email markdown: %w", err)
	}
	return buf.String(), nil
}
