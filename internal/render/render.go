// Package render formats bot replies as terminal markdown.
package render

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/glamour"
)

// rendererKey identifies a cached renderer configuration.
type rendererKey struct {
	style string
	width int
}

var (
	mu        sync.Mutex
	renderers = map[rendererKey]*glamour.TermRenderer{}
)

// Markdown renders content with the given glamour style ("dark", "light",
// or "auto") at the given wrap width. Renderers are cached per
// configuration; glamour initialization is expensive.
func Markdown(content, style string, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	if style == "" {
		style = "dark"
	}

	renderer, err := getRenderer(rendererKey{style: style, width: width})
	if err != nil {
		return "", err
	}

	mu.Lock()
	defer mu.Unlock()
	out, err := renderer.Render(content)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}

func getRenderer(key rendererKey) (*glamour.TermRenderer, error) {
	mu.Lock()
	defer mu.Unlock()

	if r, ok := renderers[key]; ok {
		return r, nil
	}

	opts := []glamour.TermRendererOption{
		glamour.WithWordWrap(key.width),
		glamour.WithEmoji(),
	}
	if key.style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(key.style))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	renderers[key] = r
	return r, nil
}
