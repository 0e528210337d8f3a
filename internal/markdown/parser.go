package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

// Parser renders goal descriptions to HTML. Raw HTML in the source is
// dropped since goldmark is not configured with WithUnsafe.
type Parser struct {
	md goldmark.Markdown
}

func NewParser() *Parser {
	return &Parser{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.Typographer),
			goldmark.WithRendererOptions(
				goldmarkhtml.WithHardWraps(),
				goldmarkhtml.WithXHTML(),
			),
		),
	}
}

// Render returns "" for blank descriptions so clients can omit the field.
func (p *Parser) Render(description string) (string, error) {
	if strings.TrimSpace(description) == "" {
		return "", nil
	}
	var out strings.Builder
	if err := p.md.Convert([]byte(description), &out); err != nil {
		return "", err
	}
	return out.String(), nil
}
