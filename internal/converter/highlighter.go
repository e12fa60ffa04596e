package converter

import (
	"fmt"
	"io"

	"github.com/alecthomas/chroma"
	"github.com/alecthomas/chroma/formatters/html"
	"github.com/alecthomas/chroma/lexers"
	"github.com/alecthomas/chroma/styles"
)

// styleName is the name of the style to use for highlighting.
//
// See all styles: https://github.com/alecthomas/chroma/tree/master/styles.
const styleName = "github"

// defaultLang is used for code blocks without a known language.
// The report only embeds generated environment modules.
const defaultLang = "typescript"

type Highlighter struct {
	formatter *html.Formatter
	style     *chroma.Style
}

// NewHighlighter writes the stylesheet for the highlighted blocks to w.
// Environment modules are a dozen lines, so blocks carry no line numbers.
func NewHighlighter(w io.Writer) (*Highlighter, error) {
	formatter := html.New(
		html.WithClasses(true),
		html.WithLineNumbers(false),
		html.TabWidth(2),
	)
	style := styles.Get(styleName)
	if _, err := fmt.Fprint(w, "<style>"); err != nil {
		return nil, err
	}
	if err := formatter.WriteCSS(w, style); err != nil {
		return nil, err
	}
	if _, err := fmt.Fprint(w, "</style>"); err != nil {
		return nil, err
	}
	return &Highlighter{
		formatter: formatter,
		style:     style,
	}, nil
}

func (h *Highlighter) HTMLHighlight(w io.Writer, source, lang string) error {
	l := lexers.Get(lang)
	if l == nil {
		l = lexers.Get(defaultLang)
	}
	it, err := chroma.Coalesce(l).Tokenise(nil, source)
	if err != nil {
		return fmt.Errorf("failed to tokenise %s block: %w", lang, err)
	}
	return h.formatter.Format(w, h.style, it)
}
