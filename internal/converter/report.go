package converter

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strconv"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/zagvozdeen/coffeeshop/config"
)

var reportLayout = template.Must(template.New("index.html").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{ .Title }}</title>
{{ .Head }}
</head>
<body>
{{ .Content }}
<footer>Version {{ .Version }}</footer>
</body>
</html>
`))

// newReportMarkdown describes the environment as a markdown document.
func newReportMarkdown(target string, cfg config.Config, ts []byte) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "# Coffee shop %s environment\n\n", target)
	b.WriteString("| Key | Value |\n|---|---|\n")
	rows := [][2]string{
		{"production", strconv.FormatBool(cfg.IsProduction)},
		{"apiServerUrl", cfg.APIServerURL},
		{"auth0.url", cfg.Auth0.URL},
		{"auth0.audience", cfg.Auth0.Audience},
		{"auth0.clientId", cfg.Auth0.ClientID},
		{"auth0.callbackURL", cfg.Auth0.CallbackURL},
	}
	for _, r := range rows {
		fmt.Fprintf(&b, "| %s | `%s` |\n", r[0], strings.ReplaceAll(r[1], "|", `\|`))
	}
	fmt.Fprintf(&b, "\n[Log in with Auth0](%s)\n\n", AuthorizeURL(cfg))
	b.WriteString("## environment.ts\n\n```ts\n")
	b.Write(ts)
	b.WriteString("```\n")
	return b.Bytes()
}

// newReport renders the environment report page into w.
func (c *Converter) newReport(w io.Writer, ts []byte) error {
	if c.highlighter == nil {
		h, err := NewHighlighter(c.head)
		if err != nil {
			return fmt.Errorf("failed to create highlighter: %w", err)
		}
		c.highlighter = h
	}
	md := newReportMarkdown(c.target, c.config, ts)
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse(md)
	var hookErr error
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.HrefTargetBlank,
		RenderNodeHook: func(w io.Writer, node ast.Node, entering bool) (ast.WalkStatus, bool) {
			if code, ok := node.(*ast.CodeBlock); ok {
				if err := c.highlighter.HTMLHighlight(w, string(code.Literal), string(code.Info)); err != nil {
					hookErr = err
				}
				return ast.GoToNext, true
			}
			return ast.GoToNext, false
		},
	})
	content := markdown.Render(doc, renderer)
	if hookErr != nil {
		return fmt.Errorf("failed to highlight code: %w", hookErr)
	}
	type page struct {
		Title   string
		Head    template.HTML
		Content template.HTML
		Version string
	}
	return reportLayout.Execute(w, page{
		Title:   fmt.Sprintf("Coffee shop %s environment", c.target),
		Head:    template.HTML(c.head.String()),
		Content: template.HTML(content),
		Version: c.version,
	})
}
