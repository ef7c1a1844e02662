// Package reports renders the run summary page published alongside the
// merged tables and plots.
package reports

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/najamsyed/ESPA/internal/pipeline"
)

var pageTemplate = template.Must(template.New("summary").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Statistics Plotting Summary</title>
<style>
body { font-family: sans-serif; max-width: 900px; margin: 2em auto; background: #f3f3f3; }
table { border-collapse: collapse; }
th, td { border: 1px solid #999; padding: 4px 10px; text-align: left; }
</style>
</head>
<body>
{{.Content}}
</body>
</html>
`))

// SummaryBuilder renders a run result to a markdown summary and an HTML
// index page.
type SummaryBuilder struct {
	md goldmark.Markdown
}

// NewSummaryBuilder creates a summary builder.
func NewSummaryBuilder() *SummaryBuilder {
	return &SummaryBuilder{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
	}
}

// WriteIndex renders the run result and writes index.html into outDir,
// returning the path written.
func (b *SummaryBuilder) WriteIndex(result *pipeline.Result, outDir string) (string, error) {
	markdown := b.buildMarkdown(result)

	var body bytes.Buffer
	if err := b.md.Convert([]byte(markdown), &body); err != nil {
		return "", fmt.Errorf("failed to render run summary: %w", err)
	}

	var page bytes.Buffer
	err := pageTemplate.Execute(&page, struct{ Content template.HTML }{template.HTML(body.String())})
	if err != nil {
		return "", fmt.Errorf("failed to build summary page: %w", err)
	}

	outPath := filepath.Join(outDir, "index.html")
	if err := os.WriteFile(outPath, page.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to write summary page: %w", err)
	}
	return outPath, nil
}

func (b *SummaryBuilder) buildMarkdown(result *pipeline.Result) string {
	var buf strings.Builder

	buf.WriteString("# Statistics Plotting Summary\n\n")
	fmt.Fprintf(&buf, "Generated %s\n\n", result.Finished.UTC().Format(time.RFC1123))
	fmt.Fprintf(&buf, "Processed %d band type(s) in %s.\n\n",
		len(result.BandTypes), result.Finished.Sub(result.Started).Round(time.Millisecond))

	if len(result.BandTypes) == 0 {
		buf.WriteString("No statistic files matched any band type.\n")
		return buf.String()
	}

	buf.WriteString("| Band Type | Sensors | Scenes | Tables | Plots |\n")
	buf.WriteString("|-----------|---------|--------|--------|-------|\n")
	for _, bt := range result.BandTypes {
		fmt.Fprintf(&buf, "| %s | %s | %d | %d | %d |\n",
			bt.BandType,
			strings.Join(bt.Sensors, ", "),
			bt.SceneCount,
			len(bt.Tables),
			len(bt.Plots))
	}

	return buf.String()
}
