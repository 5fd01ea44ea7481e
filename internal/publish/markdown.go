// Package publish renders a project and its tasks as a Markdown document (GFM task
// list) or as an HTML fragment.
package publish

import (
	"bytes"
	"html/template"
	"strconv"
	"strings"

	"taskpad/internal/model"

	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// RenderProjectMarkdown renders pv with tasks in their stored order.
func RenderProjectMarkdown(pv model.ProjectView) string {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	writeLn("# " + oneLine(pv.Info.Name))
	writeLn("")
	if d := strings.TrimSpace(pv.Info.Description); d != "" {
		writeLn(d)
		writeLn("")
	}

	done := 0
	for _, t := range pv.Items {
		if t.IsDone {
			done++
		}
	}
	writeLn("## Tasks")
	writeLn("")
	if len(pv.Items) == 0 {
		writeLn("_No tasks._")
		return buf.String()
	}
	for _, t := range pv.Items {
		box := "[ ]"
		if t.IsDone {
			box = "[x]"
		}
		writeLn("- " + box + " " + oneLine(t.Title))
	}
	writeLn("")
	writeLn("_" + strconv.Itoa(done) + " of " + strconv.Itoa(len(pv.Items)) + " done._")
	return buf.String()
}

var markdownRenderer = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		emoji.Emoji,
	),
	// Raw HTML in descriptions is not passed through.
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// RenderHTML converts Markdown to an HTML fragment. On a conversion error the source is
// returned escaped inside <pre>.
func RenderHTML(src string) template.HTML {
	src = strings.TrimSpace(src)
	if src == "" {
		return ""
	}
	var b bytes.Buffer
	if err := markdownRenderer.Convert([]byte(src), &b); err != nil {
		return template.HTML("<pre>" + template.HTMLEscapeString(src) + "</pre>")
	}
	return template.HTML(b.String())
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
