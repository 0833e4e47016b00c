package docx

import (
	"fmt"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/wml/ctypes"
)

// ReadText returns the text of every non-empty paragraph in the .docx at
// path, trimmed and joined with newlines.
func ReadText(path string) (string, error) {
	rd, err := godocx.OpenDocument(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	if rd.Document == nil || rd.Document.Body == nil {
		return "", fmt.Errorf("%s: document has no body", path)
	}

	var out []string
	for _, child := range rd.Document.Body.Children {
		if child.Para == nil {
			continue
		}
		if text := strings.TrimSpace(paragraphText(child.Para.GetCT())); text != "" {
			out = append(out, text)
		}
	}
	return strings.Join(out, "\n"), nil
}

// paragraphText concatenates the run text of p, hyperlinks included.
// Tabs and breaks become spaces.
func paragraphText(p *ctypes.Paragraph) string {
	var buf strings.Builder
	var walk func(children []ctypes.ParagraphChild)
	walk = func(children []ctypes.ParagraphChild) {
		for _, pc := range children {
			if pc.Link != nil {
				walk(pc.Link.Children)
			}
			if pc.Run == nil {
				continue
			}
			for _, rc := range pc.Run.Children {
				switch {
				case rc.Text != nil:
					buf.WriteString(rc.Text.Text)
				case rc.Tab != nil, rc.Break != nil, rc.CarrRtn != nil:
					buf.WriteByte(' ')
				}
			}
		}
	}
	walk(p.Children)
	return buf.String()
}
