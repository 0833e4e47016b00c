package resume

import (
	"context"
	"fmt"
	"strings"

	"github.com/xrsl/atscv/pkg/docx"
	"github.com/xrsl/atscv/pkg/log"
)

// BulletMarker prefixes a line the LLM meant as a list item.
const BulletMarker = "•"

// SectionFormatter is what Writer needs from a Formatter.
type SectionFormatter interface {
	Format(ctx context.Context, section, content string) (FormattedSection, error)
}

// Writer builds the output document one section at a time.
type Writer struct {
	formatter SectionFormatter
	output    string
	doc       *docx.Document
}

// NewWriter returns a Writer that formats through formatter and saves to
// outputPath.
func NewWriter(formatter SectionFormatter, outputPath string) *Writer {
	return &Writer{
		formatter: formatter,
		output:    outputPath,
		doc:       docx.New(docx.Defaults{Font: docx.DefaultFont, Size: docx.DefaultSize}),
	}
}

// WriteSection formats content and appends a bold heading, the formatted
// paragraphs and a spacer. Nothing is added when the formatted result is
// blank.
func (w *Writer) WriteSection(ctx context.Context, title, content string) error {
	formatted, err := w.formatter.Format(ctx, title, content)
	if err != nil {
		return err
	}
	if formatted.Blank() {
		log.Debug("skipping blank section", "section", title)
		return nil
	}

	w.doc.AddHeading(title)
	switch formatted.Kind {
	case KindText:
		for _, line := range strings.Split(formatted.Text, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if item, ok := strings.CutPrefix(line, BulletMarker); ok {
				w.doc.AddBullet(strings.TrimSpace(item))
			} else {
				w.doc.AddText(line)
			}
		}
	case KindBullets:
		for _, item := range formatted.Items {
			if item = strings.TrimSpace(item); item != "" {
				w.doc.AddBullet(item)
			}
		}
	default:
		return fmt.Errorf("section %s: unknown format kind %v", title, formatted.Kind)
	}
	w.doc.AddSpacer()
	return nil
}

// Save writes the document to the output path, overwriting it.
func (w *Writer) Save() error {
	if err := w.doc.Save(w.output); err != nil {
		return err
	}
	log.Info("document saved", "path", w.output, "paragraphs", w.doc.Len())
	return nil
}

// Document exposes the in-memory document.
func (w *Writer) Document() *docx.Document {
	return w.doc
}

// OutputPath is where Save writes.
func (w *Writer) OutputPath() string {
	return w.output
}
