// Package docx keeps an inspectable paragraph model of a Word document and
// renders it to .docx with godocx. The model is what the resume writer
// builds and what tests assert on; rendering happens once, in Save.
package docx

import (
	"fmt"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/wml/ctypes"
)

const (
	// StyleListBullet is the style ID of the bulleted list paragraph style
	// shipped in the default template. pStyle takes IDs, not display names.
	StyleListBullet = "ListBullet"

	DefaultFont = "Calibri"
	// Sizes are in points
	DefaultSize uint64 = 11
	HeadingSize uint64 = 14
)

// Defaults apply to every run that does not override them.
type Defaults struct {
	Font string
	Size uint64
}

// Paragraph is a single-run paragraph.
type Paragraph struct {
	Text  string
	Style string // "" is the Normal style
	Bold  bool
	Size  uint64 // 0 uses the document default
}

// Document accumulates paragraphs in insertion order. It is not safe for
// concurrent use; a single writer owns it.
type Document struct {
	defaults   Defaults
	paragraphs []Paragraph
}

// New returns an empty document. Zero fields in d fall back to Calibri 11pt.
func New(d Defaults) *Document {
	if d.Font == "" {
		d.Font = DefaultFont
	}
	if d.Size == 0 {
		d.Size = DefaultSize
	}
	return &Document{defaults: d}
}

func (d *Document) Defaults() Defaults {
	return d.defaults
}

func (d *Document) Add(p Paragraph) {
	d.paragraphs = append(d.paragraphs, p)
}

// AddHeading appends a bold paragraph at HeadingSize.
func (d *Document) AddHeading(text string) {
	d.Add(Paragraph{Text: text, Bold: true, Size: HeadingSize})
}

func (d *Document) AddText(text string) {
	d.Add(Paragraph{Text: text})
}

func (d *Document) AddBullet(text string) {
	d.Add(Paragraph{Text: text, Style: StyleListBullet})
}

// AddSpacer appends an empty paragraph.
func (d *Document) AddSpacer() {
	d.Add(Paragraph{})
}

// Paragraphs returns a copy of the paragraphs in order.
func (d *Document) Paragraphs() []Paragraph {
	out := make([]Paragraph, len(d.paragraphs))
	copy(out, d.paragraphs)
	return out
}

func (d *Document) Len() int {
	return len(d.paragraphs)
}

// Save renders the document and writes it to path, replacing any existing
// file. The write is not atomic.
func (d *Document) Save(path string) error {
	out, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}

	for _, p := range d.paragraphs {
		para := out.AddEmptyParagraph()
		if p.Style != "" {
			para.Style(p.Style)
		}
		if p.Text == "" {
			continue
		}
		size := p.Size
		if size == 0 {
			size = d.defaults.Size
		}
		run := para.AddText(p.Text).Size(size)
		if p.Bold {
			run.Bold(true)
		}
		setFont(para.GetCT(), d.defaults.Font)
	}

	if err := out.SaveTo(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// setFont sets the font of the last run in ct. godocx runs have no font
// setter, so the run properties are edited directly.
func setFont(ct *ctypes.Paragraph, font string) {
	if len(ct.Children) == 0 || ct.Children[len(ct.Children)-1].Run == nil {
		return
	}
	run := ct.Children[len(ct.Children)-1].Run
	if run.Property == nil {
		run.Property = &ctypes.RunProperty{}
	}
	run.Property.Fonts = &ctypes.RunFonts{Ascii: font, HAnsi: font, EastAsia: font, CS: font}
}
