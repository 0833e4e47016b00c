package resume

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Kind tags the shape of a FormattedSection.
type Kind int

const (
	KindText Kind = iota
	KindBullets
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindBullets:
		return "bullets"
	default:
		return "unknown"
	}
}

// FormattedSection is either a block of text or a list of bullet items.
// Text is set only for KindText, Items only for KindBullets.
type FormattedSection struct {
	Kind  Kind
	Text  string
	Items []string
}

// TextBlock wraps s as a KindText section.
func TextBlock(s string) FormattedSection {
	return FormattedSection{Kind: KindText, Text: s}
}

// BulletList wraps items as a KindBullets section.
func BulletList(items []string) FormattedSection {
	return FormattedSection{Kind: KindBullets, Items: items}
}

// Blank reports whether the section would render nothing.
func (f FormattedSection) Blank() bool {
	switch f.Kind {
	case KindBullets:
		for _, it := range f.Items {
			if strings.TrimSpace(it) != "" {
				return false
			}
		}
		return true
	default:
		return strings.TrimSpace(f.Text) == ""
	}
}

var markdown = goldmark.New()

// parseReply classifies an LLM reply. A reply that is exactly one unordered
// Markdown list of single-block items is a BulletList; everything else is
// kept verbatim as a TextBlock.
func parseReply(reply string) FormattedSection {
	if strings.TrimSpace(reply) == "" {
		return TextBlock("")
	}

	src := []byte(reply)
	doc := markdown.Parser().Parse(text.NewReader(src))
	if doc.ChildCount() != 1 {
		return TextBlock(reply)
	}
	list, ok := doc.FirstChild().(*ast.List)
	if !ok || list.IsOrdered() {
		return TextBlock(reply)
	}

	var items []string
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		// Nested lists or multi-paragraph items don't map to flat bullets
		if item.ChildCount() != 1 {
			return TextBlock(reply)
		}
		line := blockText(item.FirstChild(), src)
		if line == "" {
			continue
		}
		items = append(items, line)
	}
	if len(items) == 0 {
		return TextBlock(reply)
	}
	return BulletList(items)
}

// blockText joins the source lines of a leaf block with single spaces.
func blockText(n ast.Node, src []byte) string {
	lines := n.Lines()
	parts := make([]string, 0, lines.Len())
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		if s := strings.TrimSpace(string(seg.Value(src))); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}
