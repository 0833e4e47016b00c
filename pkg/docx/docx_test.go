package docx

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gomutex/godocx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	d := New(Defaults{})
	assert.Equal(t, Defaults{Font: "Calibri", Size: 11}, d.Defaults())

	d = New(Defaults{Font: "Arial", Size: 10})
	assert.Equal(t, Defaults{Font: "Arial", Size: 10}, d.Defaults())
}

func TestDocumentOrder(t *testing.T) {
	d := New(Defaults{})
	d.AddHeading("Skills")
	d.AddBullet("Go")
	d.AddText("Summary")
	d.AddSpacer()

	got := d.Paragraphs()
	require.Len(t, got, 4)
	assert.Equal(t, Paragraph{Text: "Skills", Bold: true, Size: HeadingSize}, got[0])
	assert.Equal(t, Paragraph{Text: "Go", Style: StyleListBullet}, got[1])
	assert.Equal(t, Paragraph{Text: "Summary"}, got[2])
	assert.Equal(t, Paragraph{}, got[3])

	// Paragraphs returns a copy
	got[0].Text = "changed"
	assert.Equal(t, "Skills", d.Paragraphs()[0].Text)
}

func TestSaveAndReadBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.docx")

	d := New(Defaults{})
	d.AddHeading("Experience")
	d.AddBullet("Built things")
	d.AddSpacer()
	d.AddText("Jane Doe")
	require.NoError(t, d.Save(path))

	text, err := ReadText(path)
	require.NoError(t, err)

	var last int
	for _, want := range []string{"Experience", "Built things", "Jane Doe"} {
		idx := strings.Index(text[last:], want)
		require.GreaterOrEqual(t, idx, 0, "missing %q in %q", want, text)
		last += idx + len(want)
	}
}

func TestSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.docx")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))

	d := New(Defaults{})
	d.AddText("fresh")
	require.NoError(t, d.Save(path))

	text, err := ReadText(path)
	require.NoError(t, err)
	assert.Contains(t, text, "fresh")
}

func TestSaveMarkup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.docx")

	d := New(Defaults{})
	d.AddHeading("Skills")
	d.AddBullet("Go")
	d.AddSpacer()
	d.AddText("Summary")
	require.NoError(t, d.Save(path))

	xml := documentXML(t, path)
	tests := []struct {
		name string
		want string
	}{
		{"bullet style id", `<w:pStyle w:val="ListBullet">`},
		{"heading bold", `<w:b>`},
		{"heading size in half points", `<w:sz w:val="28">`},
		{"body size in half points", `<w:sz w:val="22">`},
		{"ascii font", `w:ascii="Calibri"`},
		{"hAnsi font", `w:hAnsi="Calibri"`},
		{"spacer without runs", `<w:p></w:p>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, xml, tt.want)
		})
	}
	assert.NotContains(t, xml, `w:val="List Bullet"`)
	assert.Equal(t, 3, strings.Count(xml, "<w:r>"), "one run per non-empty paragraph")
	assert.Equal(t, 3, strings.Count(xml, `w:ascii="Calibri"`))
}

func TestSaveCustomFont(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.docx")

	d := New(Defaults{Font: "Arial", Size: 10})
	d.AddText("Jane Doe")
	require.NoError(t, d.Save(path))

	xml := documentXML(t, path)
	assert.Contains(t, xml, `w:ascii="Arial"`)
	assert.Contains(t, xml, `<w:sz w:val="20">`)
	assert.NotContains(t, xml, "Calibri")
}

func TestReadTextParagraphs(t *testing.T) {
	rd, err := godocx.NewDocument()
	require.NoError(t, err)
	rd.AddParagraph("Jane").AddText(" Doe")
	rd.AddEmptyParagraph()
	rd.AddParagraph("   ")
	p := rd.AddParagraph("Go")
	p.AddRun().AddBreak(nil)
	p.AddText("Python")

	path := filepath.Join(t.TempDir(), "in.docx")
	require.NoError(t, rd.SaveTo(path))

	text, err := ReadText(path)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nGo Python", text)
}

func TestReadTextErrors(t *testing.T) {
	notZip := filepath.Join(t.TempDir(), "plain.docx")
	require.NoError(t, os.WriteFile(notZip, []byte("not a zip"), 0o644))

	empty := filepath.Join(t.TempDir(), "empty.docx")
	f, err := os.Create(empty)
	require.NoError(t, err)
	require.NoError(t, zip.NewWriter(f).Close())
	require.NoError(t, f.Close())

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(t.TempDir(), "missing.docx")},
		{"not a zip", notZip},
		{"empty package", empty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadText(tt.path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.path)
		})
	}
}

// documentXML returns the raw word/document.xml part of the package at path.
func documentXML(t *testing.T, path string) string {
	t.Helper()
	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(data)
	}
	t.Fatalf("%s has no word/document.xml", path)
	return ""
}
