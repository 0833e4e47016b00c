package resume

import "context"

// Render partitions text, writes every non-empty section in canonical order
// and saves the document. Nothing is saved if any section fails.
func Render(ctx context.Context, w *Writer, text string) error {
	sections := Partition(text)
	err := sections.Each(func(name, content string) error {
		if content == "" {
			return nil
		}
		return w.WriteSection(ctx, name, content)
	})
	if err != nil {
		return err
	}
	return w.Save()
}
