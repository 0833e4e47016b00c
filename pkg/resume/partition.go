package resume

import "strings"

// Partition splits text into the fixed sections. A line that, once trimmed,
// equals a section name starts that section; other non-blank lines are
// appended (trimmed) to the active one. Lines before the first heading are
// dropped. When a heading repeats, its later non-empty block replaces the
// earlier content.
func Partition(text string) Sections {
	var (
		s       Sections
		current string
		buf     []string
	)

	flush := func() {
		if current != "" && len(buf) > 0 {
			s.set(current, strings.Join(buf, "\n"))
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case IsSection(line):
			flush()
			current = line
			buf = buf[:0]
		case line != "" && current != "":
			buf = append(buf, line)
		}
	}
	flush()

	return s
}
