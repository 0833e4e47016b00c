// Package resume turns the workflow's aggregate text into a formatted Word
// document: Partition splits it into the four fixed sections, Formatter
// rewrites each with an LLM, and Writer lays the result out.
package resume

// Section names in canonical document order
const (
	ProfessionalProfile = "Professional Profile"
	RecentExperience    = "Recent Experience"
	Education           = "Education"
	Skills              = "Skills"
)

var order = [...]string{ProfessionalProfile, RecentExperience, Education, Skills}

// Names returns the section names in canonical order.
func Names() []string {
	out := make([]string, len(order))
	copy(out, order[:])
	return out
}

// IsSection reports whether name is exactly one of the fixed section names.
func IsSection(name string) bool {
	return index(name) >= 0
}

func index(name string) int {
	for i, n := range order {
		if n == name {
			return i
		}
	}
	return -1
}

// Sections holds the raw content of each fixed section. The zero value has
// every section empty.
type Sections struct {
	content [len(order)]string
}

// Get returns the content of the named section, "" for unknown names.
func (s Sections) Get(name string) string {
	if i := index(name); i >= 0 {
		return s.content[i]
	}
	return ""
}

func (s *Sections) set(name, content string) {
	if i := index(name); i >= 0 {
		s.content[i] = content
	}
}

// Each calls fn for every section in canonical order, empty ones included,
// stopping at the first error.
func (s Sections) Each(fn func(name, content string) error) error {
	for i, name := range order {
		if err := fn(name, s.content[i]); err != nil {
			return err
		}
	}
	return nil
}

// Empty reports whether no section has content.
func (s Sections) Empty() bool {
	for _, c := range s.content {
		if c != "" {
			return false
		}
	}
	return true
}
