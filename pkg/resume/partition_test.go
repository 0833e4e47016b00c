package resume

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartition(t *testing.T) {
	tests := []struct {
		name string
		text string
		want map[string]string
	}{
		{
			name: "no headings",
			text: "Jane Doe\nSenior Engineer\nLikes Go",
			want: map[string]string{},
		},
		{
			name: "empty input",
			text: "",
			want: map[string]string{},
		},
		{
			name: "profile and skills",
			text: "Professional Profile\nSenior Engineer, 10 years\nSkills\nPython, Go",
			want: map[string]string{
				ProfessionalProfile: "Senior Engineer, 10 years",
				Skills:              "Python, Go",
			},
		},
		{
			name: "preamble dropped and lines trimmed",
			text: "Here is your resume:\n\n  Education  \n  BSc Physics \n\n  MSc CS\n",
			want: map[string]string{
				Education: "BSc Physics\nMSc CS",
			},
		},
		{
			name: "unknown heading is body",
			text: "Recent Experience\nAcme Corp\nProjects\nBuilt a compiler",
			want: map[string]string{
				RecentExperience: "Acme Corp\nProjects\nBuilt a compiler",
			},
		},
		{
			name: "heading match is exact",
			text: "Skills:\nGo\nskills\nRust",
			want: map[string]string{},
		},
		{
			name: "repeated heading replaces earlier block",
			text: "Skills\nGo\nEducation\nBSc\nSkills\nRust",
			want: map[string]string{
				Skills:    "Rust",
				Education: "BSc",
			},
		},
		{
			name: "repeated heading with empty body keeps earlier block",
			text: "Skills\nGo\nSkills\n",
			want: map[string]string{
				Skills: "Go",
			},
		},
		{
			name: "duplicates and order preserved",
			text: "Skills\nGo\nGo\nC\nA",
			want: map[string]string{
				Skills: "Go\nGo\nC\nA",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Partition(tt.text)
			for _, name := range Names() {
				assert.Equal(t, tt.want[name], got.Get(name), name)
			}
		})
	}
}

func TestPartitionNoHeadingsIsEmpty(t *testing.T) {
	for _, text := range []string{"", "\n\n", "a\nb\nc", "PROFESSIONAL PROFILE\nx", "Experience\nAcme"} {
		assert.True(t, Partition(text).Empty(), "%q", text)
	}
}

func TestSectionsEachCanonicalOrder(t *testing.T) {
	s := Partition("Skills\nGo\nProfessional Profile\nLead")

	var names []string
	err := s.Each(func(name, _ string) error {
		names = append(names, name)
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, []string{ProfessionalProfile, RecentExperience, Education, Skills}, names)
	assert.Equal(t, "", s.Get("Hobbies"))
}
