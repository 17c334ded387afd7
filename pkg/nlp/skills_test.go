package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonical(t *testing.T) {
	cases := map[string]string{
		"Golang":           "go",
		"  GO ":            "go",
		"Node.js":          "node",
		"CI/CD":            "ci cd",
		"C#":               "c#",
		"csharp":           "c#",
		"C++":              "c++",
		"golang k8s ops":   "go kubernetes ops",
		"Machine Learning": "machine learning",
		"":                 "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Canonical(in), in)
	}
}

func TestHasSkill(t *testing.T) {
	skills := []string{"HTML", "Golang", "Postgres"}
	assert.True(t, HasSkill(skills, "go"))
	assert.True(t, HasSkill(skills, "PostgreSQL"))
	assert.True(t, HasSkill(skills, "html"))
	assert.False(t, HasSkill(skills, "java"))
	assert.False(t, HasSkill(skills, "  "))
}
