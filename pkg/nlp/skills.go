// Package nlp compares free-form skill names, so that "Golang", "go" and
// "GO" name the same skill.
package nlp

import "strings"

// aliasGroups lists spellings of one skill; the first entry is canonical.
var aliasGroups = [][]string{
	{"go", "golang"},
	{"javascript", "js", "ecmascript"},
	{"typescript", "ts"},
	{"postgresql", "postgres", "psql"},
	{"kubernetes", "k8s"},
	{"node", "nodejs", "node js"},
	{"react", "reactjs", "react js"},
	{"vue", "vuejs", "vue js"},
	{"mongodb", "mongo"},
	{"ci cd", "cicd"},
	{"rest", "rest api"},
	{"c#", "csharp", "c sharp"},
	{"c++", "cpp"},
}

var canonical = buildCanonical()

func buildCanonical() map[string]string {
	m := make(map[string]string)
	for _, group := range aliasGroups {
		for _, alias := range group {
			m[alias] = group[0]
		}
	}
	return m
}

// Canonical returns the canonical spelling of skill. Unknown multi-word
// skills are canonicalized word by word.
func Canonical(skill string) string {
	base := NormalizeText(skill)
	if c, ok := canonical[base]; ok {
		return c
	}
	parts := strings.Split(base, " ")
	if len(parts) < 2 {
		return base
	}
	for i, p := range parts {
		if c, ok := canonical[p]; ok {
			parts[i] = c
		}
	}
	return strings.Join(parts, " ")
}

// HasSkill reports whether skills contains query under any alias.
func HasSkill(skills []string, query string) bool {
	want := Canonical(query)
	if want == "" {
		return false
	}
	for _, s := range skills {
		if Canonical(s) == want {
			return true
		}
	}
	return false
}
