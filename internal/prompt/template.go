package prompt

import (
	"fmt"
	"regexp"
	"strings"
)

var placeholder = regexp.MustCompile(`\{\{(\w+)\}\}`)

// Template is a text with {{name}} placeholders.
type Template string

// Render substitutes every placeholder. All placeholders must have a value.
func (t Template) Render(vars map[string]string) (string, error) {
	if missing := t.missing(vars); len(missing) > 0 {
		return "", fmt.Errorf("missing template variables: %s", strings.Join(missing, ", "))
	}

	return placeholder.ReplaceAllStringFunc(string(t), func(m string) string {
		return vars[m[2:len(m)-2]]
	}), nil
}

// MustRender is Render for templates fixed at compile time.
func (t Template) MustRender(vars map[string]string) string {
	out, err := t.Render(vars)
	if err != nil {
		panic(err)
	}
	return out
}

// Variables lists placeholder names in order of first appearance.
func (t Template) Variables() []string {
	seen := make(map[string]bool)
	var names []string
	for _, m := range placeholder.FindAllStringSubmatch(string(t), -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}

func (t Template) missing(vars map[string]string) []string {
	var out []string
	for _, name := range t.Variables() {
		if _, ok := vars[name]; !ok {
			out = append(out, name)
		}
	}
	return out
}
