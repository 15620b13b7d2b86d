// Package pathtmpl fills "{name}" placeholders in asset path templates.
package pathtmpl

import (
	"fmt"
	"regexp"

	"github.com/arcanaland/framesmith/internal/frameerr"
)

// BrokenPath is returned in place of any path that could not be resolved
const BrokenPath = "/img/error_path.png"

var placeholder = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Params are the named values available to a template
type Params map[string]string

// Resolve substitutes every placeholder in template. Params the template does
// not mention are ignored. On failure it returns BrokenPath together with
// frameerr.ErrMissingTemplate or frameerr.ErrUnresolvedPlaceholder.
func Resolve(template string, params Params) (string, error) {
	if template == "" {
		return BrokenPath, frameerr.ErrMissingTemplate
	}

	var missing []string
	out := placeholder.ReplaceAllStringFunc(template, func(m string) string {
		name := m[1 : len(m)-1]
		v, ok := params[name]
		if !ok {
			missing = append(missing, name)
			return m
		}
		return v
	})
	if len(missing) > 0 {
		return BrokenPath, fmt.Errorf("%w: %q in %q", frameerr.ErrUnresolvedPlaceholder, missing, template)
	}
	return out, nil
}

// Placeholders lists the placeholder names used by template, in order
func Placeholders(template string) []string {
	var names []string
	for _, m := range placeholder.FindAllStringSubmatch(template, -1) {
		names = append(names, m[1])
	}
	return names
}
