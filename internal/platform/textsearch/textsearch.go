package textsearch

import (
	"strings"

	"golang.org/x/text/cases"
)

// Contains dice si needle aparece en haystack sin distinguir mayúsculas
// (con plegado Unicode, así "MUÑOZ" encuentra "muñoz").
func Contains(haystack, needle string) bool {
	needle = strings.TrimSpace(needle)
	if needle == "" {
		return true
	}
	fold := cases.Fold()
	return strings.Contains(fold.String(haystack), fold.String(needle))
}

// AnyContains es true si algún campo contiene la consulta.
func AnyContains(fields []string, needle string) bool {
	if strings.TrimSpace(needle) == "" {
		return true
	}
	for _, f := range fields {
		if Contains(f, needle) {
			return true
		}
	}
	return false
}
