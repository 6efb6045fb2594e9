package domain

// FirstNonEmpty picks the first non-empty string, used when syllabus imports
// leave optional fields blank and a plan-level default should apply.
func FirstNonEmpty(candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return ""
}

// FloatOr dereferences the first non-nil pointer, falling back to def.
// Imported payloads model unset numeric fields as nil pointers.
func FloatOr(def float64, candidates ...*float64) float64 {
	for _, c := range candidates {
		if c != nil {
			return *c
		}
	}
	return def
}
