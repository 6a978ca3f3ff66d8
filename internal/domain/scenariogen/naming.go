package scenariogen

import "strings"

var conditionReplacer = strings.NewReplacer(".", "_", " ", "_")

// SanitizeCondition turns condition source text into a test name fragment.
// Only dots and spaces are rewritten; the scheme is a naming convention, not
// an identifier guarantee, so conditions with operator characters produce
// names the formatter will reject and the emitter will skip.
func SanitizeCondition(condition string) string {
	return conditionReplacer.Replace(condition)
}
