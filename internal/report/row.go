package report

import "fmt"

// LabelWidth is the fixed width labels are left-justified to
const LabelWidth = 16

// Row left-justifies label to LabelWidth and appends value directly.
// Labels longer than LabelWidth are not truncated.
func Row(label, value string) string {
	return fmt.Sprintf("%-*s%s", LabelWidth, label, value)
}
