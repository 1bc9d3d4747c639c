package reportcard

import (
	"regexp"
	"strings"
)

// gradePattern matches one "Subject: B+" style line. The subject is a short
// run of letters and spaces at the start of the line; the grade token is a
// letter grade with optional sign, an F, a percentage, or a bare number.
// Anchoring to line starts keeps prose sentences from producing phantom
// subjects.
var gradePattern = regexp.MustCompile(`(?m)^[ \t]*([A-Za-z][A-Za-z ]*?)[ \t]*(?::|[ \t])[ \t]*([A-D][+-]?|F|[0-9]{1,3}%|[0-9]{1,3})[ \t]*$`)

// ExtractGrades scans report card text for subject/grade pairs. When a
// subject appears more than once the last occurrence wins. No matches yields
// an empty, non-nil map.
func ExtractGrades(text string) map[string]string {
	grades := make(map[string]string)
	for _, m := range gradePattern.FindAllStringSubmatch(text, -1) {
		subject := strings.TrimSpace(m[1])
		if subject == "" {
			continue
		}
		grades[subject] = m[2]
	}
	return grades
}
