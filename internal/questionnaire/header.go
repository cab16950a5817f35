package questionnaire

import "strings"

// DetectHeader scans raw file lines for the row naming the question and
// answer columns, tolerating arbitrary key,value metadata rows before it.
// It returns the zero-based index of the header line, the metadata
// harvested from the lines above it, and whether a header was found at
// all. Callers that get ok=false fall back to reading from line 0.
//
// A line qualifies only when, split on commas, at least one trimmed field
// equals the question column name exactly and another equals the answer
// column name (case-insensitive). The containment pre-check alone would
// false-positive on words like "QUESTIONNAIRE".
func DetectHeader(lines []string, questionCol, answerCol string) (int, ClientInfo, bool) {
	if questionCol == "" {
		questionCol = "Question"
	}
	if answerCol == "" {
		answerCol = "Answer"
	}
	qUpper := strings.ToUpper(questionCol)
	aUpper := strings.ToUpper(answerCol)

	info := ClientInfo{}
	for i, line := range lines {
		upper := strings.ToUpper(line)
		if (strings.Contains(upper, qUpper) || strings.Contains(upper, "QUESTION")) &&
			(strings.Contains(upper, aUpper) || strings.Contains(upper, "ANSWER")) &&
			strings.Contains(line, ",") {
			fields := strings.Split(line, ",")
			hasQuestion := false
			hasAnswer := false
			for _, f := range fields {
				f = strings.ToUpper(strings.TrimSpace(f))
				if f == "QUESTION" || f == qUpper {
					hasQuestion = true
				}
				if f == "ANSWER" || f == aUpper {
					hasAnswer = true
				}
			}
			if hasQuestion && hasAnswer {
				return i, info, true
			}
		}

		// Anything above the header that looks like key,value is metadata.
		if strings.Contains(line, ",") {
			parts := strings.SplitN(strings.TrimSpace(line), ",", 2)
			if len(parts) == 2 {
				// Last write wins on duplicate keys.
				info[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
			}
		}
	}

	return 0, info, false
}
