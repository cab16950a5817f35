package questionnaire

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// FormatError reports input that cannot be interpreted as a questionnaire,
// such as a missing header row or unresolvable columns. It is never retried.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return "questionnaire format: " + e.Reason
}

// Parser extracts a Dataset from a questionnaire CSV. The column names are
// the caller's choice; empty values mean the literal defaults. Column
// resolution order is: the explicit caller-supplied name first, then a
// case-insensitive match on the literal "Section"/"Question"/"Answer".
type Parser struct {
	SectionCol  string
	QuestionCol string
	AnswerCol   string
}

// ParseFile reads and parses the questionnaire CSV at path.
func (p *Parser) ParseFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening questionnaire: %w", err)
	}
	defer f.Close()
	return p.Parse(f)
}

// Parse reads the whole input, locates the header row past any leading
// metadata rows, and extracts every non-empty question/answer pair.
func (p *Parser) Parse(r io.Reader) (*Dataset, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading questionnaire: %w", err)
	}

	lines := splitLines(string(raw))
	headerIdx, info, _ := DetectHeader(lines, p.QuestionCol, p.AnswerCol)

	reader := csv.NewReader(strings.NewReader(strings.Join(lines[headerIdx:], "\n")))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, &FormatError{Reason: fmt.Sprintf("no header row found: %v", err)}
	}

	sectionIdx := resolveColumn(header, p.SectionCol, "Section")
	questionIdx := resolveColumn(header, p.QuestionCol, "Question")
	answerIdx := resolveColumn(header, p.AnswerCol, "Answer")
	if questionIdx < 0 || answerIdx < 0 {
		return nil, &FormatError{Reason: fmt.Sprintf(
			"question/answer columns not found in header %v", header)}
	}

	ds := &Dataset{ClientInfo: info}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading questionnaire row: %w", err)
		}

		question := strings.TrimSpace(field(row, questionIdx))
		answer := strings.TrimSpace(field(row, answerIdx))
		if question == "" || answer == "" {
			continue
		}

		section := strings.TrimSpace(field(row, sectionIdx))
		if section == "" {
			section = "General"
		}

		qa := QA{Section: section, Question: question, Answer: answer}
		ds.AllQA = append(ds.AllQA, qa)
		if isPersonaSection(section) {
			ds.PersonaQA = append(ds.PersonaQA, qa)
		}
	}

	return ds, nil
}

// Columns returns the header fields of the questionnaire, for callers that
// let a user pick the section/question/answer columns by name.
func (p *Parser) Columns(r io.Reader) ([]string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading questionnaire: %w", err)
	}

	lines := splitLines(string(raw))
	headerIdx, _, _ := DetectHeader(lines, p.QuestionCol, p.AnswerCol)
	if headerIdx >= len(lines) {
		return nil, &FormatError{Reason: "empty input"}
	}

	reader := csv.NewReader(strings.NewReader(lines[headerIdx]))
	header, err := reader.Read()
	if err != nil {
		return nil, &FormatError{Reason: fmt.Sprintf("no header row found: %v", err)}
	}
	for i, col := range header {
		header[i] = strings.TrimSpace(col)
	}
	return header, nil
}

func resolveColumn(header []string, want, fallback string) int {
	if want != "" {
		for i, col := range header {
			if strings.EqualFold(strings.TrimSpace(col), want) {
				return i
			}
		}
	}
	for i, col := range header {
		if strings.EqualFold(strings.TrimSpace(col), fallback) {
			return i
		}
	}
	return -1
}

func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	// A trailing newline is not an extra empty line.
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}
