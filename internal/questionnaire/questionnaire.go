package questionnaire

import "strings"

// ClientInfo holds the free-text metadata rows found before the header
// (commonly "Client Name" and "Product Name"). Keys are whatever the
// source document contained.
type ClientInfo map[string]string

func (ci ClientInfo) Get(key string) string {
	if ci == nil {
		return ""
	}
	return ci[key]
}

// ClientName returns the "Client Name" entry, or "Unknown" when absent.
func (ci ClientInfo) ClientName() string {
	if v := ci.Get("Client Name"); v != "" {
		return v
	}
	return "Unknown"
}

// ProductName returns the "Product Name" entry, or "Unknown" when absent.
func (ci ClientInfo) ProductName() string {
	if v := ci.Get("Product Name"); v != "" {
		return v
	}
	return "Unknown"
}

// QA is a single question/answer pair with its section label.
type QA struct {
	Section  string `json:"section"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Dataset is the parsed questionnaire. PersonaQA is a filtered view of
// AllQA, never an independent set of records.
type Dataset struct {
	ClientInfo ClientInfo `json:"client_info"`
	AllQA      []QA       `json:"all_qa"`
	PersonaQA  []QA       `json:"persona_qa"`
}

var personaKeywords = []string{"persona", "audience", "customer"}

// isPersonaSection reports whether a section label is persona-relevant.
func isPersonaSection(section string) bool {
	lower := strings.ToLower(section)
	for _, kw := range personaKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
