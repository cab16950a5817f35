package generator

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/BerylCAtieno/persona-generator/internal/persona"
)

// personaEnvelope is the object form the prompt asks for. A missing
// "personas" key decodes to nil and is treated as zero personas.
type personaEnvelope struct {
	Personas []persona.Persona `json:"personas"`
}

// ExtractPersonas coerces raw model text into persona records. It strips
// markdown fences, trims leading prose, and appends closers for truncated
// output before parsing. Either a bare JSON array or an object with a
// "personas" list is accepted. A failure returns ErrParse so the caller
// can retry the whole generation.
func ExtractPersonas(raw string) ([]persona.Persona, error) {
	text := repairJSON(raw)
	if text == "" {
		return nil, fmt.Errorf("%w: no JSON object or array found", ErrParse)
	}

	switch text[0] {
	case '[':
		var personas []persona.Persona
		if err := json.Unmarshal([]byte(text), &personas); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
		return personas, nil
	case '{':
		var envelope personaEnvelope
		if err := json.Unmarshal([]byte(text), &envelope); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
		return envelope.Personas, nil
	default:
		return nil, fmt.Errorf("%w: unexpected top-level token %q", ErrParse, text[0])
	}
}

// repairJSON applies the tolerance pipeline: fence extraction, leading
// trim, and closer completion for truncated output.
func repairJSON(raw string) string {
	text := strings.TrimSpace(raw)

	// Prefer an explicit ```json fence; otherwise the first fenced block
	// that looks like it holds a persona payload.
	if idx := strings.Index(text, "```json"); idx >= 0 {
		text = text[idx+len("```json"):]
		if end := strings.Index(text, "```"); end >= 0 {
			text = text[:end]
		}
		text = strings.TrimSpace(text)
	} else if strings.Contains(text, "```") {
		for _, part := range strings.Split(text, "```") {
			if strings.Contains(part, "{") && strings.Contains(part, "[") {
				text = strings.TrimSpace(part)
				break
			}
		}
	}

	// Drop any prose before the payload.
	if !strings.HasPrefix(text, "{") && !strings.HasPrefix(text, "[") {
		brace := strings.IndexByte(text, '{')
		bracket := strings.IndexByte(text, '[')
		start := brace
		if start < 0 || (bracket >= 0 && bracket < start) {
			start = bracket
		}
		if start < 0 {
			return ""
		}
		text = text[start:]
	}

	// Truncated output: append the missing closers. This cannot fix a cut
	// inside a string literal, but recovers the common tail loss.
	if open := strings.Count(text, "{") - strings.Count(text, "}"); open > 0 {
		text += strings.Repeat("}", open)
	}
	if open := strings.Count(text, "[") - strings.Count(text, "]"); open > 0 {
		text += strings.Repeat("]", open)
	}

	return text
}

// objectPattern matches brace-delimited substrings with up to one level of
// nesting, used only by the salvage pass.
var objectPattern = regexp.MustCompile(`\{[^{}]*(?:\{[^{}]*\}[^{}]*)*\}`)

// SalvagePersonas is the last-resort parser for output that survived no
// amount of repair: it pulls every object-like substring out of the text,
// tries the longest first, and settles for an empty list rather than
// failing.
func SalvagePersonas(raw string) []persona.Persona {
	candidates := objectPattern.FindAllString(raw, -1)
	if len(candidates) == 0 {
		return nil
	}

	longest := candidates[0]
	for _, c := range candidates[1:] {
		if len(c) > len(longest) {
			longest = c
		}
	}

	personas, err := ExtractPersonas(longest)
	if err != nil {
		return nil
	}
	return personas
}
