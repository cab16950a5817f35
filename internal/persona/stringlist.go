package persona

import (
	"encoding/json"
	"fmt"
	"strings"
)

// StringList is a field the model is asked to return as a JSON array of
// strings but sometimes returns as a plain string. Both forms decode; a
// scalar becomes a single-element list. All downstream flattening goes
// through Join so the ambiguity stays contained here.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err == nil {
		*l = items
		return nil
	}

	var scalar string
	if err := json.Unmarshal(data, &scalar); err == nil {
		if scalar == "" {
			*l = nil
		} else {
			*l = StringList{scalar}
		}
		return nil
	}

	return fmt.Errorf("string list: cannot decode %s", data)
}

// Join renders the list as a single "; "-separated string for CSV export.
func (l StringList) Join() string {
	return strings.Join(l, "; ")
}
