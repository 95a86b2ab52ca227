package domain

import (
	"bytes"
	"encoding/json"
)

// Business is a single listing. Details stays nil when detail pages are not fetched.
type Business struct {
	Name    string  `json:"name"`
	URL     string  `json:"url"`
	Details Details `json:"details,omitempty"`
}

// Details holds the key/value attribute table of a business page.
// A repeated key overwrites the earlier value.
type Details map[string]string

// String renders the details as a JSON object with sorted keys, or the empty
// string when there is nothing to render.
func (d Details) String() string {
	if len(d) == 0 {
		return ""
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(map[string]string(d)); err != nil {
		return ""
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}
