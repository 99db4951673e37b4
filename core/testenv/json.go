package testenv

import (
	"encoding/json"
	"strings"
)

// FromJSON unmarshals from JSON string.
// Error causes panic.
func FromJSON(j string, ptr any) {
	e := json.Unmarshal([]byte(j), ptr)
	if e != nil {
		panic(e)
	}
}

// FromJSONLines unmarshals each non-empty line of JSON text into a new element of *ptr.
// Error causes panic.
func FromJSONLines[T any](j string, ptr *[]T) {
	for _, line := range strings.Split(j, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		var item T
		FromJSON(line, &item)
		*ptr = append(*ptr, item)
	}
}
