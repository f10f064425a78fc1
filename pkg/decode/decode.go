// Package decode converts between loosely typed maps and typed structs
// through their JSON representation.
package decode

import "encoding/json"

// FromMap decodes data into T using T's json tags.
func FromMap[T any](data map[string]any) (T, error) {
	var result T
	if data == nil {
		data = map[string]any{}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return result, err
	}
	err = json.Unmarshal(b, &result)
	return result, err
}
