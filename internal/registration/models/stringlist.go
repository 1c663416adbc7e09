package models

import "encoding/json"

// StringList is a JSON-lenient string slice for array-valued survey answers.
// Partial or hand-rolled client submissions occasionally send a scalar or an
// object where an array belongs; those decode to nil ("not answered") instead
// of failing the whole payload. Only a well-formed array of strings survives.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		*l = nil
		return nil
	}
	*l = values
	return nil
}
