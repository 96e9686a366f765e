package domain

import (
	"encoding/json"
	"reflect"
	"strings"
)

// Fields is a set of client-supplied document keys that an entity stores
// as-is next to its declared fields.
type Fields map[string]interface{}

// ValidateExtraFields checks that every key can be stored as a top-level
// document field without shadowing a declared field.
func ValidateExtraFields(extra Fields, declared map[string]struct{}) error {
	for key := range extra {
		if key == "" || strings.HasPrefix(key, "$") || strings.Contains(key, ".") {
			return NewValidationError(key, "is not a valid field name", nil)
		}
		if _, ok := declared[key]; ok {
			return NewValidationError(key, "cannot be set", nil)
		}
	}
	return nil
}

// SplitFields decodes a JSON object into known and returns the keys that no
// reserved set names. Reserved keys known does not decode are dropped. The
// returned map is nil when there are no extra keys.
func SplitFields(data []byte, known interface{}, reserved ...map[string]struct{}) (Fields, error) {
	if err := json.Unmarshal(data, known); err != nil {
		return nil, err
	}

	var all map[string]interface{}
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}

	var extra Fields
	for key, value := range all {
		if isReserved(key, reserved) {
			continue
		}
		if extra == nil {
			extra = make(Fields)
		}
		extra[key] = value
	}
	return extra, nil
}

func isReserved(key string, sets []map[string]struct{}) bool {
	for _, set := range sets {
		if _, ok := set[key]; ok {
			return true
		}
	}
	return false
}

// JSONKeys returns the JSON names of the fields of struct type t.
func JSONKeys(t reflect.Type) map[string]struct{} {
	keys := make(map[string]struct{}, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name != "" && name != "-" {
			keys[name] = struct{}{}
		}
	}
	return keys
}

// marshalWithExtra encodes known and adds the extra keys it does not declare.
func marshalWithExtra(known interface{}, extra Fields, declared map[string]struct{}) ([]byte, error) {
	data, err := json.Marshal(known)
	if err != nil || len(extra) == 0 {
		return data, err
	}

	merged := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &merged); err != nil {
		return nil, err
	}
	for key, value := range extra {
		if _, ok := declared[key]; ok {
			continue
		}
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		merged[key] = raw
	}
	return json.Marshal(merged)
}
