// Package parameters handles AI configuration strings: a comma-separated list of keys with optional
// values, like "ab,max_depth=3,eval=patterns".
package parameters

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Params represent generic configuration parameters: key to value, where the value may be empty.
type Params map[string]string

// Value is the set of types a parameter can be parsed to.
type Value interface {
	bool | int | float32 | float64 | string
}

// NewFromConfigString create params from user's configuration string.
// Spaces around keys and values, and empty entries, are ignored.
//
// See GetParamOr and PopParamOr to parse values from this map.
func NewFromConfigString(config string) Params {
	params := make(Params)
	for _, part := range strings.Split(config, ",") {
		key, value, _ := strings.Cut(part, "=") // Only the first "=" splits, values may contain "=".
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		params[key] = strings.TrimSpace(value)
	}
	return params
}

// GetParamOr attempts to parse a parameter to the given type if the key is present, or returns the defaultValue
// if not.
//
// For bool types, a key without a value is interpreted as true. For other non-string types an empty value
// is taken as not set.
func GetParamOr[T Value](params Params, key string, defaultValue T) (T, error) {
	value, exists := params[key]
	if !exists {
		return defaultValue, nil
	}
	var parsed any
	var err error
	switch any(defaultValue).(type) {
	case string:
		parsed = value
	case bool:
		switch strings.ToLower(value) {
		case "", "true", "1":
			parsed = true
		case "false", "0":
			parsed = false
		default:
			err = errors.New("invalid bool")
		}
	case int:
		if value == "" {
			return defaultValue, nil
		}
		parsed, err = strconv.Atoi(value)
	case float32:
		if value == "" {
			return defaultValue, nil
		}
		var f float64
		f, err = strconv.ParseFloat(value, 32)
		parsed = float32(f)
	case float64:
		if value == "" {
			return defaultValue, nil
		}
		parsed, err = strconv.ParseFloat(value, 64)
	}
	if err != nil {
		return defaultValue, errors.Wrapf(err, "failed to parse configuration %s=%q as %T", key, value, defaultValue)
	}
	return parsed.(T), nil
}

// PopParamOr is like GetParamOr, but it also deletes from the params map the retrieved parameter.
func PopParamOr[T Value](params Params, key string, defaultValue T) (T, error) {
	value, err := GetParamOr(params, key, defaultValue)
	if err != nil {
		return value, err
	}
	delete(params, key)
	return value, nil
}

// PopOneOf removes from params the only key present among keys, and returns it.
// It returns an error if none or more than one of them is present.
func PopOneOf(params Params, keys ...string) (string, error) {
	var found []string
	for _, key := range keys {
		if _, exists := params[key]; exists {
			found = append(found, key)
		}
	}
	switch len(found) {
	case 0:
		return "", errors.Errorf("none of %q configured", keys)
	case 1:
		delete(params, found[0])
		return found[0], nil
	default:
		return "", errors.Errorf("only one of %q can be configured, got %q", keys, found)
	}
}

// CheckAllUsed returns an error listing the keys still in params, if any.
// Use it after popping all the known parameters.
func CheckAllUsed(params Params) error {
	if len(params) == 0 {
		return nil
	}
	return errors.Errorf("unknown parameters %q", slices.Sorted(maps.Keys(params)))
}
