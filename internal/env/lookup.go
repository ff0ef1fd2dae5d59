package env

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// String returns the trimmed value of key and whether it is set to something non-empty.
func String(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	return v, v != ""
}

// Float parses key as a float64. ok is false when the variable is unset or empty.
func Float(key string) (v float64, ok bool, err error) {
	s, ok := String(key)
	if !ok {
		return 0, false, nil
	}
	v, err = strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, true, fmt.Errorf("%s: %w", key, err)
	}
	return v, true, nil
}

// Int parses key as an int. ok is false when the variable is unset or empty.
func Int(key string) (v int, ok bool, err error) {
	s, ok := String(key)
	if !ok {
		return 0, false, nil
	}
	v, err = strconv.Atoi(s)
	if err != nil {
		return 0, true, fmt.Errorf("%s: %w", key, err)
	}
	return v, true, nil
}
