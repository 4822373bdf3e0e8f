package tools

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Arguments arrive as decoded JSON, so numbers are float64 and lists are
// []interface{}. Strings are accepted for numbers and booleans as well.

func stringArg(args map[string]interface{}, key string) (string, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return "", fmt.Errorf("%s parameter is required", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s parameter must be a string", key)
	}
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("%s parameter is required", key)
	}
	return s, nil
}

func optionalStringArg(args map[string]interface{}, key string) string {
	s, _ := args[key].(string)
	return strings.TrimSpace(s)
}

// intArg returns def when key is absent. Fractions are truncated.
func intArg(args map[string]interface{}, key string, def int) (int, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return def, nil
	}
	bad := fmt.Errorf("%s must be a positive integer", key)
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, bad
		}
		return int(n), nil
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, bad
		}
		return int(i), nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, bad
		}
		return i, nil
	default:
		return 0, bad
	}
}

// optionalBoolArg returns nil when key is absent
func optionalBoolArg(args map[string]interface{}, key string) (*bool, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return nil, nil
	}
	switch b := v.(type) {
	case bool:
		return &b, nil
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		if err != nil {
			return nil, fmt.Errorf("%s must be a boolean", key)
		}
		return &parsed, nil
	default:
		return nil, fmt.Errorf("%s must be a boolean", key)
	}
}

func stringSliceArg(args map[string]interface{}, key string) ([]string, error) {
	var out []string
	switch list := args[key].(type) {
	case []string:
		out = append(out, list...)
	case []interface{}:
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%s must be a list of strings", key)
			}
			out = append(out, s)
		}
	case nil:
	default:
		return nil, fmt.Errorf("%s must be a list of strings", key)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s parameter is required", key)
	}
	for i, s := range out {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, fmt.Errorf("%s must be a list of non-empty strings", key)
		}
		out[i] = s
	}
	return out, nil
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
