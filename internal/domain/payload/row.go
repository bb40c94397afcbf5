package payload

import (
	"strconv"
	"strings"
)

// RawRow is one untyped record from an external payload. Field names vary
// across two schema generations, so each logical field is resolved as the
// first non-empty of its known candidates, legacy name first.
type RawRow map[string]any

var (
	teamCodeFields = []string{"equipe", "team_code"}
	dateFields     = []string{"data", "date"}
	valueFields    = []string{"producao", "production"}
)

// TeamCode returns the external team code, tolerating numeric codes that the
// sender serialized as JSON numbers.
func (r RawRow) TeamCode() (string, bool) {
	for _, field := range teamCodeFields {
		if code := stringValue(r[field]); code != "" {
			return code, true
		}
	}

	return "", false
}

func (r RawRow) Date() (string, bool) {
	for _, field := range dateFields {
		if date := stringValue(r[field]); date != "" {
			return date, true
		}
	}

	return "", false
}

// ProductionValue returns the numeric production value, accepting JSON
// numbers and numeric strings. Anything else counts as zero.
func (r RawRow) ProductionValue() float64 {
	for _, field := range valueFields {
		value, ok := r[field]
		if !ok {
			continue
		}
		switch v := value.(type) {
		case float64:
			return v
		case int64:
			return float64(v)
		case string:
			if parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				return parsed
			}
		}
	}

	return 0
}

func stringValue(value any) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return ""
	}
}
