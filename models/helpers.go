package models

import "strings"

func nullable(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// dateValue trims timestamps the driver may return for date columns.
func dateValue(s *string) string {
	v := value(s)
	if len(v) > len(DateLayout) {
		return v[:len(DateLayout)]
	}
	return v
}
