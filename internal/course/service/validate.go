package service

import (
	"crypto/rand"
	"strings"
	"time"
	"unicode/utf8"

	"conductor/internal/course/models"
	dErrors "conductor/pkg/domain-errors"
)

const (
	maxFieldLength = 100

	// joinCodeAlphabet leaves out 0/O and 1/I so codes read back unambiguously.
	joinCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// ParseDate accepts a calendar date (2006-01-02) or an RFC 3339 timestamp.
func ParseDate(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, dErrors.New(dErrors.CodeInvalidInput, field+" is required")
	}
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, dErrors.New(dErrors.CodeInvalidInput, field+" must be a valid date")
}

func requireText(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, field+" is required")
	}
	if utf8.RuneCountInString(value) > maxFieldLength {
		return "", dErrors.New(dErrors.CodeInvalidInput, field+" is too long")
	}
	return value, nil
}

func validateJoinCode(code string) (string, error) {
	code = models.NormalizeJoinCode(code)
	if len(code) != models.JoinCodeLength {
		return "", dErrors.New(dErrors.CodeInvalidInput, "join_code must be exactly 6 characters")
	}
	for _, r := range code {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return "", dErrors.New(dErrors.CodeInvalidInput, "join_code must be letters and digits")
		}
	}
	return code, nil
}

func generateJoinCode() (string, error) {
	buf := make([]byte, models.JoinCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = joinCodeAlphabet[int(b)%len(joinCodeAlphabet)]
	}
	return string(buf), nil
}

func validateDateRange(start, end time.Time) error {
	if end.Before(start) {
		return dErrors.New(dErrors.CodeInvalidInput, "end_date must not be before start_date")
	}
	return nil
}
