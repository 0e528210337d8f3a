package validation

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/templui/goalflow/internal/week"
)

// ValidateGoalID rejects ids that could never match a stored goal.
func ValidateGoalID(id string) error {
	if id == "" {
		return errors.New("invalid id")
	}
	if _, err := uuid.Parse(id); err != nil {
		return errors.New("invalid id")
	}
	return nil
}

// ValidateTitle validates a goal title
func ValidateTitle(title string) error {
	trimmed := strings.TrimSpace(title)

	if trimmed == "" {
		return errors.New("title is required")
	}

	if utf8.RuneCountInString(trimmed) > 200 {
		return errors.New("title is too long (max 200 characters)")
	}

	return nil
}

// ValidateWeekKey requires a well-formed ISO week key such as "2025-W35".
func ValidateWeekKey(weekKey string) error {
	if strings.TrimSpace(weekKey) == "" {
		return errors.New("weekKey is required")
	}
	if _, _, err := week.Parse(weekKey); err != nil {
		return errors.New("invalid weekKey")
	}
	return nil
}
