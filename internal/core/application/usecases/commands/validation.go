package commands

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"takeout/internal/pkg/errs"
)

// MaxReasonLength bounds free-text reasons and remarks, matching the storage column.
const MaxReasonLength = 255

func requirePositive(param string, v int64) error {
	if v <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(param, fmt.Errorf("%d is not greater than 0", v))
	}
	return nil
}

func requireText(param, v string) error {
	if strings.TrimSpace(v) == "" {
		return errs.NewValueIsRequiredError(param)
	}
	return limitText(param, v)
}

func limitText(param, v string) error {
	if n := utf8.RuneCountInString(v); n > MaxReasonLength {
		return errs.NewValueIsOutOfRangeError(param+" length", n, 0, MaxReasonLength)
	}
	return nil
}
