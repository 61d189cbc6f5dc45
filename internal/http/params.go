package http

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"pharmakpi/internal/core"
)

// ValidationError describes a query parameter the client got wrong. It maps
// to a 400 response.
type ValidationError struct {
	Param  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Param, e.Reason)
}

// Message is the client-facing error text.
func (e *ValidationError) Message() string {
	if e.Reason == "missing" {
		return "Missing " + e.Param
	}
	return fmt.Sprintf("Invalid %s: %s", e.Param, e.Reason)
}

func missingParam(name string) *ValidationError {
	return &ValidationError{Param: name, Reason: "missing"}
}

// requireYear parses a mandatory year parameter within the supported range.
func requireYear(query url.Values, name string) (int, error) {
	v := strings.TrimSpace(query.Get(name))
	if v == "" {
		return 0, missingParam(name)
	}
	return parseYearValue(name, v)
}

// optionalYear parses a year parameter, returning 0 when absent.
func optionalYear(query url.Values, name string) (int, error) {
	v := strings.TrimSpace(query.Get(name))
	if v == "" {
		return 0, nil
	}
	return parseYearValue(name, v)
}

func parseYearValue(name, v string) (int, error) {
	y, err := strconv.Atoi(v)
	if err != nil {
		return 0, &ValidationError{Param: name, Reason: "must be an integer"}
	}
	if err := core.ValidateYear(y); err != nil {
		return 0, &ValidationError{
			Param:  name,
			Reason: fmt.Sprintf("must be between %d and %d", core.YearMin, core.YearMax),
		}
	}
	return y, nil
}

// requireMonth parses a mandatory month parameter in [1,12].
func requireMonth(query url.Values, name string) (int, error) {
	v := strings.TrimSpace(query.Get(name))
	if v == "" {
		return 0, missingParam(name)
	}
	m, err := strconv.Atoi(v)
	if err != nil {
		return 0, &ValidationError{Param: name, Reason: "must be an integer"}
	}
	if err := core.ValidateMonth(m); err != nil {
		return 0, &ValidationError{Param: name, Reason: "must be between 1 and 12"}
	}
	return m, nil
}

// parseLimit reads the limit parameter, falling back to the default on
// absent or malformed input. Clamping to the supported range happens in the
// report builders.
func parseLimit(query url.Values) int {
	v := strings.TrimSpace(query.Get("limit"))
	if v == "" {
		return core.LimitDefault
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return core.LimitDefault
	}
	return n
}

// queryString returns a trimmed optional string parameter.
func queryString(query url.Values, name string) string {
	return strings.TrimSpace(query.Get(name))
}
