// Package query turns raw list-endpoint query parameters into validated
// pagination, sorting, and filter values. Every filtered list endpoint
// parses through here so the validation rules cannot drift between call
// sites.
package query

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100

	dateLayout = "2006-01-02"
)

// InvalidParamError reports a query parameter that failed validation,
// with a field-level message suitable for the response body.
type InvalidParamError struct {
	Param   string
	Message string
}

func (e *InvalidParamError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %s", e.Param, e.Message)
}

// Pagination holds validated page/pageSize values.
type Pagination struct {
	Page     int
	PageSize int
}

// Offset returns the row offset for the current page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// TotalPages returns the page count for a total row count.
func (p Pagination) TotalPages(total int64) int {
	if total == 0 {
		return 0
	}
	return int((total + int64(p.PageSize) - 1) / int64(p.PageSize))
}

// ParsePagination validates page (>= 1, default 1) and pageSize
// (1..100, default 10). Unlike sorting, out-of-range values are
// rejected rather than clamped.
func ParsePagination(values url.Values) (Pagination, error) {
	p := Pagination{Page: DefaultPage, PageSize: DefaultPageSize}

	if raw := values.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return p, &InvalidParamError{Param: "page", Message: "must be an integer greater than or equal to 1"}
		}
		p.Page = n
	}

	if raw := values.Get("pageSize"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > MaxPageSize {
			return p, &InvalidParamError{Param: "pageSize", Message: fmt.Sprintf("must be an integer between 1 and %d", MaxPageSize)}
		}
		p.PageSize = n
	}

	return p, nil
}

// ParseSort resolves sortBy against the resource's allow-list. An
// unrecognized sortBy silently falls back to the default field; sortOrder
// is "asc" only when requested literally, anything else means "desc".
func ParseSort(values url.Values, allowed []string, defaultField string) (string, string) {
	sortBy := defaultField
	if raw := values.Get("sortBy"); raw != "" {
		for _, field := range allowed {
			if raw == field {
				sortBy = raw
				break
			}
		}
	}

	sortOrder := "desc"
	if values.Get("sortOrder") == "asc" {
		sortOrder = "asc"
	}

	return sortBy, sortOrder
}

// ParseDateRange parses startDate/endDate as YYYY-MM-DD in server-local
// time. endDate is inclusive: it is extended to 23:59:59.999 of that day.
// A non-empty unparsable value or startDate after endDate is rejected.
func ParseDateRange(values url.Values) (*time.Time, *time.Time, error) {
	var from, to *time.Time

	if raw := values.Get("startDate"); raw != "" {
		t, err := time.ParseInLocation(dateLayout, raw, time.Local)
		if err != nil {
			return nil, nil, &InvalidParamError{Param: "startDate", Message: "must be a date in YYYY-MM-DD format"}
		}
		from = &t
	}

	if raw := values.Get("endDate"); raw != "" {
		t, err := time.ParseInLocation(dateLayout, raw, time.Local)
		if err != nil {
			return nil, nil, &InvalidParamError{Param: "endDate", Message: "must be a date in YYYY-MM-DD format"}
		}
		endOfDay := time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
		to = &endOfDay
	}

	if from != nil && to != nil && from.After(*to) {
		return nil, nil, &InvalidParamError{Param: "startDate", Message: "must not be after endDate"}
	}

	return from, to, nil
}

// ParseSearchTerms trims the free-text parameter and splits it on
// whitespace. Each term later becomes an OR over name fields, and the
// terms are AND-ed together.
func ParseSearchTerms(values url.Values, param string) []string {
	raw := strings.TrimSpace(values.Get(param))
	if raw == "" {
		return nil
	}
	return strings.Fields(raw)
}

// ParseBool accepts only the literal strings "true" and "false".
// Absent means nil (no filter).
func ParseBool(values url.Values, param string) (*bool, error) {
	raw := values.Get(param)
	switch raw {
	case "":
		return nil, nil
	case "true":
		v := true
		return &v, nil
	case "false":
		v := false
		return &v, nil
	default:
		return nil, &InvalidParamError{Param: param, Message: `must be "true" or "false"`}
	}
}

// ParseEnum passes the value through only if it is a member of the legal
// set. Absent means "" (no filter). Every enum filter goes through here
// so no call site can skip validation.
func ParseEnum(values url.Values, param string, legal []string) (string, error) {
	raw := values.Get(param)
	if raw == "" {
		return "", nil
	}
	for _, v := range legal {
		if raw == v {
			return raw, nil
		}
	}
	return "", &InvalidParamError{Param: param, Message: fmt.Sprintf("must be one of: %s", strings.Join(legal, ", "))}
}
