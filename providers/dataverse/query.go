package dataverse

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// QueryOptions are the OData system query options supported by the portal.
type QueryOptions struct {
	Select  []string
	Filter  string
	OrderBy []string
	Top     int
	Expand  []string
	Count   bool
}

// Encode renders the options as a raw query string. Options are emitted in
// a fixed order ($select, $filter, $orderby, $top, $expand, $count) and
// spaces are encoded as %20.
func (q *QueryOptions) Encode() string {
	if q == nil {
		return ""
	}

	var parts []string
	add := func(key, value string) {
		parts = append(parts, key+"="+escapeQueryValue(value))
	}

	if len(q.Select) > 0 {
		add("$select", strings.Join(q.Select, ","))
	}
	if q.Filter != "" {
		add("$filter", q.Filter)
	}
	if len(q.OrderBy) > 0 {
		add("$orderby", strings.Join(q.OrderBy, ","))
	}
	if q.Top > 0 {
		add("$top", strconv.Itoa(q.Top))
	}
	if len(q.Expand) > 0 {
		add("$expand", strings.Join(q.Expand, ","))
	}
	if q.Count {
		add("$count", "true")
	}

	return strings.Join(parts, "&")
}

func escapeQueryValue(v string) string {
	escaped := url.QueryEscape(v)
	escaped = strings.ReplaceAll(escaped, "+", "%20")
	// keep the list separator readable
	return strings.ReplaceAll(escaped, "%2C", ",")
}

// EscapeODataString quotes a value for use as a string literal in $filter.
func EscapeODataString(v string) string {
	return "'" + strings.ReplaceAll(v, "'", "''") + "'"
}

// EntityPath addresses a single row, e.g. contacts(00000000-...).
func EntityPath(entitySet, id string) string {
	return fmt.Sprintf("%s(%s)", entitySet, id)
}

// entityIDFromHeader extracts the key from an OData-EntityId header value.
func entityIDFromHeader(v string) string {
	open := strings.LastIndex(v, "(")
	end := strings.LastIndex(v, ")")
	if open == -1 || end <= open {
		return ""
	}
	return v[open+1 : end]
}
