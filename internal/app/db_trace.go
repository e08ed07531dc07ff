package app

import (
	"regexp"
	"strconv"
	"strings"
)

const maxTracedQueryLength = 512

var (
	queryWhitespaceRegex = regexp.MustCompile(`\s+`)
	// Batch writers send hundreds of placeholder tuples per statement.
	valuesTupleRunRegex = regexp.MustCompile(`\(\$\d+(?:, ?\$\d+)*\)(?:, ?\(\$\d+(?:, ?\$\d+)*\))+`)
)

// formatDBQueryForTrace flattens whitespace and collapses multi-row VALUES
// lists to their first tuple plus a row count before truncating.
func formatDBQueryForTrace(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	normalized := queryWhitespaceRegex.ReplaceAllString(query, " ")
	normalized = valuesTupleRunRegex.ReplaceAllStringFunc(normalized, func(run string) string {
		first := run[:strings.Index(run, ")")+1]
		return first + " /* " + strconv.Itoa(strings.Count(run, "(")) + " rows */"
	})
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}
	return normalized[:maxTracedQueryLength] + "..."
}
