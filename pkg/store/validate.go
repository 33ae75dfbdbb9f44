package store

import "strings"

// dangerousKeywords are statement kinds that mutate the database. The
// dataset is read-only at question-answering time; the resolver may
// hand back a well-formed mutating statement and this guard is where it
// gets rejected.
var dangerousKeywords = []string{"DROP", "DELETE", "UPDATE", "INSERT", "ALTER", "CREATE"}

// ValidateQuery reports whether a query is safe to execute. Any
// occurrence of a mutating keyword anywhere in the statement rejects
// it; false positives (e.g. a column literally named "created") are an
// accepted cost of the blunt check.
func ValidateQuery(query string) bool {
	upper := strings.ToUpper(query)
	for _, kw := range dangerousKeywords {
		if strings.Contains(upper, kw) {
			return false
		}
	}
	return true
}
