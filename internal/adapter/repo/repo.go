// Package repo implements the persistence gateway on MySQL with
// hand-written SQL. Every statement runs through the caller's context so
// cancellation aborts in-flight work; each mutating call is one transaction.
package repo

import "strings"

// placeholders renders "?,?,?" for IN clauses.
func placeholders(n int) string {
	if n == 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
