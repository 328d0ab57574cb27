// Package redact strips sensitive fragments from error text before it is
// logged. Storage and transport errors can carry connection strings, SQL and
// filesystem paths; none of these belong in logs or client responses.
package redact

import "regexp"

// Placeholders substituted for redacted fragments.
const (
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedSQLPlaceholder        = "[REDACTED_SQL]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedStackPlaceholder      = "[STACK_TRACE_REDACTED]"
)

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// Rules run in order; later rules see the output of earlier ones.
var rules = []rule{
	// Stack traces swallow the rest of the message.
	{regexp.MustCompile(`(?s)(?:panic: |goroutine \d+ \[).*`), RedactedStackPlaceholder},
	// userinfo in URLs, e.g. postgres://app:secret@db:5432/tasks
	{regexp.MustCompile(`(?i)\b([a-z][a-z0-9+.-]*)://[^/@\s]+@`), "${1}://" + RedactedCredentialPlaceholder + "@"},
	// key=value DSN passwords, e.g. password=secret
	{regexp.MustCompile(`(?i)\b(password|passwd|pwd)=\S+`), "${1}=" + RedactedCredentialPlaceholder},
	// SQL statements, matched case-sensitively so ordinary messages such as
	// "failed to update task" are left alone.
	{regexp.MustCompile(`\b(?:SELECT|INSERT INTO|UPDATE|DELETE FROM|LOCK TABLE)\s[^;\n]*`), RedactedSQLPlaceholder},
	// Absolute filesystem paths. URL paths are kept because they follow a host.
	{regexp.MustCompile(`(^|[\s"'=(])(?:/[\w.-]+){2,}`), "${1}" + RedactedPathPlaceholder},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}
	for _, r := range rules {
		input = r.pattern.ReplaceAllString(input, r.replacement)
	}
	return input
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
