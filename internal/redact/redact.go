// Package redact strips sensitive fragments (connection strings, file paths,
// SQL, stack traces and database driver detail) from strings before they are
// logged or returned in error responses.
package redact

import "regexp"

// Placeholders substituted for redacted fragments.
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedDSNPlaceholder        = "[REDACTED_DSN]"
	RedactedSQLPlaceholder        = "[REDACTED_SQL]"
	RedactedDBErrorPlaceholder    = "[REDACTED_DB_ERROR]"
	RedactedStackPlaceholder      = "[STACK_TRACE_REDACTED]"
)

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// rules are applied in order; earlier rules see the unmodified input.
var rules = []rule{
	{
		regexp.MustCompile(`(?:goroutine \d+|panic:)[\s\S]*?(\n\t.*)+`),
		RedactedStackPlaceholder,
	},
	// SQLite URI DSNs, e.g. file:flashmath?mode=memory&cache=shared
	{
		regexp.MustCompile(`(?i)\bfile:[^\s?]+(\?[^\s]*)?`),
		RedactedDSNPlaceholder,
	},
	{
		regexp.MustCompile(`(?i)[a-z][a-z0-9+.-]*://[^@\s]+@`),
		RedactedCredentialPlaceholder,
	},
	{
		regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]?['"]?)[^'"&\s]{3,}`),
		RedactedCredentialPlaceholder,
	},
	{
		regexp.MustCompile(`(/[\w.-]+){2,}`),
		RedactedPathPlaceholder,
	},
	{
		regexp.MustCompile(`[A-Za-z]:\\[^\\]+(\\[^\\]+)+`),
		RedactedPathPlaceholder,
	},
	{
		regexp.MustCompile(
			`(?i)(SELECT|INSERT|UPDATE|DELETE|CREATE|ALTER|DROP)[\s\w,*()]+(?:FROM|INTO|SET|TABLE|INDEX|VIEW)(?:[\s\w,*()='"]+)?`,
		),
		RedactedSQLPlaceholder,
	},
	{
		regexp.MustCompile(
			`(?i)(?:no such (?:table|column)|(?:UNIQUE |NOT NULL |CHECK |FOREIGN KEY )?constraint failed|SQL logic error)(?::\s*[\w.]+)?`,
		),
		RedactedDBErrorPlaceholder,
	},
	{
		regexp.MustCompile(`(?:at )?line ?\d+`),
		"[REDACTED_LINE_NUMBER]",
	},
	{
		regexp.MustCompile(`(?i)(?:no such file|file not found|can't open|cannot open)`),
		"[REDACTED_FILE_ERROR]",
	},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
