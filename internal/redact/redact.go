// Package redact scrubs credentials, tokens, personal data and file system
// details from strings before they are written to logs. Client responses never
// carry raw error text, so redaction only guards the log stream.
package redact

import (
	"net/url"
	"regexp"
)

// Placeholders substituted for redacted fragments.
const (
	Placeholder      = "[REDACTED]"
	PathPlaceholder  = "[REDACTED_PATH]"
	JWTPlaceholder   = "[REDACTED_JWT]"
	TokenPlaceholder = "[REDACTED_TOKEN]"
	EmailPlaceholder = "[REDACTED_EMAIL]"
	StackPlaceholder = "[STACK_TRACE_REDACTED]"
)

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// rules are applied in order; earlier rules may hide text later rules would match.
var rules = []rule{
	{
		pattern:     regexp.MustCompile(`goroutine \d+ \[[^\]]*\]:[\s\S]*`),
		replacement: StackPlaceholder,
	},
	{
		// scheme://user:password@ in connection strings
		pattern:     regexp.MustCompile(`([a-zA-Z][a-zA-Z0-9+.-]*://)[^:/@\s]*:[^@\s]*@`),
		replacement: "${1}" + Placeholder + "@",
	},
	{
		pattern:     regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`),
		replacement: JWTPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`(?i)\bbearer\s+[A-Za-z0-9._~+/=-]+`),
		replacement: "Bearer " + TokenPlaceholder,
	},
	{
		pattern: regexp.MustCompile(
			`(?i)\b(password|passwd|pwd|secret_key|secret|api_key|apikey|x-api-key|token)(\s*[=:]\s*)[^\s&,;]+`,
		),
		replacement: "${1}${2}" + Placeholder,
	},
	{
		pattern:     regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
		replacement: EmailPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`(?:/[\w.-]+){2,}`),
		replacement: PathPlaceholder,
	},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.replacement)
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

// URL masks the password of a connection string such as a DATABASE_URL.
// Strings that do not parse as URLs are passed through String.
func URL(raw string) string {
	if raw == "" {
		return raw
	}

	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return String(raw)
	}
	return u.Redacted()
}
