package rewrite

import (
	"regexp"
	"strings"
)

// 🔄 Rule is one ordered step of the fix pipeline
type Rule struct {
	// Name identifies the rule in reports and logs
	Name string

	// Precondition is a literal substring that must appear in the text
	// before the rule is considered; empty means always run
	Precondition string

	// Pattern matches the spans to rewrite
	Pattern *regexp.Regexp

	// Template is a regexp expansion template used when Replace is nil
	Template string

	// Replace receives the full matched span and returns its rewrite;
	// takes precedence over Template
	Replace func(match string) string

	// Prepare optionally adjusts the whole text before the rewrite runs
	// (used for one-time guarded insertions)
	Prepare func(text string) string
}

// Query parameter interface injected ahead of the first exported
// async function when request.query is accessed. The marker doubles as
// the insert-once guard: if the declaration is already present, the
// injection is skipped.
const (
	queryInterfaceMarker = "interface QueryParams"
	queryInterfaceDecl   = "\ninterface QueryParams {\n    [key: string]: string | undefined;\n}\n\n"
	queryAnchor          = "export async function"
)

// 📝 injectQueryInterface inserts the QueryParams declaration before the
// first exported async function, unless the declaration already exists
// or no anchor is present (a file with no exported handler is left as-is)
func injectQueryInterface(text string) string {
	if strings.Contains(text, queryInterfaceMarker) {
		return text
	}
	idx := strings.Index(text, queryAnchor)
	if idx < 0 {
		return text
	}
	return text[:idx] + queryInterfaceDecl + text[idx:]
}

// rewriteCaughtError rewrites error.message inside a matched
// catch (error) { ... } span
func rewriteCaughtError(match string) string {
	return strings.ReplaceAll(match, "error.message", "(error as Error).message")
}

// 🎯 DefaultRules returns the fix pipeline in application order. Order
// matters: the query rule may insert text that later rules scan over,
// and each rule consumes the output of the previous one.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:     "params-cast",
			Pattern:  regexp.MustCompile(`request\.params\.(\w+)`),
			Template: `(request.params as { ${1}: string }).${1}`,
		},
		{
			Name:         "query-cast",
			Precondition: "request.query",
			Prepare:      injectQueryInterface,
			Pattern:      regexp.MustCompile(`request\.query\.(\w+)`),
			Template:     `(request.query as QueryParams).${1}`,
		},
		{
			Name:     "body-cast",
			Pattern:  regexp.MustCompile(`request\.body\.(\w+)`),
			Template: `(request.body as Record<string, unknown>).${1}`,
		},
		{
			// Non-greedy span matching, not brace counting: a catch body
			// that itself contains braces before the first error.message
			// can be mis-scoped. Known limitation.
			Name:    "caught-error-cast",
			Pattern: regexp.MustCompile(`(?s)catch \(error\) \{.*?error\.message`),
			Replace: rewriteCaughtError,
		},
	}
}

// apply runs the rule over text and returns the result plus the number
// of pattern matches rewritten
func (r Rule) apply(text string) (string, int) {
	if r.Precondition != "" && !strings.Contains(text, r.Precondition) {
		return text, 0
	}

	if r.Prepare != nil {
		text = r.Prepare(text)
	}

	count := len(r.Pattern.FindAllStringIndex(text, -1))
	if count == 0 {
		return text, 0
	}

	if r.Replace != nil {
		return r.Pattern.ReplaceAllStringFunc(text, r.Replace), count
	}
	return r.Pattern.ReplaceAllString(text, r.Template), count
}
