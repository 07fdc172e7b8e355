/*
Package rewrite implements the core rule pipeline for fixing implicitly-typed
request accesses in TypeScript route files.

	+-------------+
	|   Engine    |
	| (Pipeline)  |
	+------+------+
	       |
	+------+------+
	|    Rules    |
	| (Ordered)   |
	+-------------+

🎯 Purpose:
- Applies an ordered set of textual rewrite rules to one file's content
- Detects whether the final text differs from the original
- Reports per-rule match counts for logging

🔄 Flow:
1. Receives file content from the operation package
2. Runs each rule over the evolving text buffer, in order
3. Returns the fixed content plus a changed flag

⚡ Key Responsibilities:
- Pattern matching and substitution (params, query, body, caught errors)
- Marker-guarded one-time injection of the QueryParams interface
- Byte-for-byte change detection

📝 Design Philosophy:
The engine is purely textual: it does not parse TypeScript, build a syntax
tree, or verify that its output is valid syntax. Rules operate at the
granularity of single property-access tokens, so the pipeline is idempotent
on its own output. The one known soft spot is the caught-error rule, whose
non-greedy span matching can mis-scope catch bodies containing braces before
the first error.message.

🔍 Example:

	engine := rewrite.NewEngine()
	result, err := engine.Rewrite(ctx, bytes.NewReader(content))
	if result.Changed {
		// write result.FixedContent back
	}
*/
package rewrite
