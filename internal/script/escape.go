// Package script builds automation-script source text for the target
// application's embedded scripting engine.
//
// All untrusted text must reach generated script source through Escape,
// Literal or the template helpers in Render. Nothing else in the bridge
// splices caller data into executable source.
package script

import "strings"

// escaper replaces characters in the order backslash, double quote, single
// quote, newline, carriage return, tab. strings.Replacer scans the input
// once, so text produced by one substitution is never rewritten by another.
var escaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	`'`, `\'`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// Escape returns s escaped for use inside a double-quoted script string
// literal. It is total over all input, including the empty string.
//
// Escape is not idempotent: escaping already-escaped text escapes the
// backslashes again. Call it exactly once, at the point of embedding.
func Escape(s string) string {
	return escaper.Replace(s)
}

// Literal returns s as a complete double-quoted script string literal.
func Literal(s string) string {
	return `"` + Escape(s) + `"`
}

// AppleScriptString returns s as a double-quoted AppleScript string literal.
// AppleScript only recognizes the backslash and double quote escapes inside
// string literals, so the other characters are passed through.
func AppleScriptString(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(s) + `"`
}
