// Package matcher locates a MatchSpec inside a file's full text.
//
// Two strategies exist. Literal specs are plain substring searches with no
// metacharacters. Pattern specs are RE2 regular expressions; with Multiline
// set they are compiled with the (?s) flag so "." also matches line breaks
// and a single pattern can cover a formatted block of several lines:
//
//	pattern = '''decoration: const InputDecoration\(
//	                labelText: 'Password',.*?\),'''
//	multiline = true
//
// Without Multiline the same pattern cannot cross a newline.
//
// Locating never fails. Zero occurrences is a normal result; only an invalid
// spec (empty body, unknown kind, pattern that does not compile) is an error,
// and that is reported by Compile.
package matcher
