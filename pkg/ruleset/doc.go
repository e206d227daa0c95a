// Package ruleset loads declarative rule files into ordered rule lists.
//
// A rule file is TOML or YAML (chosen by extension) describing an ordered
// list of rules:
//
//	name = "password-policy"
//
//	[[rules]]
//	label = "score-to-int"
//	target = "lib/services/password_validator.dart"
//	literal = "final score = result.score; // 0-4"
//	replace = "final score = (result.score ?? 0).toInt(); // 0-4"
//
//	[[rules]]
//	label = "password-field"
//	target = "lib/presentation/auth/widgets/auth_form.dart"
//	multiline = true
//	pattern = '''decoration: const InputDecoration\(
//	                labelText: 'Password',.*?\),'''
//	replace = '''...'''
//
// Each rule sets exactly one of literal or pattern. Relative targets are
// resolved against the file's base_dir (itself relative to the rule file)
// or, when that is unset, against the base directory given to the loader.
//
// Rule sets shipped with the binary are available through Builtin.
//
// Lint reports authoring mistakes the engine cannot catch on its own, most
// importantly a replacement that would match its own rule again and so
// break idempotency.
package ruleset
