// Package rules provides the ordered, regex-based routing rules for filerouter.
//
// A rule pairs a regular expression with a destination directory. Rules are
// evaluated against the full vault-relative path of a file, in configured
// order, and the first matching rule wins:
//
//	[[rules]]
//	pattern = '\.(png|jpg|jpeg|bmp|gif|webp)$'
//	destination = "attachments/image"
//
//	[[rules]]
//	pattern = '\.(pdf)$'
//	destination = "attachments/pdf"
//
// Patterns use Go's RE2 syntax and are not anchored: `\.png$` matches
// "notes/a.png" and `inbox/` matches any path containing "inbox/". Use ^ and
// $ for explicit anchoring.
//
// # Malformed Patterns
//
// Patterns are compiled lazily, the first time a rule is evaluated. A pattern
// that does not compile disables its rule: it never matches, the error is
// logged once, and the other rules keep working.
package rules
