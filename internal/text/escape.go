// Package text contains pure text transforms applied to outbound replies.
package text

import "strings"

// markdownV2Replacer escapes every character Telegram's MarkdownV2 dialect
// reserves. strings.Replacer makes a single pass over the original input,
// so the backslashes it inserts are never re-scanned.
var markdownV2Replacer = strings.NewReplacer(
	"_", "\\_",
	"*", "\\*",
	"[", "\\[",
	"]", "\\]",
	"(", "\\(",
	")", "\\)",
	"~", "\\~",
	"`", "\\`",
	">", "\\>",
	"#", "\\#",
	"+", "\\+",
	"-", "\\-",
	"=", "\\=",
	"|", "\\|",
	"{", "\\{",
	"}", "\\}",
	".", "\\.",
	"!", "\\!",
)

// EscapeMarkdownV2 escapes all MarkdownV2 reserved characters in s. It is
// total and never fails. It is NOT idempotent: escaping already-escaped
// text escapes the backslash-adjacent characters again, so call it exactly
// once, at the reply boundary.
func EscapeMarkdownV2(s string) string {
	return markdownV2Replacer.Replace(s)
}
