package log

import "strings"

// RedactedValue replaces values logged under a sensitive key.
const RedactedValue = "[REDACTED]"

// sensitiveKeys are matched case-insensitively against the full key.
var sensitiveKeys = map[string]struct{}{
	"private_key": {},
	"privatekey":  {},
	"view_key":    {},
	"viewkey":     {},
	"passphrase":  {},
	"password":    {},
	"mnemonic":    {},
	"seed":        {},
	"secret":      {},
}

// Redact returns a copy of keysAndValues that is safe to emit.
// Values implementing Redactor are replaced by their redacted form and any
// value stored under a sensitive key is replaced by RedactedValue.
// The input slice is never modified.
func Redact(keysAndValues []any) []any {
	out := make([]any, len(keysAndValues))
	copy(out, keysAndValues)
	for i := 0; i < len(out); i += 2 {
		if i+1 >= len(out) {
			break
		}
		if key, ok := out[i].(string); ok && isSensitiveKey(key) {
			out[i+1] = RedactedValue
			continue
		}
		if r, ok := out[i+1].(Redactor); ok {
			out[i+1] = r.Redacted()
		}
	}
	return out
}

func isSensitiveKey(key string) bool {
	_, ok := sensitiveKeys[strings.ToLower(key)]
	return ok
}
