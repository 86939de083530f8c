package meta

import (
	"os"
	"strings"
	"unicode"
)

const envPrefix = "${env."

// ExpandEnv replaces every ${env.KEY} expression in value with the value of
// environment variable KEY ("" when unset).  Expressions whose key is not made
// of letters, digits or '_' and unterminated expressions are kept verbatim.
func ExpandEnv(value string) string {
	return expand(value, os.Getenv)
}

func expand(value string, lookup func(string) string) string {
	if !strings.Contains(value, envPrefix) {
		return value
	}
	var b strings.Builder
	rest := value
	for {
		idx := strings.Index(rest, envPrefix)
		if idx < 0 {
			b.WriteString(rest)
			return b.String()
		}
		b.WriteString(rest[:idx])
		tail := rest[idx+len(envPrefix):]

		end := strings.IndexByte(tail, '}')
		if end < 0 {
			b.WriteString(rest[idx:])
			return b.String()
		}
		key := tail[:end]
		if !isEnvKey(key) {
			// keep the prefix; the remainder may still hold expressions
			b.WriteString(envPrefix)
			rest = tail
			continue
		}
		b.WriteString(lookup(key))
		rest = tail[end+1:]
	}
}

func isEnvKey(key string) bool {
	for _, r := range key {
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
			return false
		}
	}
	return true
}
