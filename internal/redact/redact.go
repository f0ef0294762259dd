package redact

import (
	"path"
	"regexp"
	"strings"

	"github.com/dshills/release-it/internal/tree"
)

// Placeholder replaces every masked value.
const Placeholder = "[REDACTED]"

// sensitiveKey matches the final segment of option paths whose values are
// always secret. Names such as tokenRef refer to a secret without holding it.
var sensitiveKey = regexp.MustCompile(`(?i)(token|secret|password|passwd|otp|credentials?|apikey|api[_-]key)$`)

// secretPatterns are regex heuristics for common secret types.
var secretPatterns = []*regexp.Regexp{
	// Generic API keys (long hex/base64 strings after common key patterns)
	regexp.MustCompile(`(?i)(api[_-]?key|apikey|api[_-]?secret)\s*[:=]\s*["']?([A-Za-z0-9/+=_-]{20,})["']?`),
	// AWS access key IDs
	regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
	// Generic secrets/tokens/passwords in assignments
	regexp.MustCompile(`(?i)(secret|token|password|passwd|credential)\s*[:=]\s*["']([^"']{8,})["']`),
	// Bearer tokens
	regexp.MustCompile(`(?i)Bearer\s+[A-Za-z0-9._-]{20,}`),
	// JWTs
	regexp.MustCompile(`eyJ[A-Za-z0-9_-]{10,}\.eyJ[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}`),
	// Private key blocks
	regexp.MustCompile(`-----BEGIN\s+(RSA\s+)?PRIVATE KEY-----`),
	// GitHub tokens
	regexp.MustCompile(`gh[pousr]_[A-Za-z0-9_]{36,}`),
	// npm automation and publish tokens
	regexp.MustCompile(`npm_[A-Za-z0-9]{36}`),
	// Slack tokens
	regexp.MustCompile(`xox[bporas]-[A-Za-z0-9-]{10,}`),
	// Anthropic API keys
	regexp.MustCompile(`sk-ant-[A-Za-z0-9_-]{20,}`),
	// OpenAI API keys
	regexp.MustCompile(`sk-[A-Za-z0-9]{20,}`),
	// Credentials embedded in URLs, as in a proxy or registry setting
	regexp.MustCompile(`://[^/\s:@]+:[^/\s@]+@`),
}

// Secrets replaces detected secrets in text with [REDACTED].
func Secrets(text string) string {
	result := text
	for _, pat := range secretPatterns {
		result = pat.ReplaceAllString(result, Placeholder)
	}
	return result
}

// SensitiveKey reports whether the option at optionPath always holds a
// secret, judged by its last segment.
func SensitiveKey(optionPath string) bool {
	parts := tree.SplitPath(optionPath)
	if len(parts) == 0 {
		return false
	}
	return sensitiveKey.MatchString(parts[len(parts)-1])
}

// ShouldRedactPath checks if a dotted option path matches any of the
// redaction patterns. A leading "**." matches the final segment at any depth.
func ShouldRedactPath(optionPath string, patterns []string) bool {
	slashed := strings.Join(tree.SplitPath(optionPath), "/")
	for _, pattern := range patterns {
		matched, err := path.Match(strings.ReplaceAll(pattern, ".", "/"), slashed)
		if err == nil && matched {
			return true
		}
		cleanPattern := strings.TrimPrefix(pattern, "**.")
		if cleanPattern != pattern {
			matched, err = path.Match(cleanPattern, path.Base(slashed))
			if err == nil && matched {
				return true
			}
		}
	}
	return false
}

// Value masks a single option value. Unset and empty values stay as they
// are so the output still shows that nothing was configured.
func Value(optionPath string, v any, patterns []string) any {
	if v == nil {
		return nil
	}
	if s, ok := v.(string); ok && s == "" {
		return s
	}
	if SensitiveKey(optionPath) || ShouldRedactPath(optionPath, patterns) {
		return Placeholder
	}
	switch val := v.(type) {
	case string:
		return Secrets(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			if s, ok := item.(string); ok {
				out[i] = Secrets(s)
			} else {
				out[i] = item
			}
		}
		return out
	}
	return v
}

// Options returns a copy of opts with secrets masked. opts is not modified.
func Options(opts tree.Tree, patterns []string) tree.Tree {
	out := opts.Clone()
	for p, v := range out.Flatten() {
		out.Set(p, Value(p, v, patterns))
	}
	return out
}
