// Package redact masks secrets in resolved release options before they are
// printed or written to a report.
//
// Detection works two ways. Options whose key names look sensitive (tokens,
// passwords, one-time passwords, API keys) have their whole value replaced.
// Every other string value is scanned with regex heuristics covering common
// secret shapes: JWTs, private keys, AWS access keys, bearer tokens and
// provider-specific tokens (GitHub, Slack, npm, OpenAI, Anthropic).
//
// Additional option paths can be masked with glob patterns such as
// "github.proxy" or "**.auth".
package redact
