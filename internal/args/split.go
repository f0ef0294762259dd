package args

import (
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// Split tokenizes an invocation string using shell quoting rules. Nothing
// is expanded: variable references, command and arithmetic substitutions
// are kept as written, so templates such as "release ${version}" survive
// unchanged. Input the shell grammar rejects, such as an unbalanced quote,
// falls back to splitting on whitespace.
func Split(invocation string) []string {
	if strings.TrimSpace(invocation) == "" {
		return nil
	}
	var fields []string
	for w, err := range syntax.NewParser().WordsSeq(strings.NewReader(invocation)) {
		if err != nil {
			return strings.Fields(invocation)
		}
		fields = append(fields, literalWord(invocation, w))
	}
	return fields
}

// literalWord removes quoting from w and copies every other part verbatim
// from src.
func literalWord(src string, w *syntax.Word) string {
	var b strings.Builder
	for _, part := range w.Parts {
		writePart(&b, src, part, false)
	}
	return b.String()
}

func writePart(b *strings.Builder, src string, part syntax.WordPart, quoted bool) {
	switch p := part.(type) {
	case *syntax.Lit:
		b.WriteString(unescape(p.Value, quoted))
	case *syntax.SglQuoted:
		if p.Dollar {
			b.WriteString(raw(src, p))
			return
		}
		b.WriteString(p.Value)
	case *syntax.DblQuoted:
		if p.Dollar {
			b.WriteString(raw(src, p))
			return
		}
		for _, inner := range p.Parts {
			writePart(b, src, inner, true)
		}
	default:
		b.WriteString(raw(src, p))
	}
}

// raw returns the source text of node.
func raw(src string, node syntax.Node) string {
	start, end := int(node.Pos().Offset()), int(node.End().Offset())
	if start < 0 || end > len(src) || start > end {
		return ""
	}
	return src[start:end]
}

// unescape drops the backslashes the shell would remove. Inside double
// quotes only \$ \` \" \\ and a line continuation are escapes.
func unescape(s string, quoted bool) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			b.WriteByte(s[i])
			continue
		}
		next := s[i+1]
		switch {
		case next == '\n':
			i++
		case !quoted || strings.IndexByte("$`\"\\", next) >= 0:
			b.WriteByte(next)
			i++
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
