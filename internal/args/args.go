package args

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/dshills/release-it/internal/tree"
)

// Result is the outcome of parsing one invocation.
type Result struct {
	// Args holds every recognized option, nested by dotted path.
	Args tree.Tree
	// Extra holds bare tokens after the increment.
	Extra []string
}

var (
	numberRe      = regexp.MustCompile(`^[-+]?(\d+(\.\d*)?|\.\d+)([eE][-+]?\d+)?$`)
	leadingZeroRe = regexp.MustCompile(`^[-+]?0[^.]`)
)

// ParseString splits and parses an invocation string.
func ParseString(invocation string) Result {
	return Parse(Split(invocation))
}

// Parse converts an argument list into a Result. It never fails.
func Parse(argv []string) Result {
	p := &parser{argv: argv, res: Result{Args: tree.New()}}
	p.run()
	return p.res
}

type parser struct {
	argv           []string
	res            Result
	incrementTaken bool
}

func (p *parser) run() {
	for i := 0; i < len(p.argv); i++ {
		tok := p.argv[i]
		switch {
		case tok == "--":
			for _, rest := range p.argv[i+1:] {
				p.positional(rest)
			}
			return
		case strings.HasPrefix(tok, "--") && len(tok) > 2:
			i = p.long(i)
		case isFlag(tok):
			i = p.short(i)
		default:
			p.positional(tok)
		}
	}
}

// long handles a --flag token at index i and returns the index of the last
// token it consumed.
func (p *parser) long(i int) int {
	body := p.argv[i][2:]
	name, value, hasValue := strings.Cut(body, "=")

	if !hasValue {
		if target, ok := negated(name); ok {
			p.set(resolveLong(target), false)
			return i
		}
	}

	path := resolveLong(name)
	if hasValue {
		p.set(path, coerce(path, value))
		return i
	}

	next, hasNext := p.peek(i)
	switch {
	case hasNext && (Booleans[path] || path == PathPreRelease):
		if next == "true" || next == "false" {
			p.set(path, next == "true")
			return i + 1
		}
	case hasNext:
		p.set(path, coerce(path, next))
		return i + 1
	}

	if path == PathIncrement {
		// --increment with nothing after it carries no information.
		return i
	}
	if sh, ok := shorthandFor(name); ok && !sh.TakesValue {
		p.set(path, sh.Value)
		return i
	}
	p.set(path, true)
	return i
}

// short handles a -abc token at index i and returns the index of the last
// token it consumed.
func (p *parser) short(i int) int {
	letters := []rune(p.argv[i][1:])
	for j := 0; j < len(letters); j++ {
		letter := letters[j]
		sh, known := Shorthands[letter]
		path := string(letter)
		if known {
			path = sh.Path
		}

		rest := string(letters[j+1:])
		if strings.HasPrefix(rest, "=") {
			p.set(path, coerce(path, rest[1:]))
			return i
		}

		if !known {
			p.set(path, true)
			continue
		}
		if !sh.TakesValue {
			p.set(path, sh.Value)
			continue
		}

		if rest != "" {
			p.set(path, coerce(path, rest))
			return i
		}
		if next, ok := p.peek(i); ok {
			p.set(path, coerce(path, next))
			return i + 1
		}
		return i
	}
	return i
}

func (p *parser) positional(tok string) {
	if !p.incrementTaken && !p.res.Args.Has(PathIncrement) {
		p.incrementTaken = true
		p.res.Args.Set(PathIncrement, tok)
		return
	}
	p.res.Extra = append(p.res.Extra, tok)
}

func (p *parser) set(path string, v any) {
	if path == PathIncrement {
		p.incrementTaken = true
	}
	p.res.Args.Set(path, v)
}

// peek returns the token after i when it is not itself a flag.
func (p *parser) peek(i int) (string, bool) {
	if i+1 >= len(p.argv) {
		return "", false
	}
	next := p.argv[i+1]
	if next == "--" || isFlag(next) {
		return "", false
	}
	return next, true
}

// negated strips a no- or no. prefix from a long flag name.
func negated(name string) (string, bool) {
	for _, prefix := range []string{"no-", "no."} {
		if rest, ok := strings.CutPrefix(name, prefix); ok && rest != "" {
			return rest, true
		}
	}
	return "", false
}

// resolveLong maps a long flag name to its canonical path: single letters
// go through the shorthand table, kebab-case names through LongAliases.
func resolveLong(name string) string {
	if sh, ok := shorthandFor(name); ok {
		return sh.Path
	}
	if alias, ok := LongAliases[name]; ok {
		return alias
	}
	return name
}

func shorthandFor(name string) (Shorthand, bool) {
	r := []rune(name)
	if len(r) != 1 {
		return Shorthand{}, false
	}
	sh, ok := Shorthands[r[0]]
	return sh, ok
}

func isFlag(tok string) bool {
	return len(tok) > 1 && tok[0] == '-' && !numberRe.MatchString(tok)
}

// maxSafeInteger is the largest integer a float64 holds exactly.
const maxSafeInteger = 1<<53 - 1

// coerce converts a raw flag value into a bool, number or string. Values
// that would not survive the trip through float64 stay strings: a leading
// zero (an OTP such as 012345) or an integer part beyond 2^53-1.
func coerce(path, raw string) any {
	if path == PathIncrement {
		return raw
	}
	switch raw {
	case "true":
		return true
	case "false":
		return false
	}
	if stringOnly[path] || !numberRe.MatchString(raw) || leadingZeroRe.MatchString(raw) {
		return raw
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.Abs(math.Floor(f)) > maxSafeInteger {
		return raw
	}
	return f
}
