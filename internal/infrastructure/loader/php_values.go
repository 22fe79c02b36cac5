package loader

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"langjs/internal/domain/entities"
)

// phpStringLiteral decodes a quoted string token as the parser reports it.
func phpStringLiteral(raw []byte) string {
	s := string(raw)
	if len(s) >= 2 {
		switch {
		case s[0] == '\'' && s[len(s)-1] == '\'':
			return phpUnquoteSingle(s[1 : len(s)-1])
		case s[0] == '"' && s[len(s)-1] == '"':
			return phpUnescape(s[1:len(s)-1], true)
		}
	}
	return s
}

// phpUnquoteSingle handles the two escapes of single-quoted strings.
func phpUnquoteSingle(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && (s[i+1] == '\'' || s[i+1] == '\\') {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

var phpSimpleEscapes = map[byte]byte{
	'n': '\n', 't': '\t', 'r': '\r', 'v': '\v', 'e': 0x1b, 'f': '\f',
	'\\': '\\', '$': '$', '"': '"',
}

// phpUnescape decodes the escape sequences of double-quoted strings and
// heredocs. Heredocs keep \" verbatim. Unknown sequences are kept as is.
func phpUnescape(s string, quoted bool) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); {
		if s[i] != '\\' || i+1 >= len(s) {
			b.WriteByte(s[i])
			i++
			continue
		}
		n := s[i+1]
		if r, ok := phpSimpleEscapes[n]; ok && (quoted || n != '"') {
			b.WriteByte(r)
			i += 2
			continue
		}
		switch {
		case n >= '0' && n <= '7':
			end := i + 1
			for end < len(s) && end < i+4 && s[end] >= '0' && s[end] <= '7' {
				end++
			}
			v, _ := strconv.ParseUint(s[i+1:end], 8, 16)
			b.WriteByte(byte(v))
			i = end
			continue
		case n == 'x' && i+2 < len(s) && isHex(s[i+2]):
			end := i + 2
			for end < len(s) && end < i+4 && isHex(s[end]) {
				end++
			}
			v, _ := strconv.ParseUint(s[i+2:end], 16, 8)
			b.WriteByte(byte(v))
			i = end
			continue
		case n == 'u' && i+2 < len(s) && s[i+2] == '{':
			if end := strings.IndexByte(s[i:], '}'); end > 3 {
				if v, err := strconv.ParseUint(s[i+3:i+end], 16, 32); err == nil {
					b.WriteRune(rune(v))
					i += end + 1
					continue
				}
			}
		}
		b.WriteByte('\\')
		i++
	}
	return b.String()
}

// heredocBody drops the newline before the closing marker and the
// indentation of the closing marker from every line.
func heredocBody(body, closing string) string {
	body = strings.TrimSuffix(body, "\n")
	body = strings.TrimSuffix(body, "\r")

	closing = strings.TrimLeft(closing, "\r\n")
	indent := closing[:len(closing)-len(strings.TrimLeft(closing, " \t"))]
	if indent == "" {
		return body
	}
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, indent)
	}
	return strings.Join(lines, "\n")
}

// phpIntLiteral parses decimal, hex, octal and binary integers.
// Integers that overflow become floats, as in PHP.
func phpIntLiteral(raw string) (any, error) {
	text := strings.ReplaceAll(raw, "_", "")
	base := 10
	digits := text
	if len(text) > 1 && text[0] == '0' {
		switch text[1] {
		case 'x', 'X':
			base, digits = 16, text[2:]
		case 'b', 'B':
			base, digits = 2, text[2:]
		case 'o', 'O':
			base, digits = 8, text[2:]
		default:
			// legacy octal
			base, digits = 8, text[1:]
		}
	}
	if v, err := strconv.ParseInt(digits, base, 64); err == nil {
		return v, nil
	}
	u, err := strconv.ParseUint(digits, base, 64)
	if err == nil {
		return float64(u), nil
	}
	if base == 10 {
		if f, ferr := strconv.ParseFloat(digits, 64); ferr == nil {
			return f, nil
		}
	}
	return nil, fmt.Errorf("invalid number %s", raw)
}

func phpFloatLiteral(raw string) (float64, error) {
	f, err := strconv.ParseFloat(strings.ReplaceAll(raw, "_", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %s", raw)
	}
	return f, nil
}

// phpKey is a normalized array key: an integer or a non-numeric string.
type phpKey struct {
	isInt bool
	i     int64
	s     string
}

func (k phpKey) String() string {
	if k.isInt {
		return strconv.FormatInt(k.i, 10)
	}
	return k.s
}

// phpArrayKey applies PHP's key casting rules.
func phpArrayKey(v any) (phpKey, error) {
	switch x := v.(type) {
	case string:
		if i, ok := canonicalInt(x); ok {
			return phpKey{isInt: true, i: i}, nil
		}
		return phpKey{s: x}, nil
	case int64:
		return phpKey{isInt: true, i: x}, nil
	case float64:
		return phpKey{isInt: true, i: int64(math.Trunc(x))}, nil
	case bool:
		if x {
			return phpKey{isInt: true, i: 1}, nil
		}
		return phpKey{isInt: true, i: 0}, nil
	case nil:
		return phpKey{s: ""}, nil
	default:
		return phpKey{}, fmt.Errorf("illegal array key type %T", v)
	}
}

// canonicalInt reports whether s is a decimal integer without leading
// zeros or plus sign, the form PHP casts to an integer key.
func canonicalInt(s string) (int64, bool) {
	if s == "" || s == "-0" {
		return 0, false
	}
	digits := strings.TrimPrefix(s, "-")
	if digits == "" || (len(digits) > 1 && digits[0] == '0') {
		return 0, false
	}
	for i := 0; i < len(digits); i++ {
		if !isDigit(digits[i]) {
			return 0, false
		}
	}
	i, err := strconv.ParseInt(s, 10, 64)
	return i, err == nil
}

type phpArray struct {
	keys   []phpKey
	values map[phpKey]any
	next   int64
}

func newPHPArray() *phpArray {
	return &phpArray{values: make(map[phpKey]any)}
}

func (a *phpArray) set(k phpKey, v any) {
	if _, ok := a.values[k]; !ok {
		a.keys = append(a.keys, k)
	}
	a.values[k] = v
	if k.isInt && k.i >= a.next {
		a.next = k.i + 1
	}
}

func (a *phpArray) push(v any) {
	a.set(phpKey{isInt: true, i: a.next}, v)
}

// value returns a list when the keys are exactly 0..n-1 in order and a
// tree otherwise.
func (a *phpArray) value() any {
	isList := true
	for i, k := range a.keys {
		if !k.isInt || k.i != int64(i) {
			isList = false
			break
		}
	}
	if isList {
		list := make([]any, len(a.keys))
		for i, k := range a.keys {
			list[i] = a.values[k]
		}
		return list
	}
	tree := entities.NewTree()
	for _, k := range a.keys {
		tree.Set(k.String(), a.values[k])
	}
	return tree
}

// phpToString converts a scalar the way PHP's string conversion does.
func phpToString(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case float64:
		if x == math.Trunc(x) && math.Abs(x) < 1e15 {
			return strconv.FormatInt(int64(x), 10), nil
		}
		return strconv.FormatFloat(x, 'G', 14, 64), nil
	case bool:
		if x {
			return "1", nil
		}
		return "", nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("cannot concatenate %T", v)
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isHex(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
