package description

import (
	"bufio"
	"io"
	"strings"

	"go.trai.ch/zerr"
)

// indentWidth is the number of spaces that make one nesting level.
const indentWidth = 4

// line is one significant line of a build-description file.
//
//	key: value, value
//	    value, value
//
// A line with a key introduces a rule; a line without one continues the
// argument list of the rule above it.
type line struct {
	number  int
	nesting int
	key     string
	hasKey  bool
	values  []string
}

// lex splits the input into significant lines. Comments start at '#'.
func lex(r io.Reader) ([]line, error) {
	var lines []line
	scanner := bufio.NewScanner(r)
	number := 0
	for scanner.Scan() {
		number++
		text := scanner.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		if strings.TrimSpace(text) == "" {
			continue
		}

		l := line{number: number, nesting: nesting(text)}
		text = strings.TrimSpace(text)
		if key, rest, ok := strings.Cut(text, ":"); ok {
			l.key = strings.TrimSpace(key)
			l.hasKey = true
			text = rest
		}
		l.values = splitValues(text)
		if !l.hasKey && len(l.values) == 0 {
			continue
		}
		lines = append(lines, l)
	}
	if err := scanner.Err(); err != nil {
		return nil, zerr.Wrap(err, "failed to read build description")
	}
	return lines, nil
}

// nesting counts leading indentation levels: four spaces or one tab each.
func nesting(text string) int {
	level, spaces := 0, 0
	for _, c := range text {
		switch c {
		case ' ':
			spaces++
			if spaces == indentWidth {
				level++
				spaces = 0
			}
		case '\t':
			level++
			spaces = 0
		default:
			return level
		}
	}
	return level
}

func splitValues(text string) []string {
	var values []string
	for _, v := range strings.Split(text, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}
