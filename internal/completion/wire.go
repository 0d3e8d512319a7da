package completion

import (
	"bufio"
	"bytes"
	"strings"
)

// The provider speaks the line format the legacy zsh scripts consumed:
// one candidate per line, "value:description", description optional, a
// literal colon inside the value escaped as "\:".

// EncodeLine renders a candidate in provider wire format.
func EncodeLine(c Candidate) string {
	value := strings.ReplaceAll(c.Value, `:`, `\:`)
	if c.Description == "" {
		return value
	}
	return value + ":" + c.Description
}

// DecodeLine parses one provider output line. The boolean is false for
// lines that hold no candidate (blank lines).
func DecodeLine(line string, kind Kind) (Candidate, bool) {
	line = strings.TrimRight(line, "\r")
	if strings.TrimSpace(line) == "" {
		return Candidate{}, false
	}

	var value strings.Builder
	description := ""
	escaped := false
loop:
	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case escaped:
			if ch != ':' {
				// Unknown escape: keep the backslash.
				value.WriteByte('\\')
			}
			value.WriteByte(ch)
			escaped = false
		case ch == '\\':
			escaped = true
		case ch == ':':
			description = line[i+1:]
			break loop
		default:
			value.WriteByte(ch)
		}
	}
	if escaped {
		value.WriteByte('\\')
	}

	return Candidate{
		Value:       value.String(),
		Description: description,
		Kind:        kind,
	}, true
}

// ParseOutput splits provider stdout into candidates of the given kind.
// Lines that cannot be parsed are dropped individually; the rest of the
// response is still used.
func ParseOutput(output []byte, kind Kind) []Candidate {
	candidates := []Candidate{}

	scanner := bufio.NewScanner(bytes.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if !isText(scanner.Bytes()) {
			continue
		}
		if c, ok := DecodeLine(scanner.Text(), kind); ok {
			candidates = append(candidates, c)
		}
	}

	return candidates
}

// isText rejects lines carrying binary garbage so one bad line cannot
// poison the response.
func isText(line []byte) bool {
	for _, b := range line {
		if b == 0 {
			return false
		}
	}
	return true
}
