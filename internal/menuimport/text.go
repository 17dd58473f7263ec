package menuimport

import (
	"bufio"
	"io"
	"strings"
	"unicode"
)

// TextParser handles plain text files. Blank lines separate blocks. A line
// without a price is a section heading when it is written in capitals and a
// subsection heading when it ends with a colon.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*Outline, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	o := &Outline{Title: stripExt(filename)}
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	outlineText(o, lines)
	return o, nil
}

func outlineText(o *Outline, lines []string) {
	var block strings.Builder
	flush := func() {
		o.text(block.String())
		block.Reset()
	}

	for _, raw := range lines {
		line := strings.TrimSpace(strings.ReplaceAll(raw, "\f", ""))
		if line == "" {
			flush()
			continue
		}
		if level := textHeadingLevel(line); level > 0 {
			flush()
			o.heading(level, strings.TrimRight(line, ":"))
			continue
		}
		if block.Len() > 0 {
			block.WriteByte('\n')
		}
		block.WriteString(line)
	}
	flush()
}

func textHeadingLevel(line string) int {
	if _, _, priced := ParseLine(line); priced {
		return 0
	}
	if strings.HasSuffix(line, ":") && len(line) > 1 {
		return 2
	}
	letters := 0
	for _, r := range line {
		if unicode.IsLower(r) {
			return 0
		}
		if unicode.IsLetter(r) {
			letters++
		}
	}
	if letters > 1 {
		return 1
	}
	return 0
}
