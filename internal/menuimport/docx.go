package menuimport

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fumiama/go-docx"
)

// DOCXParser handles .docx files. Heading styles become headings; runs of
// body paragraphs up to an empty paragraph form one text block.
type DOCXParser struct{}

func (p *DOCXParser) Parse(r io.Reader, filename string) (*Outline, error) {
	// go-docx needs a ReaderAt and a size.
	tmp, err := os.CreateTemp("", "menushare-docx-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	size, err := io.Copy(tmp, r)
	if err != nil {
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	doc, err := docx.Parse(tmp, size)
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	o := &Outline{Title: stripExt(filename)}
	var block []string
	flush := func() {
		o.text(strings.Join(block, "\n"))
		block = block[:0]
	}

	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		text := docxParagraphText(para)
		switch level := docxHeadingLevel(para); {
		case text == "":
			flush()
		case level > 0:
			flush()
			o.heading(level, text)
		default:
			block = append(block, text)
		}
	}
	flush()
	return o, nil
}

func docxHeadingLevel(para *docx.Paragraph) int {
	if para.Properties == nil || para.Properties.Style == nil {
		return 0
	}
	style := strings.ToLower(strings.ReplaceAll(para.Properties.Style.Val, " ", ""))
	if style == "title" {
		return 1
	}
	if n, ok := strings.CutPrefix(style, "heading"); ok && len(n) == 1 && n[0] >= '1' && n[0] <= '6' {
		// Title sits above Heading1.
		return int(n[0]-'0') + 1
	}
	return 0
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
