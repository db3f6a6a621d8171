package codegen

import "strings"

// Render flattens blocks into text, one statement per line. Spacers carry no
// text, so they render as the indent alone.
func Render(blocks []Block, indent string) string {
	var buf strings.Builder
	for _, block := range blocks {
		for _, line := range block.Lines {
			buf.WriteString(indent)
			buf.WriteString(line.Text)
			buf.WriteByte('\n')
		}
	}
	return buf.String()
}
