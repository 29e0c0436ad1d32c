package showoff

import "strings"

// ExifTable renders EXIF lines as an HTML table. Every "|" in a line
// becomes a column boundary, so "Camera|Nikon D90" yields a two-cell row.
//
// Values are not escaped. Lines are expected to come from the content
// store, which is trusted.
func ExifTable(lines []string) string {
	var b strings.Builder
	b.WriteString("<table>")
	for _, line := range lines {
		b.WriteString("<tr><td>")
		b.WriteString(strings.ReplaceAll(line, "|", "</td><td>"))
		b.WriteString("</td></tr>")
	}
	b.WriteString("</table>")
	return b.String()
}
