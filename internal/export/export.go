// Package export renders list data as downloadable files: CSV, CSV with a
// byte order mark under an .xls name for spreadsheet apps, and an HTML
// table under a .doc name for word processors.
package export

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	customError "github.com/yanuaran892/perpusmpn1sedati/pkg/errors"
)

type Format string

const (
	FormatCSV   Format = "csv"
	FormatExcel Format = "xls"
	FormatWord  Format = "doc"
)

var contentTypes = map[Format]string{
	FormatCSV:   "text/csv; charset=utf-8",
	FormatExcel: "application/vnd.ms-excel",
	FormatWord:  "application/msword",
}

// ParseFormat accepts csv, xls or doc.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := contentTypes[f]; !ok {
		return "", customError.NewBusinessError(customError.ErrCodeValidation,
			fmt.Sprintf("unknown export format %q", s), customError.ErrValidation)
	}
	return f, nil
}

// Table is the rendered form of a list: one header row and string cells.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// File is a finished download.
type File struct {
	Name        string
	ContentType string
	Body        []byte
}

// Render writes t in format f. name is the file name without extension.
func Render(t Table, f Format, name string) (*File, error) {
	var buf bytes.Buffer

	var err error
	switch f {
	case FormatCSV:
		err = WriteCSV(&buf, t)
	case FormatExcel:
		err = writeExcel(&buf, t)
	case FormatWord:
		err = writeWord(&buf, t)
	default:
		_, err = ParseFormat(string(f))
	}
	if err != nil {
		return nil, err
	}

	return &File{
		Name:        name + "." + string(f),
		ContentType: contentTypes[f],
		Body:        buf.Bytes(),
	}, nil
}

// WriteCSV quotes every field and doubles embedded quotes. Field bytes are
// written unchanged, so a "\r\n" inside a value stays in the file; readers
// following RFC 4180 such as encoding/csv hand it back as "\n".
func WriteCSV(w io.Writer, t Table) error {
	if err := writeCSVRow(w, t.Headers); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := writeCSVRow(w, row); err != nil {
			return err
		}
	}
	return nil
}

func writeCSVRow(w io.Writer, fields []string) error {
	var b strings.Builder
	for i, field := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(field, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')

	_, err := io.WriteString(w, b.String())
	return err
}

func writeExcel(w io.Writer, t Table) error {
	bw := transform.NewWriter(w, unicode.UTF8BOM.NewEncoder())
	if err := WriteCSV(bw, t); err != nil {
		return err
	}
	return bw.Close()
}

var wordTemplate = template.Must(template.New("doc").Parse(`<html xmlns:o="urn:schemas-microsoft-com:office:office" xmlns:w="urn:schemas-microsoft-com:office:word">
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
<h2>{{.Title}}</h2>
<table border="1" cellspacing="0" cellpadding="4">
<thead><tr>{{range .Headers}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{- range .Rows}}
<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{- end}}
</tbody>
</table>
</body>
</html>
`))

func writeWord(w io.Writer, t Table) error {
	return wordTemplate.Execute(w, t)
}
