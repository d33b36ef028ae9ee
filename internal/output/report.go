package output

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrUnsupportedFormat is returned for a format name with no formatter.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Resolve returns the formatter registered under name or one of its aliases.
func Resolve(name string) (Formatter, error) {
	if f := GetFormatterByName(name); f != nil {
		return f, nil
	}
	return nil, fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, name,
		strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
}

// Render formats the statement and writes it to w.
func Render(w io.Writer, st *Statement, format string) error {
	f, err := Resolve(format)
	if err != nil {
		return err
	}
	data, err := f.Format(st)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Extension is the file extension used when a formatter's output is saved.
func Extension(f Formatter) string {
	switch f.Name() {
	case "json", "csv":
		return f.Name()
	default:
		return "txt"
	}
}
