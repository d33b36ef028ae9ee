package output

import "github.com/goccy/go-json"

// JSONFormatter serializes the statement as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(st *Statement) ([]byte, error) {
	return json.MarshalIndent(st, "", "  ")
}
