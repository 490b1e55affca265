package output

import (
	"github.com/goccy/go-json"
	"github.com/rgehrsitz/sspricer/internal/domain"
)

// JSONFormatter renders a batch as JSON
type JSONFormatter struct {
	Indent bool
}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(results *domain.BatchResult) ([]byte, error) {
	return MarshalJSON(results, j.Indent)
}

// MarshalJSON encodes v, indented on request, with a trailing newline
func MarshalJSON(v any, indent bool) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if indent {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
