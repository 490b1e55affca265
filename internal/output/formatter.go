package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/rgehrsitz/sspricer/internal/domain"
)

// Formatter renders a priced batch
type Formatter interface {
	Name() string
	Format(results *domain.BatchResult) ([]byte, error)
}

// FormatterFunc adapts a function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(results *domain.BatchResult) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(results *domain.BatchResult) ([]byte, error) {
	return f.F(results)
}

var formatters = map[string]Formatter{
	"console": ConsoleFormatter{},
	"json":    JSONFormatter{Indent: true},
	"csv":     CSVFormatter{},
}

var formatAliases = map[string]string{
	"table": "console",
	"text":  "console",
}

// AvailableFormatterNames returns the registered formatter names, sorted
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns the alias -> formatter name mapping
func AvailableFormatAliases() map[string]string {
	out := make(map[string]string, len(formatAliases))
	for k, v := range formatAliases {
		out[k] = v
	}
	return out
}

// GetFormatterByName resolves a formatter by name or alias. Returns nil
// for unknown names.
func GetFormatterByName(name string) Formatter {
	key := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := formatAliases[key]; ok {
		key = alias
	}
	return formatters[key]
}

// WriteFormatted formats results and writes them to w
func WriteFormatted(w io.Writer, f Formatter, results *domain.BatchResult) error {
	data, err := f.Format(results)
	if err != nil {
		return fmt.Errorf("%s formatter failed: %w", f.Name(), err)
	}
	_, err = w.Write(data)
	return err
}
