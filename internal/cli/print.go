package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"
)

// printJSON печатает v с отступами, когда задан --json.
func (a *App) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// table печатает строки колонками, разделенными табуляцией.
func (a *App) table(header []string, rows [][]string) error {
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	return w.Flush()
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// emit печатает JSON при --json, иначе вызывает text.
func (a *App) emit(v any, text func() error) error {
	if a.flags.json {
		return a.printJSON(v)
	}
	return text()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return ""
}
