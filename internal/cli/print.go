package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
)

var (
	bold    = color.New(color.Bold).SprintFunc()
	title   = color.New(color.Bold, color.Underline).SprintFunc()
	faint   = color.New(color.Faint).SprintFunc()
	red     = color.New(color.FgRed).SprintFunc()
	green   = color.New(color.FgGreen).SprintFunc()
	yellowI = color.New(color.FgHiYellow, color.Italic, color.Faint).SprintFunc()
)

func newTable(headers ...any) *uitable.Table {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.Wrap = true
	if len(headers) > 0 {
		for i, h := range headers {
			headers[i] = bold(h)
		}
		tbl.AddRow(headers...)
	}
	return tbl
}

func printTable(w io.Writer, tbl *uitable.Table) {
	_, _ = fmt.Fprintln(w, tbl)
}

func printNone(w io.Writer) {
	_, _ = fmt.Fprintln(w, faint("none"))
}

func printTitle(w io.Writer, s string) {
	_, _ = fmt.Fprintln(w, title(s))
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func money(v float64) string {
	if v < 0 {
		return "-$" + strconv.FormatFloat(-v, 'f', 2, 64)
	}
	return "$" + strconv.FormatFloat(v, 'f', 2, 64)
}
