package ux

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/multierr"

	"github.com/jorge-barreto/navtoc/internal/doctor"
)

// RenderReport prints a doctor report.
func RenderReport(w io.Writer, dir string, rep *doctor.Report) {
	fmt.Fprintf(w, "%sDirectory:%s %s\n", Bold, Reset, dir)
	root := rep.Root
	if root == "" {
		root = Dim + "(unknown)" + Reset
	}
	fmt.Fprintf(w, "%sRoot:%s      %s\n", Bold, Reset, root)
	fmt.Fprintf(w, "%sTables:%s    %d found, %d reached\n", Bold, Reset, rep.Tables, len(rep.Reached))
	fmt.Fprintf(w, "%sTopics:%s    %d\n\n", Bold, Reset, rep.Topics)

	for _, err := range multierr.Errors(rep.Err()) {
		Fail(w, "%s", err)
	}
	for _, m := range rep.Missing {
		Warn(w, "table %s for topic %s is missing", m.Table, m.TocID)
	}
	if len(rep.Orphans) > 0 {
		Warn(w, "unreachable tables: %s", strings.Join(rep.Orphans, ", "))
	}
	if rep.Err() == nil && !rep.Warnings() {
		Success(w, "all %d tables are consistent", rep.Tables)
	}
}
