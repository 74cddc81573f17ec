package diag

import (
	"fmt"
	"sort"
	"strings"
)

// FormatGolden renders diagnostics into a stable, single-line-per-entry
// representation suitable for golden files. Entries are sorted
// deterministically; the live append order is not part of golden
// output.
func FormatGolden(diags []Diagnostic) string {
	rendered := make([]Diagnostic, len(diags))
	copy(rendered, diags)

	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.Stage != dj.Stage {
			return di.Stage < dj.Stage
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		if di.Code != dj.Code {
			return di.Code < dj.Code
		}
		return di.Message < dj.Message
	})

	var b strings.Builder
	for i, d := range rendered {
		fmt.Fprintf(&b, "%s %s [%s] %s", d.Severity, d.Code.ID(), d.Stage, sanitizeMessage(d.Message))
		if i < len(rendered)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// sanitizeMessage keeps golden entries one physical line each.
func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", " ")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
