package renderer

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"strings"

	md "github.com/nao1215/markdown"
)

// ConditionalBlock let you fully write a block and decide at the end to print it or not.
// If the block function returns true, the content is printed to w, otherwise it is discarded.
func ConditionalBlock(w io.Writer, block func(io.Writer) bool) {
	bw := &bytes.Buffer{}
	if block(bw) {
		io.Copy(w, bw)
	}
}

// rightAligned returns a table alignment with a left aligned first column
// and n-1 right aligned columns.
func rightAligned(n int) []md.TableAlignment {
	a := make([]md.TableAlignment, n)
	a[0] = md.AlignLeft
	for i := 1; i < n; i++ {
		a[i] = md.AlignRight
	}
	return a
}

// escape makes a user provided name safe for a table cell.
func escape(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// sortedKeys returns the keys of m, the largest value first, ties by name.
func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b string) int {
		switch {
		case m[a] > m[b]:
			return -1
		case m[a] < m[b]:
			return 1
		default:
			return strings.Compare(a, b)
		}
	})
	return keys
}

func pct(v float64) string { return fmt.Sprintf("%.2f%%", v) }
