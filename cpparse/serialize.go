package cpparse

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Serialize writes plan back out in the native text format. Every
// statement's manager tokens are echoed verbatim from the NodeRecord/
// ContactRecord that produced them, so Parse(Serialize(p)) reproduces p's
// managers exactly regardless of how a given float formats.
func Serialize(w io.Writer, plan *Plan) error {
	bw := bufio.NewWriter(w)

	for _, n := range plan.Nodes {
		if _, err := fmt.Fprintf(bw, "node %d %s %s", n.Info.ID, n.Info.Name, n.Marker); err != nil {
			return err
		}
		for _, tok := range n.Tokens {
			if _, err := fmt.Fprintf(bw, " %s", tok); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(bw); err != nil {
			return err
		}
	}

	for _, c := range plan.Contacts {
		if _, err := fmt.Fprintf(bw, "contact %d %d %s %s %s",
			c.Info.Tx, c.Info.Rx, formatFloat(float64(c.Info.Start)), formatFloat(float64(c.Info.End)), c.Marker); err != nil {
			return err
		}
		for _, tok := range c.Tokens {
			if _, err := fmt.Fprintf(bw, " %s", tok); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(bw); err != nil {
			return err
		}
	}

	return bw.Flush()
}
