package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/guileen/keyguess/inspect"
	"github.com/guileen/keyguess/mvcc"
	"github.com/guileen/keyguess/protocol/api"
)

func printBytes(w io.Writer, b api.Bytes) {
	fmt.Fprintf(w, "hex:     %s\n", b.Hex)
	fmt.Fprintf(w, "decimal: %v\n", []byte(b.Decimal))
}

func printWrite(w io.Writer, rec *mvcc.Write) {
	fmt.Fprintf(w, "type:                %s\n", rec.WriteType)
	fmt.Fprintf(w, "start_ts:            %d\n", rec.StartTS)
	if rec.HasShortValue() {
		fmt.Fprintf(w, "short_value:         %v\n", rec.ShortValue())
	}
	fmt.Fprintf(w, "overlapped_rollback: %t\n", rec.HasOverlappedRollback)
	if rec.GCFence != nil {
		fmt.Fprintf(w, "gc_fence:            %d\n", *rec.GCFence)
	}
}

func printSpans(w io.Writer, spans []mvcc.Span) {
	for _, s := range spans {
		fmt.Fprintf(w, "  [%3d,%3d) %-20s %s\n", s.Offset, s.End(), s.Field, s.Method)
	}
}

func printReport(w io.Writer, r *inspect.Report) {
	fmt.Fprintf(w, "input:   %s (%d bytes)\n", r.Hex, r.Len)
	matches := r.Matches()
	if len(matches) == 0 {
		fmt.Fprintln(w, "matches: none")
	} else {
		fmt.Fprintf(w, "matches: %s\n", strings.Join(matches, ", "))
	}

	if g := r.Record; g.OK {
		fmt.Fprintf(w, "record:        %s", g.Record)
		if g.Trailing > 0 {
			fmt.Fprintf(w, " (%d trailing bytes)", g.Trailing)
		}
		fmt.Fprintln(w)
	}
	if g := r.Index; g.OK {
		fmt.Fprintf(w, "index:         t%d_i%d values=%s\n", g.TableID, g.IndexID, g.Values)
	}
	if g := r.Memcomparable; g.OK {
		fmt.Fprintf(w, "memcomparable: %s", g.Decoded)
		if g.Rest != "" {
			fmt.Fprintf(w, " + %s", g.Rest)
		}
		if g.Record != nil {
			fmt.Fprintf(w, " (%s)", g.Record)
		}
		fmt.Fprintln(w)
	}
	if g := r.WriteKey; g.OK {
		fmt.Fprintf(w, "write key:     %s @ %d", g.UserKey, g.CommitTS)
		if g.Record != nil {
			fmt.Fprintf(w, " (%s)", g.Record)
		}
		fmt.Fprintln(w)
	}
	if g := r.Write; g.OK {
		fmt.Fprintf(w, "write:         %s start_ts=%d", g.Write.WriteType, g.Write.StartTS)
		if g.Unparsed > 0 {
			fmt.Fprintf(w, " (%d bytes unparsed)", g.Unparsed)
		}
		fmt.Fprintln(w)
		printSpans(w, g.Spans)
	}
	if g := r.Varint; g.OK {
		fmt.Fprintf(w, "varint:        %d (%d bytes)\n", g.Value, g.Width)
	}
}
