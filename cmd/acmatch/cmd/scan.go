package cmd

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sansecio/acmatch/ahocorasick"
	"github.com/sansecio/acmatch/cmd/internal"
	"github.com/sansecio/acmatch/config"
	"github.com/spf13/cobra"
)

type scanFlags struct {
	buildFlags
	format  string
	timeout time.Duration
	utf16   string
	count   bool
}

func newScanCmd() *cobra.Command {
	var f scanFlags
	cmd := &cobra.Command{
		Use:   "scan -k <keywords> [file ...]",
		Short: "Report keyword matches in files or stdin",
		Long: "Scans each file (stdin when none or \"-\" is given) and prints every match as\n" +
			"file:start-end followed by the keyword's value. Offsets are UTF-16 code units.\n" +
			"Exits 1 when nothing matched.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, args, &f)
		},
	}
	f.register(cmd)
	fs := cmd.Flags()
	fs.StringVar(&f.format, "format", "", "Output format: text, json, msgpack")
	fs.DurationVar(&f.timeout, "timeout", 0, "Abort the scan after this long (0 = no limit)")
	fs.StringVar(&f.utf16, "utf16", "", "Read input as raw UTF-16: le or be")
	fs.BoolVar(&f.count, "count", false, "Print match counts per value instead of matches")
	return cmd
}

func byteOrder(name string) (binary.ByteOrder, error) {
	switch strings.ToLower(name) {
	case "":
		return nil, nil
	case "le":
		return binary.LittleEndian, nil
	case "be":
		return binary.BigEndian, nil
	}
	return nil, fmt.Errorf("unknown UTF-16 byte order %q", name)
}

// ctxReader stops a stream scan once the context is done.
type ctxReader struct {
	ctx context.Context
	r   ahocorasick.UnitReader
}

func (c ctxReader) ReadUnits(p []uint16) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.ReadUnits(p)
}

func runScan(cmd *cobra.Command, args []string, f *scanFlags) error {
	l := f.logger(cmd)
	cfg, err := f.loadConfig(cmd, l)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("format") {
		if cfg.Output.Format, err = config.ParseFormat(f.format); err != nil {
			return err
		}
	}
	order, err := byteOrder(f.utf16)
	if err != nil {
		return err
	}
	out, err := newRecordWriter(cmd.OutOrStdout(), cfg.Output.Format)
	if err != nil {
		return err
	}
	a, err := f.build(l, cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	if len(args) == 0 {
		args = []string{"-"}
	}
	counts := make(map[string]int)
	for _, name := range args {
		start := time.Now()
		n, err := scanOne(ctx, cmd, a, name, order, func(rec matchRecord) error {
			counts[rec.Value]++
			if f.count {
				return nil
			}
			return out.Write(rec)
		})
		if err != nil {
			return err
		}
		l.Debug("scanned", "file", name, "matches", n, "elapsed", time.Since(start))
	}

	if f.count {
		w := cmd.OutOrStdout()
		for _, v := range internal.SortByCount(counts) {
			fmt.Fprintf(w, "%6d  %s\n", counts[v], v)
		}
		fmt.Fprintf(w, "%6d  total\n", internal.SumValues(counts))
	}
	if len(counts) == 0 {
		return scanExit{1}
	}
	return nil
}

func scanOne(ctx context.Context, cmd *cobra.Command, a *ahocorasick.Automaton[string], name string, order binary.ByteOrder, emit func(matchRecord) error) (int, error) {
	var r io.Reader = cmd.InOrStdin()
	if name != "-" {
		file, err := os.Open(name)
		if err != nil {
			return 0, err
		}
		defer file.Close()
		r = file
	}

	var units ahocorasick.UnitReader
	if order != nil {
		units = ahocorasick.NewUTF16Reader(r, order)
	} else {
		units = ahocorasick.NewUTF8Reader(r)
	}

	n := 0
	var emitErr error
	err := a.ScanUnits(ctxReader{ctx, units}, ahocorasick.ListenerFunc[string](func(start, end int, v string) bool {
		n++
		if emitErr = emit(matchRecord{File: name, Start: start, End: end, Value: v}); emitErr != nil {
			return false
		}
		return ctx.Err() == nil
	}))
	if emitErr != nil {
		return n, emitErr
	}
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		return n, fmt.Errorf("scanning %s: %w", name, err)
	}
	return n, nil
}
