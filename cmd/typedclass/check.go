package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	tc "github.com/reoring/typedclass"
	"github.com/reoring/typedclass/shapefile"
	"github.com/reoring/typedclass/source"
)

type checkOptions struct {
	shapes string
	record string
	format string
	print  bool
}

var checkOpts checkOptions

var checkCmd = &cobra.Command{
	Use:   "check [input...]",
	Short: "Construct records from data files and report every problem",
	Long: `Reads each input (a file path, or - for stdin), constructs one instance of
the selected record per object and prints one line per issue. Exits 1 when
any record fails.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(cmd.OutOrStdout(), cmd.InOrStdin(), logger(cmd), checkOpts, args)
	},
}

func init() {
	checkCmd.Flags().StringVar(&checkOpts.shapes, "shapes", "", "Shape file (.yaml, .yml or .json)")
	checkCmd.Flags().StringVar(&checkOpts.record, "record", "", "Record to check against")
	checkCmd.Flags().StringVar(&checkOpts.format, "format", "", "Input format (json or yaml); guessed from the extension when empty")
	checkCmd.Flags().BoolVar(&checkOpts.print, "print", false, "Print every constructed instance")
	_ = checkCmd.MarkFlagRequired("shapes")
	_ = checkCmd.MarkFlagRequired("record")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(out io.Writer, stdin io.Reader, log *slog.Logger, opts checkOptions, inputs []string) error {
	shape, err := loadRecord(opts.shapes, opts.record, log)
	if err != nil {
		return err
	}
	var total, failed int
	for _, in := range inputs {
		recs, err := readInput(in, opts.format, stdin)
		if err != nil {
			return err
		}
		log.Debug("decoded input", "input", in, "records", len(recs))
		for i, rec := range recs {
			total++
			label := fmt.Sprintf("%s#%d", in, i)
			inst, iss := checkRecord(shape, rec)
			if len(iss) > 0 {
				failed++
				for _, it := range iss {
					fmt.Fprintf(out, "%s: %s %s: %s\n", label, it.Code, pointer(it.Path), it.Message)
				}
				continue
			}
			if opts.print {
				fmt.Fprintf(out, "%s: %s\n", label, inst)
			}
		}
	}
	log.Info("check finished", "record", shape.Name(), "total", total, "failed", failed)
	if failed > 0 {
		fmt.Fprintf(out, "%d of %d records failed\n", failed, total)
		return errFailed
	}
	return nil
}

// checkRecord constructs rec, or collects every issue when it cannot be
// constructed.
func checkRecord(shape *tc.Shape, rec map[string]any) (*tc.Instance, tc.Issues) {
	h, err := source.Hydrate(shape, rec)
	if err != nil {
		return nil, nestedIssues(err)
	}
	inst, err := shape.New(h)
	if err == nil {
		return inst, nil
	}
	if verr := shape.Validate(h); verr != nil {
		if iss, ok := tc.AsIssues(verr); ok {
			return nil, iss
		}
	}
	if iss, ok := tc.AsIssues(err); ok && len(iss) > 0 {
		return nil, iss
	}
	return nil, tc.Issues{{Code: tc.CodeInvalidType, Message: err.Error()}}
}

// nestedIssues rebases the issues of a failed nested record onto the path
// where the record sits.
func nestedIssues(err error) tc.Issues {
	var ne *source.NestedError
	if !errors.As(err, &ne) {
		return tc.Issues{{Code: tc.CodeInvalidType, Message: err.Error()}}
	}
	iss, ok := tc.AsIssues(ne.Err)
	if !ok {
		return tc.Issues{{Path: ne.Path, Code: tc.CodeInvalidType, Message: ne.Err.Error()}}
	}
	out := make(tc.Issues, len(iss))
	for i, it := range iss {
		it.Path = tc.At(ne.Path + it.Path).Pointer()
		out[i] = it
	}
	return out
}

func loadRecord(path, name string, log *slog.Logger) (*tc.Shape, error) {
	set, err := shapefile.LoadFile(path)
	if err != nil {
		return nil, err
	}
	log.Debug("loaded shapes", "file", path, "records", strings.Join(set.Names(), ","))
	shape, ok := set.Shape(name)
	if !ok {
		return nil, fmt.Errorf("%s: no record %q (have %s)", path, name, strings.Join(set.Names(), ", "))
	}
	return shape, nil
}

func readInput(name, format string, stdin io.Reader) ([]map[string]any, error) {
	f, err := inputFormat(name, format)
	if err != nil {
		return nil, err
	}
	r := stdin
	if name != "-" {
		fh, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer fh.Close()
		r = fh
	}
	var recs []map[string]any
	if f == shapefile.FormatJSON {
		recs, err = source.DecodeJSON(r)
	} else {
		recs, err = source.DecodeYAML(r)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return recs, nil
}

func inputFormat(name, format string) (shapefile.Format, error) {
	if format != "" {
		return shapefile.ParseFormat(format)
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".ndjson", ".jsonl":
		return shapefile.FormatJSON, nil
	case ".yaml", ".yml":
		return shapefile.FormatYAML, nil
	}
	if name == "-" {
		return shapefile.FormatJSON, nil
	}
	return 0, fmt.Errorf("%s: cannot tell the format from the extension; pass --format", name)
}

func pointer(p string) string {
	if p == "" {
		return "/"
	}
	return p
}
