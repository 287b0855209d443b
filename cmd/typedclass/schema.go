package main

import (
	"io"
	"log/slog"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/reoring/typedclass/jsonschema"
)

var schemaOpts struct {
	shapes string
	record string
	indent bool
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of a record",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSchema(cmd.OutOrStdout(), logger(cmd), schemaOpts.shapes, schemaOpts.record, schemaOpts.indent)
	},
}

func init() {
	schemaCmd.Flags().StringVar(&schemaOpts.shapes, "shapes", "", "Shape file (.yaml, .yml or .json)")
	schemaCmd.Flags().StringVar(&schemaOpts.record, "record", "", "Record to export")
	schemaCmd.Flags().BoolVar(&schemaOpts.indent, "indent", true, "Indent the output")
	_ = schemaCmd.MarkFlagRequired("shapes")
	_ = schemaCmd.MarkFlagRequired("record")
	rootCmd.AddCommand(schemaCmd)
}

func runSchema(out io.Writer, log *slog.Logger, shapes, record string, indent bool) error {
	shape, err := loadRecord(shapes, record, log)
	if err != nil {
		return err
	}
	s := shape.JSONSchema()
	s.Schema = jsonschema.Draft
	enc := json.NewEncoder(out)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(s)
}
