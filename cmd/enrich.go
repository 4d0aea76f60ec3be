package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Cloud-payto/optical-sub002/internal/pipeline"
)

var (
	enrichVendor  string
	enrichSubject string
	enrichQuiet   bool
)

var enrichCmd = &cobra.Command{
	Use:   "enrich <document>",
	Short: "Parse a document and enrich its line items against the vendor catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		reg, err := buildRegistry(cfg)
		if err != nil {
			return err
		}
		adapter, ok := reg.Get(enrichVendor)
		if !ok {
			return eris.Errorf("unknown vendor %q (see 'optical vendors')", enrichVendor)
		}

		doc, err := readDocument(args[0], enrichSubject)
		if err != nil {
			return err
		}

		order, err := adapter.Parser.Parse(doc)
		if err != nil {
			return eris.Wrap(err, "parse document")
		}
		for _, w := range order.Warnings {
			zap.L().Warn("parse gap", zap.String("vendor", order.Vendor), zap.String("warning", w))
		}

		var obs pipeline.Observer = pipeline.LogObserver{}
		if enrichQuiet {
			obs = pipeline.NopObserver{}
		}

		proc := pipeline.New(adapter.Enricher, pipeline.Options{
			BatchSize:  cfg.Pipeline.BatchSize,
			BatchPause: cfg.Pipeline.BatchPause(),
		}, obs)

		enriched, err := proc.Process(ctx, order)
		if err != nil {
			return eris.Wrap(err, "enrich order")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(enriched)
	},
}

func init() {
	enrichCmd.Flags().StringVar(&enrichVendor, "vendor", "", "vendor adapter to use (required)")
	enrichCmd.Flags().StringVar(&enrichSubject, "subject", "", "email subject line, if available")
	enrichCmd.Flags().BoolVar(&enrichQuiet, "quiet", false, "suppress per-item progress logging")
	_ = enrichCmd.MarkFlagRequired("vendor")
	rootCmd.AddCommand(enrichCmd)
}
