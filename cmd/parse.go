package main

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Cloud-payto/optical-sub002/internal/model"
)

var (
	parseVendor  string
	parseSubject string
)

var parseCmd = &cobra.Command{
	Use:   "parse <document>",
	Short: "Parse an order-confirmation document into a normalized order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := buildRegistry(cfg)
		if err != nil {
			return err
		}
		adapter, ok := reg.Get(parseVendor)
		if !ok {
			return eris.Errorf("unknown vendor %q (see 'optical vendors')", parseVendor)
		}

		doc, err := readDocument(args[0], parseSubject)
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

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(order)
	},
}

// readDocument loads a document file into the pipeline's input record.
// Files ending in .txt carry extracted PDF text; everything else is HTML.
func readDocument(path, subject string) (model.RawDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.RawDocument{}, eris.Wrapf(err, "read document %s", path)
	}

	doc := model.RawDocument{Subject: subject}
	if strings.HasSuffix(strings.ToLower(path), ".txt") {
		doc.PlainText = string(data)
	} else {
		doc.HTML = string(data)
	}
	return doc, nil
}

func init() {
	parseCmd.Flags().StringVar(&parseVendor, "vendor", "", "vendor adapter to use (required)")
	parseCmd.Flags().StringVar(&parseSubject, "subject", "", "email subject line, if available")
	_ = parseCmd.MarkFlagRequired("vendor")
	rootCmd.AddCommand(parseCmd)
}
