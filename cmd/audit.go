package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ingo-eichhorst/claim-integrity-engine/internal/config"
	"github.com/ingo-eichhorst/claim-integrity-engine/internal/engine"
	"github.com/ingo-eichhorst/claim-integrity-engine/internal/loader"
	"github.com/ingo-eichhorst/claim-integrity-engine/internal/output"
	"github.com/ingo-eichhorst/claim-integrity-engine/pkg/claim"
)

var (
	formatFlag     string
	outputFlag     string
	redactPIIFlag  bool
	configPathFlag string
)

var auditCmd = &cobra.Command{
	Use:   "audit <claim-file>",
	Short: "Audit a claim document and print its scorecard",
	Args:  cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("cannot resolve path: %w", err)
		}

		c, err := loadClaim(path, formatFlag)
		if err != nil {
			return fmt.Errorf("load claim: %w", err)
		}

		projectCfg, err := config.LoadProjectConfig(filepath.Dir(path), configPathFlag)
		if err != nil {
			return fmt.Errorf("load project config: %w", err)
		}

		opts := engine.Options{}
		opts = projectCfg.ApplyToOptions(opts)
		if redactPIIFlag {
			opts.RedactPII = true
		}

		eng := engine.New(opts)
		sc, err := eng.Audit(*c)
		if err != nil {
			return fmt.Errorf("audit: %w", err)
		}

		w := cmd.OutOrStdout()
		if outputFlag != "" {
			f, err := os.Create(outputFlag)
			if err != nil {
				return fmt.Errorf("create output file: %w", err)
			}
			defer f.Close()
			w = f
		}

		switch strings.ToLower(formatForRender(formatFlag, path)) {
		case "json":
			err = output.RenderJSON(w, sc)
		case "html":
			err = output.RenderHTML(w, sc)
		default:
			output.RenderText(w, sc, true)
		}
		if err != nil {
			return fmt.Errorf("render output: %w", err)
		}

		if opts.RedactPII {
			logRedactionSummary(eng)
		}

		return nil
	},
}

func init() {
	auditCmd.Flags().StringVar(&formatFlag, "format", "text", "output format: text, json, or html")
	auditCmd.Flags().StringVar(&outputFlag, "output", "", "write output to this file instead of stdout")
	auditCmd.Flags().BoolVar(&redactPIIFlag, "redact-pii", false, "redact PII from the scorecard before rendering")
	auditCmd.Flags().StringVar(&configPathFlag, "config", "", "path to .claimrc.yml project config file")
	rootCmd.AddCommand(auditCmd)
}

// loadClaim decodes a claim document, sniffing the input encoding from
// the file extension: .json decodes as JSON, anything else (.yml,
// .yaml, or no extension) decodes as YAML.
func loadClaim(path, _ string) (*claim.ClaimData, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return loader.DecodeJSON(f)
	}
	return loader.DecodeYAMLFile(path)
}

// formatForRender returns the rendering format: the explicit --format
// value if it names a renderer, else "text".
func formatForRender(format, _ string) string {
	switch strings.ToLower(format) {
	case "json", "html":
		return format
	default:
		return "text"
	}
}

func logRedactionSummary(eng *engine.Engine) {
	summary := eng.Redactor().Summary()
	if len(summary) == 0 {
		return
	}
	kinds := make([]string, 0, len(summary))
	for k := range summary {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)

	parts := make([]string, 0, len(kinds))
	total := 0
	for _, k := range kinds {
		parts = append(parts, fmt.Sprintf("%s=%d", k, summary[k]))
		total += summary[k]
	}
	log.Printf("redacted %d fields: %s", total, strings.Join(parts, ", "))
}
