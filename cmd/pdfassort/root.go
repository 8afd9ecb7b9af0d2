package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"pdfassort/internal/assort"
	"pdfassort/internal/config"
	"pdfassort/internal/logging"
	"pdfassort/internal/rules"
	"pdfassort/internal/writer"
)

var version = "0.3.0"

func newRootCmd() *cobra.Command {
	var (
		outputDir      string
		verbosity      int
		noSkipHeader   bool
		noFastMode     bool
		autoCharDetect bool
		logFile        string
	)

	cmd := &cobra.Command{
		Use:   "pdfassort CSV PDF...",
		Short: "Sort PDF pages into output files by keyword rules",
		Long: `pdfassort reads keyword rules from a CSV file (keyword, output name per
row) and routes the pages of the input PDFs to every output whose keyword
appears in the page text. With fast mode (the default), a file whose name
contains a keyword is routed whole without content scanning, which is how
scanned or protected PDFs are handled.`,
		Version:       version,
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, closeLog, err := logging.Setup(verbosity, logFile)
			if err != nil {
				return err
			}
			defer closeLog()

			cfg := config.Config{
				CSVPath:       args[0],
				InputPatterns: args[1:],
				OutputDir:     outputDir,
				SkipCSVHeader: !noSkipHeader,
				DetectCharset: autoCharDetect,
				FastMode:      !noFastMode,
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cfg, log)
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", ".", "directory output files are written to")
	cmd.Flags().CountVarP(&verbosity, "verbose", "v", "per-document progress (-v), selection detail (-vv)")
	cmd.Flags().BoolVar(&noSkipHeader, "no-skip-csv-header", false, "treat the first CSV row as a rule, not a header")
	cmd.Flags().BoolVar(&noFastMode, "no-fast-mode", false, "content-scan every document, even when its file name matches a keyword")
	cmd.Flags().BoolVarP(&autoCharDetect, "auto-char-detect", "c", false, "auto-detect the CSV file's text encoding")
	cmd.Flags().StringVarP(&logFile, "log-file", "l", "", "write progress and warnings to this file instead of the console")
	cmd.Flags().SetNormalizeFunc(normalizeAliases)

	return cmd
}

// normalizeAliases maps the historical two-letter flag spellings onto
// their long names, so --ns and --nf keep working.
func normalizeAliases(f *pflag.FlagSet, name string) pflag.NormalizedName {
	switch name {
	case "ns":
		name = "no-skip-csv-header"
	case "nf":
		name = "no-fast-mode"
	}
	return pflag.NormalizedName(name)
}

// run executes the whole assortment: load rules, scan documents, write
// outputs. Per-document problems are warnings; anything returned here is
// fatal.
func run(cfg config.Config, log zerolog.Logger) error {
	ruleSet, err := rules.Load(cfg.CSVPath, rules.Options{
		SkipHeader:    cfg.SkipCSVHeader,
		DetectCharset: cfg.DetectCharset,
		Log:           log,
	})
	if err != nil {
		return fmt.Errorf("load rules: %w", err)
	}
	log.Info().Int("rules", len(ruleSet)).Str("csv", cfg.CSVPath).Msg("rules loaded")

	inputs, err := cfg.ExpandInputs()
	if err != nil {
		return err
	}
	log.Info().Int("files", len(inputs)).Bool("fastMode", cfg.FastMode).Msg("scanning inputs")

	result := assort.NewRunner(ruleSet, cfg.FastMode, log).Scan(inputs)

	// All scanning is done before the first output is written, so a failed
	// run never leaves partial files behind.
	outputs := result.Selection.Outputs()
	selected := result.Selection.Finalize()
	for _, name := range outputs {
		refs := selected[name]
		path, err := writer.Write(cfg.OutputDir, name, refs)
		if err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		log.Info().Str("file", path).Int("pages", len(refs)).Msg("output written")
	}

	summarize(log, ruleSet, selected, result, len(outputs))
	return nil
}

func summarize(log zerolog.Logger, ruleSet []rules.Rule, selected map[string][]assort.PageRef, result *assort.Result, written int) {
	log.Info().
		Int("outputs", written).
		Int("rules", len(ruleSet)).
		Int("scanned", result.Scanned).
		Int("failed", result.Failed).
		Msg("done")

	var empty []string
	seen := make(map[string]bool)
	for _, r := range ruleSet {
		if _, ok := selected[r.Output]; !ok && !seen[r.Output] {
			seen[r.Output] = true
			empty = append(empty, r.Output)
		}
	}
	if len(empty) > 0 {
		log.Warn().Strs("outputs", empty).Msg("no pages matched, no file written")
	}
}
