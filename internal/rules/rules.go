// Package rules loads the keyword-to-output routing table from a CSV file.
package rules

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// Rule routes pages matching Keyword into the output file named Output.
// Rules are ordered, and duplicates are legal: every rule whose keyword
// matches collects the page (fan-out, not first-match).
type Rule struct {
	Keyword string
	Output  string
}

// Options controls how the rule file is read.
type Options struct {
	// SkipHeader discards the first CSV row.
	SkipHeader bool
	// DetectCharset sniffs the file's text encoding and decodes it before
	// parsing, instead of assuming UTF-8.
	DetectCharset bool

	Log zerolog.Logger
}

// Load reads rules from the CSV at path. Each row contributes
// (keyword, output) from its first two columns; extra columns are ignored.
// Rows with fewer than two columns or an empty keyword or output are
// skipped with a warning. A file yielding zero rules is an error.
func Load(path string, opts Options) ([]Rule, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rule file: %w", err)
	}

	var src io.Reader = bytes.NewReader(raw)
	if opts.DetectCharset {
		if charset, ok := detectCharset(raw, opts.Log); ok {
			decoded, err := decodeCharset(raw, charset)
			if err != nil {
				opts.Log.Warn().Err(err).Str("charset", charset).
					Msg("cannot decode rule file, reading bytes as-is")
			} else {
				src = decoded
			}
		}
	}

	reader := csv.NewReader(src)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse rule csv: %w", err)
	}

	firstRow := 1
	if opts.SkipHeader && len(records) > 0 {
		records = records[1:]
		firstRow = 2
	}

	list := make([]Rule, 0, len(records))
	for i, rec := range records {
		row := firstRow + i
		if len(rec) < 2 {
			opts.Log.Warn().Int("row", row).Msg("rule row needs keyword and output columns, skipping")
			continue
		}
		if rec[0] == "" || rec[1] == "" {
			opts.Log.Warn().Int("row", row).Msg("rule row has empty keyword or output, skipping")
			continue
		}
		list = append(list, Rule{Keyword: rec[0], Output: rec[1]})
	}

	if len(list) == 0 {
		return nil, errors.New("no valid rules in rule file")
	}
	return list, nil
}

// detectCharset sniffs the most likely text encoding of raw.
func detectCharset(raw []byte, log zerolog.Logger) (string, bool) {
	res, err := chardet.NewTextDetector().DetectBest(raw)
	if err != nil {
		log.Warn().Err(err).Msg("charset detection failed, reading rule file as-is")
		return "", false
	}
	log.Debug().Str("charset", res.Charset).Int("confidence", res.Confidence).
		Msg("rule file charset detected")
	return res.Charset, true
}

// decodeCharset returns a reader that decodes raw from the named IANA
// charset into UTF-8.
func decodeCharset(raw []byte, charset string) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(charset)
	if err != nil {
		return nil, fmt.Errorf("look up charset %q: %w", charset, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("charset %q has no decoder", charset)
	}
	return transform.NewReader(bytes.NewReader(raw), enc.NewDecoder()), nil
}
