package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	insider "github.com/hrvstr/go-insider"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

func main() {
	app := &cli.App{
		Name:  "insiderscan",
		Usage: "extract insider transaction records from SEC filing documents",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML config file"},
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "json", Usage: "output format: json or yaml"},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "only log errors"},
			&cli.BoolFlag{Name: "verbose", Usage: "log per-document extraction details"},
		},
		Commands: []*cli.Command{
			{
				Name:      "extract",
				Usage:     "extract a transaction record from one or more filing documents",
				ArgsUsage: "<file>...   (use - for stdin)",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "url", Usage: "source URL recorded on the output record"},
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "write the result to a file instead of stdout"},
					&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Usage: "concurrent extraction workers for multi-file runs"},
					&cli.StringFlag{Name: "cache-ttl", Usage: "memoize identical documents for this duration (e.g. 30m)"},
				},
				Action: extractAction,
			},
			{
				Name:      "inspect",
				Usage:     "parse a Form 3/4/5 ownership document into its full structured form",
				ArgsUsage: "<file>   (use - for stdin)",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "url", Usage: "source URL, used for filing metadata and file naming"},
					&cli.BoolFlag{Name: "save-original", Aliases: []string{"s"}, Usage: "save the original document next to the JSON output"},
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "output JSON file path (default: stdout)"},
				},
				Action: inspectAction,
			},
			{
				Name:      "classify",
				Usage:     "report the detected content class of each document",
				ArgsUsage: "<file>...   (use - for stdin)",
				Action:    classifyAction,
			},
			{
				Name:      "filings",
				Usage:     "list filings from a SEC submissions JSON file",
				ArgsUsage: "<submissions.json>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "form", Usage: "keep only filings with this exact form type (e.g. 4)"},
					&cli.BoolFlag{Name: "ownership", Usage: "keep only ownership forms 3, 4 and 5, amendments included"},
					&cli.StringFlag{Name: "from", Usage: "earliest filing date to keep (YYYY-MM-DD)"},
					&cli.StringFlag{Name: "to", Usage: "latest filing date to keep (YYYY-MM-DD)"},
					&cli.IntFlag{Name: "limit", Usage: "cap the number of filings returned"},
				},
				Action: filingsAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// fileConfig is the optional YAML config. Flags take precedence over
// config values, which take precedence over built-in defaults.
type fileConfig struct {
	Workers   int    `yaml:"workers"`
	Format    string `yaml:"format"`
	OutputDir string `yaml:"outputDir"`
	CacheTTL  string `yaml:"cacheTtl"`
}

func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func newLogger(c *cli.Context) *slog.Logger {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	if c.Bool("verbose") {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

type extractOutput struct {
	Records []*insider.RecordOutput `json:"records" yaml:"records"`
	Stats   extractStats            `json:"stats" yaml:"stats"`
}

type extractStats struct {
	Total       int                    `json:"total" yaml:"total"`
	Extracted   int                    `json:"extracted" yaml:"extracted"`
	Failed      int                    `json:"failed" yaml:"failed"`
	ByMethod    map[insider.Method]int `json:"byMethod" yaml:"byMethod"`
	TimeSeconds float64                `json:"timeSeconds" yaml:"timeSeconds"`
}

func extractAction(c *cli.Context) error {
	logger := newLogger(c)
	cfg, err := loadConfig(c.String("config"))
	if err != nil {
		return err
	}
	if c.NArg() < 1 {
		return fmt.Errorf("at least one filing document path required (use - for stdin)")
	}

	format := pickFormat(c, cfg)

	if c.NArg() == 1 {
		path := c.Args().First()
		data, err := readSource(path)
		if err != nil {
			return err
		}

		record := insider.ExtractFilingRecord(string(data))
		out := record.ToOutput()
		if src := sourceLabel(c.String("url"), path); src != "" {
			out.SetSource(src)
		}

		rendered, err := renderOutput(out, format)
		if err != nil {
			return err
		}
		return emit(rendered, c.String("output"))
	}

	docs := make([]insider.Document, 0, c.NArg())
	for _, path := range c.Args().Slice() {
		data, err := readSource(path)
		if err != nil {
			return err
		}
		docs = append(docs, insider.Document{ID: path, Content: string(data)})
	}

	opts := insider.BatchOptions{
		Workers: pickWorkers(c, cfg),
		Logger:  logger,
	}
	if ttl := pickCacheTTL(c, cfg); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return fmt.Errorf("invalid cache-ttl: %w", err)
		}
		opts.Cache = insider.NewResultCache(d)
	}

	result := insider.ExtractBatch(docs, opts)

	out := extractOutput{
		Records: make([]*insider.RecordOutput, 0, len(result.Items)),
		Stats: extractStats{
			Total:       len(result.Items),
			Extracted:   result.Extracted,
			Failed:      result.Failed,
			ByMethod:    result.ByMethod,
			TimeSeconds: result.Elapsed.Seconds(),
		},
	}
	for _, item := range result.Items {
		recordOut := item.Record.ToOutput()
		recordOut.SetSource(item.ID)
		out.Records = append(out.Records, recordOut)
	}

	rendered, err := renderOutput(out, format)
	if err != nil {
		return err
	}
	return emit(rendered, c.String("output"))
}

func inspectAction(c *cli.Context) error {
	logger := newLogger(c)
	cfg, err := loadConfig(c.String("config"))
	if err != nil {
		return err
	}
	if c.NArg() != 1 {
		return fmt.Errorf("exactly one ownership document path required (use - for stdin)")
	}

	path := c.Args().First()
	data, err := readSource(path)
	if err != nil {
		return err
	}

	var urlMeta *insider.FilingMetadata
	if source := c.String("url"); source != "" {
		urlMeta, err = insider.ExtractMetadataFromURL(source)
		if err != nil {
			logger.Warn("source URL carries no filing metadata", "url", source, "error", err)
		}
	}

	doc, err := insider.ParseOwnershipDocument(string(data))
	if err != nil {
		return fmt.Errorf("parse ownership document: %w", err)
	}

	out := doc.ToOutput()
	out.Source = sourceLabel(c.String("url"), path)

	meta := insider.MergeMetadata(urlMeta, insider.ExtractMetadataFromDocument(doc))

	saveOriginal := c.Bool("save-original")
	outputPath := c.String("output")

	if saveOriginal || outputPath != "" {
		opts := insider.SaveOptions{
			SaveOriginal: saveOriginal,
			OutputDir:    pickOutputDir(cfg),
			OutputPath:   outputPath,
		}
		if opts.OutputPath == "" {
			opts.OutputPath = insider.GenerateFilename(meta, "json")
		}

		result, err := insider.SaveFiles(data, out, meta, opts)
		if err != nil {
			return fmt.Errorf("save files: %w", err)
		}
		if result.OriginalPath != "" {
			fmt.Fprintf(os.Stderr, "Saved original document: %s\n", result.OriginalPath)
		}
		if result.OutputPath != "" {
			fmt.Fprintf(os.Stderr, "Saved JSON output: %s\n", result.OutputPath)
		}
		return nil
	}

	rendered, err := renderOutput(out, pickFormat(c, cfg))
	if err != nil {
		return err
	}
	fmt.Println(string(rendered))
	return nil
}

type classification struct {
	File  string               `json:"file" yaml:"file"`
	Class insider.ContentClass `json:"class" yaml:"class"`
}

func classifyAction(c *cli.Context) error {
	cfg, err := loadConfig(c.String("config"))
	if err != nil {
		return err
	}
	if c.NArg() < 1 {
		return fmt.Errorf("at least one document path required (use - for stdin)")
	}

	classes := make([]classification, 0, c.NArg())
	for _, path := range c.Args().Slice() {
		data, err := readSource(path)
		if err != nil {
			return err
		}
		classes = append(classes, classification{
			File:  path,
			Class: insider.ClassifyContent(string(data)),
		})
	}

	rendered, err := renderOutput(classes, pickFormat(c, cfg))
	if err != nil {
		return err
	}
	fmt.Println(string(rendered))
	return nil
}

type filingsOutput struct {
	CIK     string           `json:"cik" yaml:"cik"`
	Name    string           `json:"name" yaml:"name"`
	Count   int              `json:"count" yaml:"count"`
	Filings []insider.Filing `json:"filings" yaml:"filings"`
}

func filingsAction(c *cli.Context) error {
	cfg, err := loadConfig(c.String("config"))
	if err != nil {
		return err
	}
	if c.NArg() != 1 {
		return fmt.Errorf("exactly one submissions JSON path required")
	}

	data, err := readSource(c.Args().First())
	if err != nil {
		return err
	}

	subs, err := insider.ParseSubmissions(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("parse submissions: %w", err)
	}

	filings := subs.GetRecentFilings()
	if c.Bool("ownership") {
		filings = insider.OwnershipFilings(filings)
	}
	if form := c.String("form"); form != "" {
		filings = insider.FilterByForm(filings, form)
	}
	if c.IsSet("from") || c.IsSet("to") {
		filings = insider.FilterByDateRange(filings, c.String("from"), c.String("to"))
	}
	if limit := c.Int("limit"); limit > 0 && limit < len(filings) {
		filings = filings[:limit]
	}

	out := filingsOutput{
		CIK:     subs.CIK,
		Name:    subs.Name,
		Count:   len(filings),
		Filings: filings,
	}

	rendered, err := renderOutput(out, pickFormat(c, cfg))
	if err != nil {
		return err
	}
	fmt.Println(string(rendered))
	return nil
}

// readSource reads a document from a file path, or from stdin when the
// path is "-".
func readSource(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return data, nil
}

func renderOutput(v any, format string) ([]byte, error) {
	if strings.EqualFold(format, "yaml") {
		data, err := yaml.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("marshal YAML: %w", err)
		}
		return data, nil
	}
	return insider.FormatJSON(v)
}

func emit(data []byte, path string) error {
	if path == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// sourceLabel prefers an explicit URL over the local path; stdin input
// has no useful source label.
func sourceLabel(url, path string) string {
	if url != "" {
		return url
	}
	if path == "-" {
		return ""
	}
	return path
}

func pickFormat(c *cli.Context, cfg fileConfig) string {
	if c.IsSet("format") {
		return c.String("format")
	}
	if cfg.Format != "" {
		return cfg.Format
	}
	return c.String("format")
}

func pickWorkers(c *cli.Context, cfg fileConfig) int {
	if c.IsSet("workers") {
		return c.Int("workers")
	}
	return cfg.Workers
}

func pickCacheTTL(c *cli.Context, cfg fileConfig) string {
	if c.IsSet("cache-ttl") {
		return c.String("cache-ttl")
	}
	return cfg.CacheTTL
}

func pickOutputDir(cfg fileConfig) string {
	if cfg.OutputDir != "" {
		return cfg.OutputDir
	}
	return "./output"
}
