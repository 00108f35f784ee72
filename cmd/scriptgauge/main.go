package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/scriptgauge/scriptgauge/internal/fountain"
	"github.com/scriptgauge/scriptgauge/internal/paginate"
	"github.com/scriptgauge/scriptgauge/internal/report"
	"github.com/scriptgauge/scriptgauge/internal/source"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "scriptgauge",
		Short: "Screenplay page-count estimator",
		Long: `Scriptgauge parses Fountain-formatted screenplays and estimates
their page count using industry-standard formatting rules.

It reads .fountain, .spmd, .txt, .pdf, .docx and .html files.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(countCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(titleCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func countCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "count <file>...",
		Short: "Estimate the page count of one or more screenplays",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			linesPerPage, _ := cmd.Flags().GetInt("lines-per-page")
			charsPerInch, _ := cmd.Flags().GetFloat64("chars-per-inch")

			opts := paginate.DefaultOptions()
			if linesPerPage > 0 {
				opts.LinesPerPage = linesPerPage
			}
			if charsPerInch > 0 {
				opts.CharsPerInch = charsPerInch
			}

			var firstErr error
			for _, path := range args {
				doc, err := parseFile(path)
				if err != nil {
					fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
					if firstErr == nil {
						firstErr = err
					}
					continue
				}
				fmt.Printf("%s: %d\n", path, paginate.Count(doc, opts))
			}
			return firstErr
		},
	}
	cmd.Flags().Int("lines-per-page", 0, "override lines per page (default 55)")
	cmd.Flags().Float64("chars-per-inch", 0, "override characters per inch (default 12)")
	return cmd
}

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report <file>",
		Short: "Print a breakdown report for a screenplay",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asHTML, _ := cmd.Flags().GetBool("html")

			doc, err := parseFile(args[0])
			if err != nil {
				return err
			}
			pages := paginate.Count(doc, paginate.DefaultOptions())
			md := report.Build(doc, pages).Markdown()

			if asHTML {
				html, err := report.RenderHTML(md)
				if err != nil {
					return fmt.Errorf("render html: %w", err)
				}
				fmt.Print(html)
				return nil
			}
			fmt.Print(md)
			return nil
		},
	}
	cmd.Flags().Bool("html", false, "render the report as HTML")
	return cmd
}

func titleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "title <file>",
		Short: "Print the title page entries of a screenplay",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := parseFile(args[0])
			if err != nil {
				return err
			}
			if len(doc.TitlePage) == 0 {
				fmt.Println("no title page")
				return nil
			}
			printTitlePage(os.Stdout, doc.TitlePage)
			return nil
		},
	}
}

// printTitlePage writes one line per value, with continuation values
// indented under their key. A key with no value lines still prints.
func printTitlePage(w io.Writer, entries []fountain.TitleEntry) {
	for _, entry := range entries {
		if len(entry.Values) == 0 {
			fmt.Fprintf(w, "%s:\n", entry.Key)
			continue
		}
		for i, v := range entry.Values {
			if i == 0 {
				fmt.Fprintf(w, "%s: %s\n", entry.Key, v)
			} else {
				fmt.Fprintf(w, "%*s  %s\n", len(entry.Key)+1, "", v)
			}
		}
	}
}

func parseFile(path string) (*fountain.Document, error) {
	dec, err := source.ForFile(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	text, err := dec.Decode(bytes.NewReader(data), path)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	// The CLI keeps parser diagnostics quiet.
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return fountain.ParseWithLogger(text, log), nil
}
