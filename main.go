// Package main provides the clickcount CLI: a local file counter and the
// upload server, both backed by the clicks package.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"clickcount/clicks"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const version = "1.0.0"

var (
	configPath string
	format     string
	addr       string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "clickcount",
		Short: "Count keywords by clicks in a search-performance export",
		Long: `clickcount reads a CSV (or .xlsx) export with a "Clicks" column and
reports the total row count and how many rows have at least / more than 10 clicks.`,
		Version:      version,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", DefaultConfigFile, "YAML config file")

	countCmd := &cobra.Command{
		Use:   "count [input.csv]",
		Short: "Count rows of a local file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runCount,
	}
	countCmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json, yaml")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the upload form",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, then "+DefaultAddr+")")

	rootCmd.AddCommand(countCmd, serveCmd)
	return rootCmd
}

func commandConfig(cmd *cobra.Command) (Config, error) {
	return loadConfig(configPath, cmd.Flags().Changed("config"))
}

func runCount(cmd *cobra.Command, args []string) error {
	switch format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("invalid format: %s (must be text, json, or yaml)", format)
	}

	cfg, err := commandConfig(cmd)
	if err != nil {
		return err
	}

	inputPath := cfg.InputPath
	if len(args) > 0 {
		inputPath = args[0]
	}
	if inputPath == "" {
		return fmt.Errorf("no input file: pass a path or set input_path in %s", configPath)
	}

	data, err := loadFile(inputPath)
	if err != nil {
		return err
	}

	// Structured formats keep stdout parseable, so diagnostics move to stderr.
	diag := cmd.OutOrStdout()
	if format != "text" {
		diag = cmd.ErrOrStderr()
	}
	tally := clicks.Count(data.Records(), func(raw string, err error) {
		fmt.Fprintf(diag, "Error parsing clicks: %s\n", raw)
	})

	return writeTally(cmd.OutOrStdout(), tally, format)
}

func writeTally(w io.Writer, t clicks.Tally, format string) error {
	switch format {
	case "text":
		fmt.Fprintf(w, "Total rows: %d\n", t.TotalRows)
		fmt.Fprintf(w, "Keywords with >= %d clicks: %d\n", clicks.Threshold, t.CountGTE10)
		fmt.Fprintf(w, "Keywords with > %d clicks: %d\n", clicks.Threshold, t.CountGT10)
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(t)
	case "yaml":
		out, err := yaml.Marshal(t)
		if err != nil {
			return fmt.Errorf("failed to marshal tally: %w", err)
		}
		_, err = w.Write(out)
		return err
	default:
		return fmt.Errorf("invalid format: %s (must be text, json, or yaml)", format)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := commandConfig(cmd)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Addr = addr
	}

	log.Printf("Server running on %s", cfg.Addr)
	return http.ListenAndServe(cfg.Addr, newMux(cfg))
}
