/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Command catalogctl inspects and seeds a catalog registry.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/suparena/storecatalog"
	"github.com/suparena/storecatalog/config"
	_ "github.com/suparena/storecatalog/datastore/ddb"      // dynamodb driver
	_ "github.com/suparena/storecatalog/datastore/sqlstore" // sqlite driver
)

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// globals are the persistent flags shared by every subcommand.
type globals struct {
	configPath string
	driver     string
	dsn        string
	output     string
	skipLocks  bool
	verbose    bool
}

func execute(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	g := &globals{}

	root := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Inspect and seed a catalog registry",
		Long:          "Command-line access to the catalog: table lookups, kinds, schemas, metadata and enumeration.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "YAML configuration file")
	root.PersistentFlags().StringVar(&g.driver, "driver", "", "Registry driver (overrides config)")
	root.PersistentFlags().StringVar(&g.dsn, "dsn", "", "Registry DSN for the sqlite driver (overrides config)")
	root.PersistentFlags().StringVarP(&g.output, "output", "o", "text", "Output format: text, json, yaml")
	root.PersistentFlags().BoolVar(&g.skipLocks, "skip-locks", false, "Ask the host to skip locking while commands run")
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Log catalog commands to stderr")

	root.AddCommand(
		newVersionCmd(g),
		newGetCmd(g),
		newDescribeCmd(g),
		newSchemaCmd(g),
		newKindCmd(g),
		newTablesCmd(g),
		newExternalCmd(g),
		newDropCmd(g),
		newSeedCmd(g),
	)
	return root
}

// loadConfig reads the configuration and applies flag overrides.
func (g *globals) loadConfig() (config.Config, error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return cfg, err
	}
	if g.driver != "" {
		cfg.Registry.Driver = g.driver
	}
	if g.dsn != "" {
		cfg.Registry.DSN = g.dsn
	}
	return cfg, cfg.Validate()
}

func (g *globals) logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if g.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// withCatalog opens a catalog, runs fn and stops the catalog.
func (g *globals) withCatalog(cmd *cobra.Command, fn func(ctx context.Context, cat *storecatalog.Catalog) error) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cat, err := storecatalog.New(ctx, cfg, storecatalog.WithLogger(g.logger(cmd)))
	if err != nil {
		return err
	}
	defer cat.Stop(ctx)
	return fn(ctx, cat)
}
