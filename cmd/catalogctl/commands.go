/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/suparena/storecatalog"
)

func newVersionCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := storecatalog.GetVersionInfo()
			if g.output != "text" {
				return printStructured(cmd, g.output, info)
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "catalogctl version %s\n", info.Version)
			_, _ = fmt.Fprintf(out, "Git commit: %s\n", info.GitCommit)
			_, _ = fmt.Fprintf(out, "Build date: %s\n", info.BuildDate)
			_, _ = fmt.Fprintf(out, "Go version: %s\n", info.GoVersion)
			return nil
		},
	}
}

func newGetCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:     "get <schema> <table>",
		Short:   "Print a table's registry record",
		Example: "  catalogctl get app orders --output yaml",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.withCatalog(cmd, func(ctx context.Context, cat *storecatalog.Catalog) error {
				tbl, err := cat.GetTable(ctx, args[0], args[1], g.skipLocks)
				if err != nil {
					return err
				}
				if tbl == nil {
					return fmt.Errorf("table %s.%s not found", args[0], args[1])
				}
				return printValue(cmd, g.output, tbl)
			})
		},
	}
}

func newDescribeCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "describe <schema> <table>",
		Short: "Print the assembled metadata of a table",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.withCatalog(cmd, func(ctx context.Context, cat *storecatalog.Catalog) error {
				md, err := cat.HiveTableMetaData(ctx, args[0], args[1], g.skipLocks)
				if err != nil {
					return err
				}
				if g.output != "text" {
					return printStructured(cmd, g.output, md)
				}
				out := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(out, "Table:            %s\n", md.EntityName)
				_, _ = fmt.Fprintf(out, "Type:             %s\n", md.TableType)
				_, _ = fmt.Fprintf(out, "Batch size:       %d\n", md.ColumnBatchSize)
				_, _ = fmt.Fprintf(out, "Max delta rows:   %d\n", md.ColumnMaxDeltaRows)
				_, _ = fmt.Fprintf(out, "Compression:      %s\n", md.CompressionCodec)
				_, _ = fmt.Fprintf(out, "Partitions:       %d\n", md.StoreHandle.Partitions)
				_, _ = fmt.Fprintf(out, "Insert DML:       %s\n", md.DML)
				for _, col := range md.Columns {
					_, _ = fmt.Fprintf(out, "  %3d %-24s %s\n", col.Position, col.Name, col.TypeName)
				}
				return nil
			})
		},
	}
}

func newSchemaCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "schema <schema> <table>",
		Short: "Print the stored schema JSON of a table",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.withCatalog(cmd, func(ctx context.Context, cat *storecatalog.Catalog) error {
				text, ok, err := cat.ColumnTableSchemaJSON(ctx, args[0], args[1], g.skipLocks)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("no schema stored for %s.%s", args[0], args[1])
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), text)
				return nil
			})
		},
	}
}

func newKindCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "kind <schema> <table>",
		Short: "Print whether a table is a row or column table",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.withCatalog(cmd, func(ctx context.Context, cat *storecatalog.Catalog) error {
				row, err := cat.IsRowTable(ctx, args[0], args[1], g.skipLocks)
				if err != nil {
					return err
				}
				kind := "column"
				if row {
					kind = "row"
				}
				return printValue(cmd, g.output, map[string]string{"table": args[0] + "." + args[1], "kind": kind})
			})
		},
	}
}

func newTablesCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List the store-managed tables of every database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return g.withCatalog(cmd, func(ctx context.Context, cat *storecatalog.Catalog) error {
				all, err := cat.AllStoreTablesInCatalog(ctx, g.skipLocks)
				if err != nil {
					return err
				}
				if g.output != "text" {
					return printStructured(cmd, g.output, all)
				}
				dbs := make([]string, 0, len(all))
				for db := range all {
					dbs = append(dbs, db)
				}
				sort.Strings(dbs)
				out := cmd.OutOrStdout()
				for _, db := range dbs {
					_, _ = fmt.Fprintf(out, "%s: %s\n", db, strings.Join(all[db], ", "))
				}
				return nil
			})
		},
	}
}

func newExternalCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "external",
		Short: "List tables whose data lives outside the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return g.withCatalog(cmd, func(ctx context.Context, cat *storecatalog.Catalog) error {
				tables, err := cat.NonStoreTables(ctx, g.skipLocks)
				if err != nil {
					return err
				}
				if g.output != "text" {
					return printStructured(cmd, g.output, tables)
				}
				out := cmd.OutOrStdout()
				for _, t := range tables {
					_, _ = fmt.Fprintf(out, "%s.%s\t%s\t%s\n", t.SchemaName, t.EntityName, t.TableType, t.Provider)
				}
				return nil
			})
		},
	}
}

func newDropCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "drop <schema> <table>",
		Short: "Remove a table from the registry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.withCatalog(cmd, func(ctx context.Context, cat *storecatalog.Catalog) error {
				removed, err := cat.RemoveTable(ctx, args[0], args[1], g.skipLocks)
				if err != nil {
					return err
				}
				if !removed {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s.%s did not exist\n", args[0], args[1])
					return nil
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "dropped %s.%s\n", args[0], args[1])
				return nil
			})
		},
	}
}
