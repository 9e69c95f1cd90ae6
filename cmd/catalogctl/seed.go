/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/suparena/storecatalog/registry"
	"github.com/suparena/storecatalog/storagemodels"
)

// seedFile is the YAML layout accepted by the seed command:
//
//	databases: [empty_db]
//	tables:
//	  - dbName: app
//	    tableName: ORDERS
//	    parameters:
//	      TABLETYPE: COLUMN
type seedFile struct {
	Databases []string                 `yaml:"databases"`
	Tables    []storagemodels.RawTable `yaml:"tables"`
}

func newSeedCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file.yaml>",
		Short: "Write databases and tables from a YAML file into the registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read seed file: %w", err)
			}
			var seed seedFile
			if err := yaml.Unmarshal(data, &seed); err != nil {
				return fmt.Errorf("failed to parse seed file %s: %w", args[0], err)
			}

			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			client, err := registry.Open(ctx, cfg.Registry)
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			for _, db := range seed.Databases {
				if err := client.CreateDatabase(ctx, db); err != nil {
					return err
				}
			}
			for _, t := range seed.Tables {
				if err := client.PutTable(ctx, t); err != nil {
					return err
				}
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "seeded %d databases and %d tables\n", len(seed.Databases), len(seed.Tables))
			return nil
		},
	}
}
