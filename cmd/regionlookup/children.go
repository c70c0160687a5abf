package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/unkn0wn-root/asidecache/region"
	"github.com/unkn0wn-root/asidecache/region/pgsource"
)

func (a *app) childrenCmd() *cobra.Command {
	var pretty bool
	cmd := &cobra.Command{
		Use:   "children <parent-id>",
		Short: "Print the child regions of a parent as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parentID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("parent id %q: %w", args[0], err)
			}
			cfg, logger, err := a.load()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx := cmd.Context()
			src, err := pgsource.Open(ctx, cfg.Postgres.DSN, cfg.Postgres.Schema)
			if err != nil {
				return err
			}
			defer src.Close()

			lk, err := newLookup(ctx, cfg, logger)
			if err != nil {
				return err
			}
			svc, err := region.NewService(lk, src)
			if err != nil {
				return err
			}
			defer func() {
				if err := svc.Close(ctx); err != nil {
					logger.Warn("close lookup", zap.Error(err))
				}
			}()

			regions, err := svc.Children(ctx, parentID)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			if pretty {
				enc.SetIndent("", "  ")
			}
			return enc.Encode(regions)
		},
	}
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent output")
	return cmd
}
