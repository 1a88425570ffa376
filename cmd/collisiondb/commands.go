package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/collisiondb/collisiondb/internal/config"
	"github.com/collisiondb/collisiondb/internal/conn"
	"github.com/collisiondb/collisiondb/internal/loader"
	"github.com/collisiondb/collisiondb/internal/schema"
	"github.com/collisiondb/collisiondb/internal/store"
	"github.com/collisiondb/collisiondb/pkg"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "collisiondb",
		Short:         "In-memory query service for NYC motor vehicle collisions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newValidateCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var config_path string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Load the collision data and serve queries",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(config_path, cmd.Flags())
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&config_path, "config", "c", "", "path to a YAML config file")
	flags.Int("server.port", 50051, "listening port")
	flags.Int("server.workers", 64, "maximum requests executed at once")
	flags.Duration("server.request_timeout", 30*time.Second, "per-request timeout")
	flags.String("data.path", "", "path to the collision data")
	flags.String("data.format", "csv", "data format: csv or sqlite")
	flags.String("data.table", loader.DefaultTable, "table to read in sqlite mode")
	flags.Bool("data.watch", false, "reload when the data file changes")
	flags.Int("data.partition.rank", 0, "rank of the csv partition to load")
	flags.Int("data.partition.total", 0, "number of csv partitions")
	flags.Int("query.parallelism", 0, "partitions scanned per query (0 = GOMAXPROCS)")
	flags.Int("query.cache_size", 256, "cached query results (0 disables)")
	flags.String("log.level", "info", "none, error, info or debug")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	level, _ := pkg.ParseLogLevel(cfg.Log.Level)
	pkg.SetLogLevel(level)

	l, err := cfg.Loader()
	if err != nil {
		return err
	}

	s := store.New()
	if _, err := loader.Reload(ctx, l, s); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if cfg.Data.Watch {
		w, err := loader.NewWatcher(l, s)
		if err != nil {
			return err
		}
		go w.Run(ctx)
		pkg.InfoLog("watching", l.Source(), "for changes")
	}

	svc, err := conn.NewService(s, conn.ServiceOptions{
		Parallelism: cfg.Query.Parallelism,
		CacheSize:   cfg.Query.CacheSize,
	})
	if err != nil {
		return err
	}

	server, err := conn.NewServer(svc, conn.ServerOptions{
		Workers:        cfg.Server.Workers,
		RequestTimeout: cfg.Server.RequestTimeout,
	})
	if err != nil {
		return err
	}
	return server.Listen(ctx, cfg.Server.Port)
}

func newValidateCmd() *cobra.Command {
	var format, table string
	cmd := &cobra.Command{
		Use:   "validate <path>",
		Short: "Parse a collision data file and report what would be loaded",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}

			var l loader.Loader
			switch config.DataFormat(format) {
			case config.DataFormatCSV:
				l = loader.NewCSVLoader(path, loader.Partition{})
			case config.DataFormatSQLite:
				l = loader.NewSQLiteLoader(path, table)
			default:
				return fmt.Errorf("Invalid format %q", format)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Checking %s for errors\n", path)

			records, err := l.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("Invalid data; %w", err)
			}

			present := make([]int, schema.FieldCount)
			for _, r := range records {
				for _, f := range schema.All() {
					if r.Get(f).Present() {
						present[f]++
					}
				}
			}

			fmt.Fprintf(out, "%s records\n", humanize.Comma(int64(len(records))))
			for _, f := range schema.All() {
				fmt.Fprintf(out, "  %-31s %s\n", f, humanize.Comma(int64(present[f])))
			}
			fmt.Fprintln(out, "Data checks successful")
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "csv", "data format: csv or sqlite")
	cmd.Flags().StringVar(&table, "table", loader.DefaultTable, "table to read in sqlite mode")
	return cmd
}
