package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vladsolntsev/weblog/internal/blog"
	"github.com/vladsolntsev/weblog/internal/config"
	"github.com/vladsolntsev/weblog/internal/export"
	"github.com/vladsolntsev/weblog/internal/server"
)

var (
	cfgFile string
	watch   bool
)

var rootCmd = &cobra.Command{
	Use:   "weblog",
	Short: "A plain-text weblog",
	Long: `weblog serves a directory tree of .txt files as a fixed-width
plain-text blog: home page, posts, category and date archives, a random
post, RSS, Atom and a sitemap.`,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the weblog over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer log.Sync()

		repo := blog.NewFileRepository(cfg.ContentDir)
		return server.New(cfg, repo, log).ListenAndServe()
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the whole weblog to a directory as static files",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer log.Sync()

		e := export.New(cfg, blog.NewFileRepository(cfg.ContentDir), log)
		if err := e.Run(); err != nil {
			return err
		}
		if watch {
			return e.Watch()
		}
		return nil
	},
}

func setup() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return config.Config{}, nil, err
	}
	log, err := zap.NewProduction()
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, log, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./weblog.yaml)")
	exportCmd.Flags().BoolVar(&watch, "watch", false, "keep running and re-export on content changes")
	rootCmd.AddCommand(serveCmd, exportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
