package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/denisok6893-rgb/warehouse-grading/internal/app"
	"github.com/denisok6893-rgb/warehouse-grading/internal/catalog"
	"github.com/denisok6893-rgb/warehouse-grading/internal/config"
	"github.com/denisok6893-rgb/warehouse-grading/internal/evaluation"
	"github.com/denisok6893-rgb/warehouse-grading/internal/logging"
	"github.com/denisok6893-rgb/warehouse-grading/internal/storage"
)

type options struct {
	catalogPath string
}

// service builds a throwaway grading service backed by an in-memory store.
func (o *options) service() (*evaluation.Service, error) {
	cat := catalog.Default()
	if o.catalogPath != "" {
		loaded, err := catalog.LoadFromFile(o.catalogPath)
		if err != nil {
			return nil, err
		}
		cat = loaded
	}
	return evaluation.NewService(cat, storage.NewMemoryStore()), nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:          "grader",
		Short:        "Grade warehouse properties against business-type templates",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.catalogPath, "catalog", "", "template catalog file (default: built-in templates)")

	rootCmd.AddCommand(templatesCmd(opts))
	rootCmd.AddCommand(gradeCmd(opts))
	rootCmd.AddCommand(batchCmd(opts))
	rootCmd.AddCommand(serveCmd())
	return rootCmd
}

func templatesCmd(opts *options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List business types and their weighted parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := opts.service()
			if err != nil {
				return err
			}
			return runTemplates(cmd.OutOrStdout(), svc, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func gradeCmd(opts *options) *cobra.Command {
	var (
		businessType string
		specPath     string
		asJSON       bool
	)

	cmd := &cobra.Command{
		Use:   "grade",
		Short: "Grade one property specification",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := opts.service()
			if err != nil {
				return err
			}
			return runGrade(cmd.Context(), cmd.OutOrStdout(), svc, businessType, specPath, asJSON)
		},
	}

	cmd.Flags().StringVarP(&businessType, "type", "t", "", "business type")
	cmd.Flags().StringVarP(&specPath, "spec", "s", "", "YAML or JSON specification file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("spec")
	return cmd
}

func batchCmd(opts *options) *cobra.Command {
	var (
		businessType string
		specsPath    string
		asJSON       bool
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Grade a list of specifications and rank them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := opts.service()
			if err != nil {
				return err
			}
			return runBatch(cmd.Context(), cmd.OutOrStdout(), svc, businessType, specsPath, asJSON)
		},
	}

	cmd.Flags().StringVarP(&businessType, "type", "t", "", "business type")
	cmd.Flags().StringVar(&specsPath, "specs", "", "YAML or JSON list of specifications")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("specs")
	return cmd
}

func serveCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the grading HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			a, err := app.New(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			srv := &http.Server{Addr: cfg.HTTP.Address, Handler: a.Server.Routes()}
			go func() {
				<-cmd.Context().Done()
				_ = srv.Close()
			}()

			a.Log.Info("API listening", logging.String("address", cfg.HTTP.Address))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", os.Getenv("WGRADE_CONFIG"), "YAML config file")
	return cmd
}
