package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/askcart/askcart/pkg/adapter"
	"github.com/askcart/askcart/pkg/answer"
	"github.com/askcart/askcart/pkg/config"
	"github.com/askcart/askcart/pkg/dataset"
	"github.com/askcart/askcart/pkg/resolver"
	"github.com/askcart/askcart/pkg/server"
	"github.com/askcart/askcart/pkg/store"
	"github.com/askcart/askcart/pkg/viz"
)

var configFile string

func main() {
	rootCmd := &cobra.Command{
		Use:   "askcart",
		Short: "Answer analytic questions over e-commerce sales data",
		Long: `Askcart answers free-text analytic questions over a fixed e-commerce
dataset. Questions are translated to SQL by a chat model with a
deterministic rule-table fallback, executed against SQLite, and
answered with text plus a generated chart.`,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to config file")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(askCmd())
	rootCmd.AddCommand(ingestCmd())
	rootCmd.AddCommand(rulesCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			st, err := store.Open(cfg.DatabasePath)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer st.Close()

			if err := st.CreateTables(cmd.Context()); err != nil {
				return err
			}

			renderer, err := viz.NewRenderer(cfg.VisualizationDir)
			if err != nil {
				return err
			}

			pipeline, err := buildPipeline(cfg)
			if err != nil {
				return err
			}

			srv := server.New(pipeline, st, renderer, cfg.Server.StaticDir)
			return srv.ListenAndServe(cfg.Server.Addr)
		},
	}
}

func askCmd() *cobra.Command {
	var showQuery bool

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Answer one question from the command line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			st, err := store.Open(cfg.DatabasePath)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer st.Close()

			pipeline, err := buildPipeline(cfg)
			if err != nil {
				return err
			}

			q := args[0]
			resolved, err := pipeline.Resolve(cmd.Context(), q)
			if err != nil {
				return err
			}

			if showQuery {
				fmt.Printf("Query (%s): %s\n\n", resolved.Source, resolved.Query)
			}

			result := st.Execute(cmd.Context(), resolved.Query)
			fmt.Println(answer.NewFormatter().Format(result, q))
			return nil
		},
	}

	cmd.Flags().BoolVar(&showQuery, "show-query", false, "print the resolved SQL query")
	return cmd
}

func ingestCmd() *cobra.Command {
	var table string

	cmd := &cobra.Command{
		Use:   "ingest [file...]",
		Short: "Load spreadsheet exports into the dataset",
		Long: `Creates the dataset tables if needed and loads one or more .xlsx or
.csv files into the table named by --table. The first row of each
file must be a header naming columns of that table.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if table == "" {
				return fmt.Errorf("--table is required")
			}

			cfg, err := config.Load(configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			st, err := store.Open(cfg.DatabasePath)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer st.Close()

			ctx := cmd.Context()
			if err := st.CreateTables(ctx); err != nil {
				return err
			}

			for _, path := range args {
				n, err := st.LoadFile(ctx, path, table)
				if err != nil {
					return fmt.Errorf("ingest %s: %w", path, err)
				}
				fmt.Printf("Loaded %d rows from %s into %s\n", n, path, table)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&table, "table", "", "target table name")
	return cmd
}

func rulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the fallback rule table and demo questions",
		RunE: func(cmd *cobra.Command, args []string) error {
			fr := resolver.NewFallbackResolver()

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "#\tPATTERN\tQUERY")
			for i, rule := range fr.Rules() {
				fmt.Fprintf(w, "%d\t%s\t%s\n", i+1, rule.Pattern, rule.Query)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Println("\nDemo questions:")
			for _, q := range dataset.ExampleQuestions() {
				fmt.Printf("  - %s\n", q)
			}
			return nil
		},
	}
}

// buildPipeline assembles the resolution pipeline from configuration.
// The read-only guard is installed here so neither resolver can hand a
// mutating statement to the executor.
func buildPipeline(cfg *config.Config) (*resolver.Pipeline, error) {
	var primary *resolver.PrimaryResolver
	a, err := buildAdapter(cfg)
	if err != nil {
		return nil, err
	}
	if a != nil {
		primary = resolver.NewPrimaryResolver(a, cfg.LLM.Model, cfg.LLM.Timeout)
	}

	return resolver.NewPipeline(primary, resolver.NewFallbackResolver(),
		resolver.WithGuard(store.ValidateQuery)), nil
}

// buildAdapter creates the configured model adapter, or nil when the
// primary resolver is disabled.
func buildAdapter(cfg *config.Config) (adapter.Adapter, error) {
	switch cfg.LLM.Adapter {
	case "", "none":
		return nil, nil
	case "ollama":
		return adapter.NewOllamaAdapter(cfg.LLM.Endpoint), nil
	case "openai":
		return adapter.NewOpenAIAdapter(cfg.OpenAIAPIKey)
	case "google":
		return adapter.NewGoogleAdapter(cfg.GoogleAPIKey)
	case "anthropic":
		return adapter.NewAnthropicAdapter(cfg.AnthropicAPIKey)
	case "mock":
		return adapter.NewMockAdapter(), nil
	}
	return nil, fmt.Errorf("unknown adapter %q", cfg.LLM.Adapter)
}
