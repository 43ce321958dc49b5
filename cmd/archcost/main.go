package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/archcost/archcost/pkg/agents"
	"github.com/archcost/archcost/pkg/catalog"
	"github.com/archcost/archcost/pkg/config"
	"github.com/archcost/archcost/pkg/estimator"
	"github.com/archcost/archcost/pkg/llm"
	"github.com/archcost/archcost/pkg/models"
	"github.com/archcost/archcost/pkg/pipeline"
	"github.com/archcost/archcost/pkg/pricing"
	"github.com/archcost/archcost/pkg/reporter"
	"github.com/archcost/archcost/pkg/storage"

	"github.com/shopspring/decimal"
)

var (
	// Estimate flags
	inputFile    string
	region       string
	outputFormat string
	runTimeout   time.Duration
	saveResults  bool
	verbose      bool

	// History flags
	historyLimit int
	showRunID    string

	// Global config
	cfg *config.Config
)

func logVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Printf("[DEBUG] "+format+"\n", args...)
	}
}

func main() {
	cfg = config.NewConfig()

	rootCmd := &cobra.Command{
		Use:   "archcost",
		Short: "Azure architecture and pricing assistant",
		Long:  `Turn free-text customer requirements into a specification, an Azure architecture, and a pricing estimate backed by the Azure Retail Prices API.`,
	}

	estimateCmd := &cobra.Command{
		Use:   "estimate [requirements text]",
		Short: "Run the full pipeline on customer input",
		RunE:  runEstimate,
	}
	estimateCmd.Flags().StringVarP(&inputFile, "file", "f", "", "Read customer input from file (- for stdin)")
	estimateCmd.Flags().StringVar(&region, "region", "", "Default Azure region (overrides DEFAULT_REGION)")
	estimateCmd.Flags().StringVarP(&outputFormat, "output", "o", "", "Output format: text, markdown, json")
	estimateCmd.Flags().DurationVar(&runTimeout, "timeout", 0, "Whole-run timeout (overrides RUN_TIMEOUT)")
	estimateCmd.Flags().BoolVar(&saveResults, "save", false, "Save the report to the database")
	estimateCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the built-in demo scenarios",
		RunE:  runDemo,
	}
	demoCmd.Flags().StringVarP(&outputFormat, "output", "o", "", "Output format: text, markdown, json")
	demoCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the known Azure services",
		Run:   runCatalog,
	}

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "View past estimates",
		RunE:  runHistory,
	}
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "Number of runs to show")
	historyCmd.Flags().StringVar(&showRunID, "run", "", "Print the full report for one run ID")

	rootCmd.AddCommand(estimateCmd, demoCmd, catalogCmd, historyCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func buildPipeline() *pipeline.Pipeline {
	if region != "" {
		cfg.DefaultRegion = region
	}
	if runTimeout > 0 {
		cfg.RunTimeout = runTimeout
	}

	gen := llm.NewChatClient(cfg.ModelEndpoint, cfg.ModelAPIKey, cfg.ModelName, cfg.ModelTimeout)
	retail := pricing.NewRetailClient(cfg.PricingURL, cfg.PricingTimeout)
	priceClient := pricing.NewClient(retail, pricing.NewFallbackTable())

	est := estimator.NewWithThresholds(priceClient,
		decimal.NewFromFloat(cfg.ReservedThreshold),
		decimal.NewFromFloat(cfg.DevTestThreshold))

	return pipeline.New(
		agents.NewSpecBuilder(gen, cfg.DefaultRegion),
		agents.NewArchitectureBuilder(gen),
		est,
	).WithTimeout(cfg.RunTimeout)
}

func runEstimate(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	input, err := readInput(args)
	if err != nil {
		return err
	}

	logVerbose("model endpoint: %s, model: %s", cfg.ModelEndpoint, cfg.ModelName)
	logVerbose("default region: %s", cfg.DefaultRegion)

	report, err := buildPipeline().Run(context.Background(), input)
	if err != nil {
		return err
	}

	if err := writeReport(report); err != nil {
		return err
	}

	if saveResults || cfg.StorageEnabled {
		store, err := storage.NewPostgresStore(cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("connect storage: %w", err)
		}
		defer store.Close()
		if err := store.SaveReport(context.Background(), report); err != nil {
			return err
		}
		fmt.Printf("Saved run %s\n", report.RunID)
	}
	return nil
}

var demoScenarios = []struct {
	name  string
	input string
}{
	{
		name: "E-Commerce Web Application",
		input: `We need to build an e-commerce web application for our retail business.
Support for 50,000 active users, product catalog with search, shopping cart
and checkout, user authentication, order management, payment gateway
integration, and an admin dashboard. High availability matters, budget
conscious, prefer US East, must be PCI-DSS compliant, and we need to scale
for Black Friday traffic.`,
	},
	{
		name: "IoT Data Processing Platform",
		input: `We are building an IoT data processing platform for smart building
management: 10,000+ devices, one million events per hour, stream processing
for anomaly detection, five years of historical storage, a REST API for the
mobile app, dashboards, multi-tenant across 100 buildings, 99.9% uptime,
data must stay within the US.`,
	},
	{
		name: "Simple Corporate Website",
		input: `Need a corporate website to replace our outdated on-premises server.
Company information pages, a blog with a few posts per week, a contact form,
around 5,000 visitors per month, SSL, fully managed preferred.`,
	},
}

func runDemo(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	p := buildPipeline()
	for _, scenario := range demoScenarios {
		fmt.Printf("\n=== DEMO: %s ===\n", scenario.name)
		report, err := p.Run(context.Background(), scenario.input)
		if err != nil {
			fmt.Printf("scenario failed: %v\n", err)
			continue
		}
		if err := writeReport(report); err != nil {
			return err
		}
	}
	return nil
}

func runCatalog(cmd *cobra.Command, args []string) {
	for _, name := range catalog.Names() {
		entry, _ := catalog.Lookup(name)
		fmt.Printf("%s [%s]\n  %s\n  SKUs: %s\n", entry.Name, entry.Category, entry.Description, strings.Join(entry.SKUs, ", "))
	}
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := storage.NewPostgresStore(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect storage: %w", err)
	}
	defer store.Close()

	if showRunID != "" {
		report, err := store.GetReport(context.Background(), showRunID)
		if err != nil {
			return err
		}
		return writeReport(report)
	}

	runs, err := store.ListRuns(context.Background(), historyLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No saved runs.")
		return nil
	}
	for _, run := range runs {
		fmt.Printf("%s  %-40s %s  $%s/month  (%d services)\n",
			run.CreatedAt.Format("2006-01-02 15:04"), run.ProjectTitle, run.Region,
			run.TotalMonthly.StringFixed(2), run.ServiceCount)
	}
	return nil
}

func readInput(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	switch inputFile {
	case "":
		return "", fmt.Errorf("provide requirements as an argument or with --file")
	case "-":
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(data), nil
	default:
		data, err := os.ReadFile(inputFile)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
}

func writeReport(report *models.Report) error {
	format := cfg.OutputFormat
	if outputFormat != "" {
		format = outputFormat
	}
	return reporter.New(reporter.Format(format)).Write(os.Stdout, report)
}
