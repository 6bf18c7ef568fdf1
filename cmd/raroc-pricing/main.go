package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/iwvelando/raroc-pricing/internal/config"
	"github.com/iwvelando/raroc-pricing/pkg/cashflow"
	"github.com/iwvelando/raroc-pricing/pkg/constants"
	"github.com/iwvelando/raroc-pricing/pkg/output"
	"github.com/iwvelando/raroc-pricing/pkg/validation"
	"go.uber.org/zap"
)

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	// Initialize logging based on config and CLI override
	logger, err := config.NewLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	err = validation.ValidateOutputFormat(outputFormat)
	if err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	// Validate configuration and display any warnings
	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	// Price every configured loan.
	results := make([]output.Result, 0, len(conf.Loans))
	for _, loan := range conf.Loans {
		params := loan.Parameters()

		rows, err := cashflow.GenerateSchedule(params)
		if err != nil {
			if errors.Is(err, cashflow.ErrInvalidInput) {
				logger.Fatal("invalid loan parameters",
					zap.String("op", "main"),
					zap.String("loanId", params.LoanID),
					zap.Error(err),
				)
			}
			logger.Fatal("failed to generate schedule",
				zap.String("op", "main"),
				zap.String("loanId", params.LoanID),
				zap.Error(err),
			)
		}

		payment, err := cashflow.MonthlyPayment(params.Principal, params.AnnualRate, params.TermMonths)
		if err != nil {
			logger.Fatal("failed to compute monthly payment",
				zap.String("op", "main"),
				zap.String("loanId", params.LoanID),
				zap.Error(err),
			)
		}

		results = append(results, output.Result{
			Params:  params,
			Payment: payment,
			Rows:    rows,
			Summary: cashflow.Summarize(rows),
		})
	}

	// Handle output.
	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(results)
	case constants.OutputFormatCSV:
		output.CsvFormat(results)
	}
}
