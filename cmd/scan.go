package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pyneda/wsdlwizard/db"
	"github.com/pyneda/wsdlwizard/lib"
	"github.com/pyneda/wsdlwizard/pkg/discovery"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const (
	exitDiscovered = 0
	exitError      = 1
	exitNothing    = 2
)

var scanURL string
var scanHistoryID uint
var scanWorkspaceID uint
var scanConcurrency int
var scanTimeout int
var scanMessageLimit int
var scanSession bool
var scanRequireOK bool
var scanRPS float64
var scanFormat string
var scanNoSave bool

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Discover wsdl files of a target",
	Long: `Lists the wsdl files already present in the recorded history of the target
and probes every other observed endpoint with a "?wsdl" request.

The target is given either as a url or as the id of a recorded request, which
must have a response. Exits with 0 when any wsdl file is found or confirmed,
2 when none is and 1 on error.`,
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(runScan(cmd))
	},
}

func runScan(cmd *cobra.Command) int {
	formatType, err := lib.ParseFormatType(scanFormat)
	if err != nil {
		log.Error().Err(err).Msg("Invalid output format")
		return exitError
	}

	var target discovery.Target
	workspaceID := scanWorkspaceID
	switch {
	case scanHistoryID > 0:
		history, err := db.Connection().GetHistory(scanHistoryID)
		if err != nil {
			log.Error().Err(err).Uint("id", scanHistoryID).Msg("Could not load history item")
			return exitError
		}
		target, err = discovery.TargetFromTransaction(history)
		if err != nil {
			log.Error().Err(err).Uint("id", scanHistoryID).Msg("Cannot start discovery from this history item")
			return exitError
		}
		if !cmd.Flags().Changed("workspace") && history.WorkspaceID != nil {
			workspaceID = *history.WorkspaceID
		}
	case scanURL != "":
		target, err = discovery.TargetFromURL(scanURL)
		if err != nil {
			log.Error().Err(err).Str("url", scanURL).Msg("Cannot start discovery for this url")
			return exitError
		}
	default:
		log.Error().Msg("Either --url or --history-id should be provided")
		return exitError
	}

	workspaceID, ok := ensureWorkspace(workspaceID)
	if !ok {
		return exitError
	}

	options := discovery.OptionsFromConfig()
	options.WorkspaceID = workspaceID
	if cmd.Flags().Changed("concurrency") {
		options.Concurrency = scanConcurrency
	}
	if cmd.Flags().Changed("timeout") {
		options.Timeout = time.Duration(scanTimeout) * time.Second
	}
	if cmd.Flags().Changed("limit") {
		options.MessageLimit = scanMessageLimit
	}
	if cmd.Flags().Changed("rps") {
		options.RateLimit = scanRPS
	}
	if cmd.Flags().Changed("require-200") {
		options.RequireOK = scanRequireOK
	}
	if cmd.Flags().Changed("session") {
		options.Strategy = discovery.StrategyDirect
		if scanSession {
			options.Strategy = discovery.StrategySession
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	collaborator := discovery.NewHistoryCollaborator(db.Connection(), workspaceID)
	report, err := discovery.Run(ctx, collaborator, target, options)
	if err != nil {
		log.Error().Err(err).Str("target", target.Origin()).Msg("Wsdl discovery failed")
		return exitError
	}

	if !scanNoSave {
		record, err := db.Connection().CreateWsdlDiscovery(report.Record(workspaceID))
		if err != nil {
			log.Error().Err(err).Msg("Could not store discovery report")
		} else {
			log.Info().Str("id", record.ID.String()).Msg("Discovery report stored")
		}
	}

	output, err := lib.FormatSingleOutput(*report, formatType)
	if err != nil {
		log.Error().Err(err).Msg("Could not format report")
		return exitError
	}
	fmt.Println(output)

	if report.Discovered() {
		return exitDiscovered
	}
	return exitNothing
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().StringVarP(&scanURL, "url", "u", "", "Target url, only its scheme, host and port are used")
	scanCmd.Flags().UintVar(&scanHistoryID, "history-id", 0, "Start from a recorded request, which must have a response")
	scanCmd.Flags().UintVarP(&scanWorkspaceID, "workspace", "w", 0, "Workspace ID (defaults to the workspace of the history item or the default workspace)")
	scanCmd.Flags().IntVarP(&scanConcurrency, "concurrency", "c", discovery.DefaultConcurrency, "Number of concurrent probes")
	scanCmd.Flags().IntVarP(&scanTimeout, "timeout", "t", 10, "Probe timeout in seconds")
	scanCmd.Flags().IntVar(&scanMessageLimit, "limit", 1024, "Number of leading response bytes inspected")
	scanCmd.Flags().BoolVar(&scanSession, "session", false, "Replay the session (cookies, authorization) known for the target")
	scanCmd.Flags().BoolVar(&scanRequireOK, "require-200", false, "Only inspect probe responses with status 200")
	scanCmd.Flags().Float64Var(&scanRPS, "rps", 0, "Maximum probe requests per second, 0 disables the limit")
	scanCmd.Flags().StringVarP(&scanFormat, "format", "f", "pretty", "Output format (json, yaml, text, pretty, table)")
	scanCmd.Flags().BoolVar(&scanNoSave, "no-save", false, "Do not store the discovery report")
}
