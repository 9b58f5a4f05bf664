package cmd

import (
	"fmt"
	"os"

	"github.com/pyneda/wsdlwizard/lib"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string
var debugLogging bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "wsdlwizard",
	Short: "Discover WSDL files from recorded HTTP history",
	Long: `wsdlwizard looks for WSDL service definitions of a target host.

It first lists the WSDL files already present in the recorded history and then
probes every other observed endpoint with a "?wsdl" request, confirming the
responses that look like a WSDL or SOAP definition.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml or /etc/wsdlwizard/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugLogging, "debug", false, "Use debug level logging")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		options := lib.LogOptions{
			Level: viper.GetString("logging.console.level"),
			Debug: debugLogging,
		}
		if viper.GetBool("logging.file.enabled") {
			options.FilePath = viper.GetString("logging.file.path")
		}
		if err := lib.ConfigureLogging(options, nil); err != nil {
			log.Error().Err(err).Msg("Error setting up log file, logging to console only")
		}
		return nil
	}
}

// initConfig reads the config file given through --config, if any.
func initConfig() {
	if cfgFile == "" {
		return
	}
	viper.SetConfigFile(cfgFile)
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "Could not read config file:", err)
		os.Exit(1)
	}
	log.Debug().Str("file", viper.ConfigFileUsed()).Msg("Using config file")
}
