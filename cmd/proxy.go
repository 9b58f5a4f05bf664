package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pyneda/wsdlwizard/pkg/proxy"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var proxyHost string
var proxyPort int
var proxyVerbose bool
var proxyWorkspaceID uint

// proxyCmd represents the proxy command
var proxyCmd = &cobra.Command{
	Use:   "proxy",
	Short: "Starts a recording proxy server",
	Long:  `Starts a proxy server that stores every proxied request and response in a workspace, building the history used for wsdl discovery.`,
	Run: func(cmd *cobra.Command, args []string) {
		workspaceID, ok := ensureWorkspace(proxyWorkspaceID)
		if !ok {
			os.Exit(1)
		}
		if !cmd.Flags().Changed("host") {
			proxyHost = viper.GetString("proxy.host")
		}
		if !cmd.Flags().Changed("port") {
			proxyPort = viper.GetInt("proxy.port")
		}

		p := proxy.Proxy{
			Host:        proxyHost,
			Port:        proxyPort,
			Verbose:     proxyVerbose,
			WorkspaceID: workspaceID,
			CACertFile:  viper.GetString("proxy.ca.cert"),
			CAKeyFile:   viper.GetString("proxy.ca.key"),
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := p.Run(ctx); err != nil {
			log.Error().Err(err).Msg("Proxy failed")
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(proxyCmd)
	proxyCmd.Flags().UintVarP(&proxyWorkspaceID, "workspace", "w", 0, "Workspace to save requests to")
	proxyCmd.Flags().StringVarP(&proxyHost, "host", "H", "localhost", "Proxy host")
	proxyCmd.Flags().IntVarP(&proxyPort, "port", "p", 8008, "Proxy port")
	proxyCmd.Flags().BoolVarP(&proxyVerbose, "verbose", "v", false, "Verbose logging")
}
