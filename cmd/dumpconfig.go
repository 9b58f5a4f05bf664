package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var dumpconfigWrite string

// dumpconfigCmd represents the dumpconfig command
var dumpconfigCmd = &cobra.Command{
	Use:   "dumpconfig",
	Short: "Dumps the effective configuration",
	Long:  `Prints the effective configuration as yaml, or writes it to a new file with --write.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if dumpconfigWrite != "" {
			if err := viper.SafeWriteConfigAs(dumpconfigWrite); err != nil {
				return fmt.Errorf("could not write config file: %w", err)
			}
			log.Info().Str("file", dumpconfigWrite).Msg("Config file written")
			return nil
		}
		out, err := yaml.Marshal(viper.AllSettings())
		if err != nil {
			return err
		}
		fmt.Print(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dumpconfigCmd)
	dumpconfigCmd.Flags().StringVar(&dumpconfigWrite, "write", "", "Write the configuration to this file instead of printing it")
}
