// Package commands implements the fixflow CLI
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fixflow/fixflow/internal/api/v1/client"
)

// flag names
const (
	flagServerAddress = "server-address"
	flagBusiness      = "business"
)

// environment variable names
const (
	envServerAddress = "FIXFLOW_SERVER_ADDRESS"
	envBusiness      = "FIXFLOW_BUSINESS_ID"
)

// DefaultBaseURL is the API address used when neither flag nor env var is set
const DefaultBaseURL = "http://localhost:8080"

var (
	// apiClient is the shared API client instance
	apiClient *client.Client

	serverAddress string
	businessID    uint
)

func init() {
	RootCmd.PersistentFlags().StringVarP(&serverAddress, flagServerAddress, "s", DefaultBaseURL,
		"Address of the fixflow API server (env: "+envServerAddress+")")
	RootCmd.PersistentFlags().UintVarP(&businessID, flagBusiness, "b", 0,
		"Business ID to scope requests to (env: "+envBusiness+")")

	RootCmd.AddCommand(GetJobsCmd())
	RootCmd.AddCommand(GetAnalyticsCmd())
}

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "fixflow",
	Short: "fixflow CLI - A command line interface for the fixflow API",
	Long:  `fixflow CLI is a command line tool for managing repair jobs through the fixflow API.`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if !cmd.Flags().Changed(flagServerAddress) {
			if envAddr := os.Getenv(envServerAddress); envAddr != "" {
				serverAddress = envAddr
			}
		}
		if !cmd.Flags().Changed(flagBusiness) {
			if envBiz := os.Getenv(envBusiness); envBiz != "" {
				if _, err := fmt.Sscanf(envBiz, "%d", &businessID); err != nil {
					return fmt.Errorf("invalid %s: %w", envBusiness, err)
				}
			}
		}
		if businessID == 0 {
			return fmt.Errorf("a business id is required (--%s or %s)", flagBusiness, envBusiness)
		}

		var err error
		apiClient, err = client.New(client.Options{
			BaseURL:    serverAddress,
			BusinessID: businessID,
		})
		return err
	},
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}
