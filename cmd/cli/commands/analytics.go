package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// GetAnalyticsCmd returns the analytics command tree
func GetAnalyticsCmd() *cobra.Command {
	analyticsCmd := &cobra.Command{
		Use:   "analytics",
		Short: "Dashboard summaries",
	}

	dashboardCmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the tenant dashboard",
		RunE: func(_ *cobra.Command, _ []string) error {
			dash, err := apiClient.GetDashboard(context.Background())
			if err != nil {
				return fmt.Errorf("error fetching dashboard: %w", err)
			}
			return printJSON(dash)
		},
	}

	analyticsCmd.AddCommand(dashboardCmd)
	return analyticsCmd
}
