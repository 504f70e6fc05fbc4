package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// jobOutput represents the filtered output for a job
type jobOutput struct {
	ID        uint   `json:"id"`
	Code      string `json:"code"`
	Equipment string `json:"equipment"`
	Status    string `json:"status"`
}

// jobListOutput represents the filtered output for a list of jobs
type jobListOutput struct {
	Jobs []jobOutput `json:"jobs"`
}

// GetJobsCmd returns the jobs command tree
func GetJobsCmd() *cobra.Command {
	jobsCmd := &cobra.Command{
		Use:   "jobs",
		Short: "Manage repair jobs",
	}

	listJobsCmd := &cobra.Command{
		Use:   "list",
		Short: "List jobs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			status, _ := cmd.Flags().GetString("status")

			jobs, err := apiClient.ListJobs(context.Background(), status, limit)
			if err != nil {
				return fmt.Errorf("error fetching jobs: %w", err)
			}

			output := jobListOutput{Jobs: make([]jobOutput, len(jobs))}
			for i, job := range jobs {
				output.Jobs[i] = jobOutput{
					ID:        job.ID,
					Code:      job.Code,
					Equipment: job.Equipment,
					Status:    string(job.Status),
				}
			}
			return printJSON(output)
		},
	}
	listJobsCmd.Flags().IntP("limit", "l", 50, "Limit the number of jobs returned")
	listJobsCmd.Flags().String("status", "", "Filter jobs by status")

	getJobCmd := &cobra.Command{
		Use:   "get",
		Short: "Get a job with its current status age",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, _ := cmd.Flags().GetUint("id")
			job, err := apiClient.GetJob(context.Background(), id)
			if err != nil {
				return fmt.Errorf("error fetching job: %w", err)
			}
			return printJSON(job)
		},
	}
	getJobCmd.Flags().UintP("id", "i", 0, "Job ID to fetch")
	_ = getJobCmd.MarkFlagRequired("id")

	timelineCmd := &cobra.Command{
		Use:   "timeline",
		Short: "Show how long a job spent in each status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, _ := cmd.Flags().GetUint("id")
			timeline, err := apiClient.GetStatusTimeline(context.Background(), id)
			if err != nil {
				return fmt.Errorf("error fetching timeline: %w", err)
			}
			return printJSON(timeline)
		},
	}
	timelineCmd.Flags().UintP("id", "i", 0, "Job ID to fetch")
	_ = timelineCmd.MarkFlagRequired("id")

	jobsCmd.AddCommand(listJobsCmd)
	jobsCmd.AddCommand(getJobCmd)
	jobsCmd.AddCommand(timelineCmd)
	return jobsCmd
}

// printJSON pretty-prints a value to stdout
func printJSON(v interface{}) error {
	pretty, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error formatting response: %w", err)
	}
	fmt.Println(string(pretty))
	return nil
}
