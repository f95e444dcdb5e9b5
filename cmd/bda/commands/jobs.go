package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/bdaresume/display"
	"github.com/teranos/bdaresume/jobs"
)

// JobsCmd groups ledger commands
var JobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List locally recorded jobs",
}

var jobsLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List jobs submitted from this machine, newest first",
	RunE:  runJobsLs,
}

func init() {
	jobsLsCmd.Flags().IntP("limit", "n", 20, "Maximum number of jobs to show")
	JobsCmd.AddCommand(jobsLsCmd)
}

func runJobsLs(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	database, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	list, err := jobs.NewStore(database).List(cmd.Context(), limit)
	if err != nil {
		return err
	}

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(list)
	}
	if len(list) == 0 {
		pterm.Info.Println("No jobs recorded yet")
		return nil
	}

	rows := make([][]string, 0, len(list))
	for _, j := range list {
		rows = append(rows, []string{
			j.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			j.InputKey,
			j.Status,
			j.InvocationARN,
			j.ResultPath,
		})
	}
	return display.Table([]string{"Created", "Input", "Status", "Invocation", "Result"}, rows)
}
