package handlers

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"blogsmith/internal/logger"
)

// NewScheduleCmd creates the scheduler daemon command
func NewScheduleCmd() *cobra.Command {
	scheduleCmd := &cobra.Command{
		Use:   "schedule",
		Short: "Run the daily blog generation scheduler",
		Long: `Run blogsmith as a long-lived process that generates one blog post per
day at the configured time. The category rotates by weekday, and a post is
skipped if one was already generated today.

Example:
  blogsmith schedule
  blogsmith schedule --status`,
		Run: func(cmd *cobra.Command, args []string) {
			statusOnly, _ := cmd.Flags().GetBool("status")
			if err := runSchedule(statusOnly); err != nil {
				logger.Error("Scheduler failed", err)
				os.Exit(1)
			}
		},
	}

	scheduleCmd.Flags().Bool("status", false, "print the schedule and exit without running")

	return scheduleCmd
}

func runSchedule(statusOnly bool) error {
	p, err := buildPipeline()
	if err != nil {
		return err
	}
	defer p.close()

	if statusOnly {
		printStatus(p)
		return nil
	}

	p.scheduler.Start()
	defer p.scheduler.Stop()

	printStatus(p)
	fmt.Println("\nPress Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	fmt.Println("\nShutting down...")
	return nil
}

func printStatus(p *pipeline) {
	status := p.scheduler.Status()

	fmt.Println("📅 Daily Blog Scheduler")
	fmt.Printf("   Running:  %v\n", status.IsRunning)
	fmt.Printf("   Schedule: %s (%s)\n", status.Schedule, status.Timezone)
	if status.NextRun != nil {
		fmt.Printf("   Next run: %s\n", status.NextRun.Format(time.RFC1123))
	}
	if status.LastRun != nil {
		fmt.Printf("   Last run: %s\n", status.LastRun.Format(time.RFC1123))
	}
}
