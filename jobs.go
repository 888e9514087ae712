package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blogem/form-intake/models"
)

var (
	forceDigest bool
	cleanupDays int
)

var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Send today's schedule digest to the team webhook",
	Long: `digest loads the remote digest configuration, and when the digest is enabled and the
current hour in its timezone is the send hour, posts today's events to the webhook.
Schedule it hourly.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		dcfg, err := a.services.Digest.LoadConfig(ctx, a.cfg.Digest.ConfigURL)
		if err != nil {
			return err
		}

		result, err := a.services.Digest.Run(ctx, dcfg, forceDigest)
		if err != nil {
			return err
		}

		switch {
		case result.Skipped != "":
			fmt.Fprintf(cmd.OutOrStdout(), "Digest for %s skipped: %s\n", result.Date, result.Skipped)
		case result.Sent:
			fmt.Fprintf(cmd.OutOrStdout(), "Digest for %s sent with %d events\n", result.Date, result.Events)
		default:
			reason := "unknown error"
			if result.Outcome != nil && result.Outcome.Error != "" {
				reason = result.Outcome.Error
			}
			return fmt.Errorf("digest for %s not delivered: %s", result.Date, reason)
		}
		return nil
	},
}

var backupCmd = &cobra.Command{
	Use:   "backup [form]",
	Short: "Copy a form's table into a dated backup table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		result, err := a.services.Maintenance.Backup(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Backed up %d rows of %s into %s\n", result.Rows, result.Source, result.Table)
		return nil
	},
}

var cleanupCmd = &cobra.Command{
	Use:   "cleanup [form]",
	Short: "Delete a form's rows older than the retention period",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		removed, err := a.services.Maintenance.Cleanup(cmd.Context(), args[0], cleanupDays)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d rows older than %d days from %s\n", removed, cleanupDays, args[0])
		return nil
	},
}

var failuresCmd = &cobra.Command{
	Use:   "failures",
	Short: "List the notification failures recorded in the log table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		entries, err := a.services.Maintenance.Failures(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintln(out, "No delivery failures recorded")
			return nil
		}
		for _, e := range entries {
			fmt.Fprintf(out, "%s\t%s\t%s\t%s\t%s\n",
				models.FormatTimestamp(e.Timestamp), e.EventKind, e.Target, e.ErrorDetail, e.Context)
		}
		return nil
	},
}

func init() {
	digestCmd.Flags().BoolVar(&forceDigest, "force", false, "send regardless of the configured hour")
	cleanupCmd.Flags().IntVar(&cleanupDays, "days", 30, "retention period in days")

	rootCmd.AddCommand(digestCmd, backupCmd, cleanupCmd, failuresCmd)
}
