package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/bryan-cox/whosout/internal/bamboo"
	"github.com/bryan-cox/whosout/internal/calendar"
	"github.com/bryan-cox/whosout/internal/clipboard"
	"github.com/bryan-cox/whosout/internal/config"
	"github.com/bryan-cox/whosout/internal/consolidate"
	"github.com/bryan-cox/whosout/internal/model"
	"github.com/bryan-cox/whosout/internal/report"
	"github.com/bryan-cox/whosout/internal/slack"
)

// If you take more than a year of leave, we might miss it. Sorry.
const leaveLookaheadDays = 365

// --- Cobra Command Definitions ---

var (
	// Used for flags.
	asOfDate        string
	filePath        string
	copyToClipboard bool

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "whosout",
		Short: "Posts a who's-on-leave summary from BambooHR to Slack.",
		Long:  `Whosout fetches approved leave and company holidays from BambooHR, merges each person's leave entries across weekends, and posts the resulting summary to a Slack incoming webhook.`,
	}

	// runCmd fetches from BambooHR and posts to Slack.
	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Fetch leave from BambooHR and post the report to Slack.",
		Long:  `Fetches the who's-out feed and the employee directory, consolidates each employee's leave, and posts the current report to the configured Slack webhook. Reads BAMBOO_COMPANY_DOMAIN, BAMBOO_API_KEY and SLACK_WEBHOOK_URL from the environment.`,
		Run:   runRunCommand,
	}

	// previewCmd renders a report from a local file, no network calls.
	previewCmd = &cobra.Command{
		Use:   "preview",
		Short: "Render a report from a local YAML file of leave entries.",
		Long:  `Runs the consolidation pipeline over leave entries read from a YAML file and prints the report lines to standard output, without touching BambooHR or Slack. With --date, only leave covering that date is shown; otherwise the full schedule is rendered.`,
		Run:   runPreviewCommand,
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&asOfDate, "date", "", "Report date (YYYY-MM-DD, defaults to today).")

	previewCmd.Flags().StringVar(&filePath, "file", "leave.yml", "Path to the YAML leave file.")
	previewCmd.Flags().BoolVar(&copyToClipboard, "copy", false, "Also copy the report to the clipboard.")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(previewCmd)
}

// --- Main Application Entry Point ---

func main() {
	logrus.SetOutput(os.Stderr)
	Execute()
}

// --- Command Execution Logic ---

func runRunCommand(cmd *cobra.Command, args []string) {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}

	asOf, err := resolveDate(asOfDate)
	if err != nil {
		logrus.WithError(err).WithField("date", asOfDate).Fatal("invalid --date argument")
	}

	logrus.WithField("date", asOf).Info("sending leave report")

	client := bamboo.NewClient(cfg.CompanyDomain, cfg.APIKey)

	entries, err := client.WhosOut(asOf, asOf.AddDays(leaveLookaheadDays))
	if err != nil {
		logrus.WithError(err).Fatal("failed to fetch leave from BambooHR")
	}

	// The directory only improves names; a failed fetch is not fatal.
	directory, err := client.Directory()
	if err != nil {
		logrus.WithError(err).Warn("failed to fetch employee directory, using feed names")
	}

	rep, err := buildReport(entries, directory, asOf, true)
	if err != nil {
		logrus.WithError(err).Fatal("failed to consolidate leave entries")
	}

	if err := slack.New(cfg.WebhookURL).Post(slack.BuildMessage(rep)); err != nil {
		logrus.WithError(err).Fatal("failed to post report to Slack")
	}
}

func runPreviewCommand(cmd *cobra.Command, args []string) {
	entries, err := loadEntries(filePath)
	if err != nil {
		logrus.WithError(err).WithField("path", filePath).Fatal("failed to load leave file")
	}

	asOf, err := resolveDate(asOfDate)
	if err != nil {
		logrus.WithError(err).WithField("date", asOfDate).Fatal("invalid --date argument")
	}

	rep, err := buildReport(entries, nil, asOf, asOfDate != "")
	if err != nil {
		logrus.WithError(err).Fatal("failed to consolidate leave entries")
	}

	out := strings.Join(rep.Lines(), "\n") + "\n"
	cmd.Print(out)

	if copyToClipboard {
		if err := clipboard.Copy(out); err != nil {
			logrus.WithError(err).Warn("failed to copy report to clipboard")
		}
	}
}

// --- Helper Functions ---

// buildReport runs the core pipeline: consolidate, optionally keep
// only ranges covering the as-of date, resolve names, assemble.
func buildReport(entries []model.Entry, directory []model.Employee, asOf calendar.Date, currentOnly bool) (report.Report, error) {
	ranges, err := consolidate.Consolidate(entries)
	if err != nil {
		return report.Report{}, err
	}
	if currentOnly {
		ranges = consolidate.Current(ranges, asOf)
	}
	return report.Build(report.Displays(ranges, directory)), nil
}

// leaveFile is the preview input: a flat list of leave entries.
type leaveFile struct {
	Entries []model.Entry `yaml:"entries"`
}

func loadEntries(path string) ([]model.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read file '%s': %w", path, err)
	}

	var file leaveFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("could not parse YAML from '%s': %w", path, err)
	}

	return file.Entries, nil
}

func resolveDate(arg string) (calendar.Date, error) {
	if arg == "" {
		return calendar.Today(), nil
	}
	return calendar.Parse(arg)
}
