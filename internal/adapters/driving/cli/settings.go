package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/otuscan/internal/core/domain"
)

var errSettingsNotConfigured = errors.New("settings service not configured")

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure query defaults, the database location, and window
extraction options.

Use subcommands to change a single setting or run the interactive wizard.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure all settings step by step.`,
	RunE:  runSettingsWizard,
}

var settingsWorkersCmd = &cobra.Command{
	Use:   "workers <n>",
	Short: "Set the number of concurrent query workers",
	Long:  `Set the number of queries evaluated concurrently. 0 uses every CPU.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsWorkers,
}

var settingsFormatCmd = &cobra.Command{
	Use:   "format <tsv|json>",
	Short: "Set the default result format",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsFormat,
}

var settingsDBPathCmd = &cobra.Command{
	Use:   "db-path <dir>",
	Short: "Set the default database directory",
	Long:  `Set the default database directory. An empty value restores ~/.otuscan/db.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsDBPath,
}

var settingsInsertsCmd = &cobra.Command{
	Use:   "inserts <on|off>",
	Short: "Set whether extracted windows include lower-case inserts",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsInserts,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	settingsCmd.AddCommand(settingsWorkersCmd)
	settingsCmd.AddCommand(settingsFormatCmd)
	settingsCmd.AddCommand(settingsDBPathCmd)
	settingsCmd.AddCommand(settingsInsertsCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Query]")
	cmd.Printf("  Workers: %s\n", describeWorkers(settings.Query.Workers))
	cmd.Printf("  Format: %s\n", settings.Query.Format.Description())
	cmd.Println()

	cmd.Println("[Database]")
	path := settings.Database.Path
	if path == "" {
		path = "(default)"
	}
	cmd.Printf("  Path: %s\n", path)
	cmd.Println()

	cmd.Println("[Windows]")
	cmd.Printf("  Include inserts: %s\n", onOff(settings.Windows.IncludeInserts))
	cmd.Println()

	if err := settings.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'otuscan settings wizard' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}

	current, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("otuscan Settings Wizard")
	cmd.Println("=======================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())

	// Step 1: Workers
	cmd.Println("Step 1: Query Workers")
	cmd.Println("---------------------")
	cmd.Printf("Enter number of workers, 0 for all CPUs [%d]: ", current.Query.Workers)
	workers := current.Query.Workers
	if input := readLine(reader); input != "" {
		n, err := strconv.Atoi(input)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: workers must be a non-negative integer", domain.ErrInvalidInput)
		}
		workers = n
	}
	if err := settingsService.SetWorkers(workers); err != nil {
		return fmt.Errorf("failed to set workers: %w", err)
	}
	cmd.Printf("Set workers to: %s\n\n", describeWorkers(workers))

	// Step 2: Output format
	cmd.Println("Step 2: Result Format")
	cmd.Println("---------------------")
	formats := []domain.OutputFormat{domain.OutputFormatTSV, domain.OutputFormatJSON}
	defaultIdx := 1
	for i, f := range formats {
		cmd.Printf("  %d. %s\n", i+1, f.Description())
		if f == current.Query.Format {
			defaultIdx = i + 1
		}
	}
	cmd.Printf("\nEnter choice [%d]: ", defaultIdx)
	format := formats[parseChoice(readLine(reader), len(formats), defaultIdx)-1]
	if err := settingsService.SetOutputFormat(format); err != nil {
		return fmt.Errorf("failed to set format: %w", err)
	}
	cmd.Printf("Set format to: %s\n\n", format.Description())

	// Step 3: Database path
	cmd.Println("Step 3: Database Directory")
	cmd.Println("--------------------------")
	cmd.Printf("Enter database directory [%s]: ", current.Database.Path)
	path := current.Database.Path
	if input := readLine(reader); input != "" {
		path = input
	}
	if err := settingsService.SetDatabasePath(path); err != nil {
		return fmt.Errorf("failed to set database path: %w", err)
	}
	cmd.Println()

	// Step 4: Inserts
	cmd.Println("Step 4: Window Inserts")
	cmd.Println("----------------------")
	cmd.Println("  1. Window columns only")
	cmd.Println("  2. Include lower-case inserts")
	defaultIdx = 1
	if current.Windows.IncludeInserts {
		defaultIdx = 2
	}
	cmd.Printf("\nEnter choice [%d]: ", defaultIdx)
	include := parseChoice(readLine(reader), 2, defaultIdx) == 2
	if err := settingsService.SetIncludeInserts(include); err != nil {
		return fmt.Errorf("failed to set inserts: %w", err)
	}
	cmd.Printf("Include inserts: %s\n\n", onOff(include))

	cmd.Println("Configuration Complete!")
	cmd.Println("=======================")
	cmd.Println("All settings are valid and saved.")

	return nil
}

func runSettingsWorkers(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}

	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("%w: workers must be an integer", domain.ErrInvalidInput)
	}
	if err := settingsService.SetWorkers(n); err != nil {
		return fmt.Errorf("failed to set workers: %w", err)
	}

	cmd.Printf("Workers set to: %s\n", describeWorkers(n))
	return nil
}

func runSettingsFormat(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}

	format := domain.OutputFormat(strings.ToLower(args[0]))
	if err := settingsService.SetOutputFormat(format); err != nil {
		return fmt.Errorf("failed to set format: %w", err)
	}

	cmd.Printf("Format set to: %s\n", format.Description())
	return nil
}

func runSettingsDBPath(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}

	path := strings.TrimSpace(args[0])
	if err := settingsService.SetDatabasePath(path); err != nil {
		return fmt.Errorf("failed to set database path: %w", err)
	}

	if path == "" {
		cmd.Println("Database path reset to default")
	} else {
		cmd.Printf("Database path set to: %s\n", path)
	}
	return nil
}

func runSettingsInserts(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}

	include, err := parseOnOff(args[0])
	if err != nil {
		return err
	}
	if err := settingsService.SetIncludeInserts(include); err != nil {
		return fmt.Errorf("failed to set inserts: %w", err)
	}

	cmd.Printf("Include inserts: %s\n", onOff(include))
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	default:
		return false, fmt.Errorf("%w: expected on or off, got %q", domain.ErrInvalidInput, s)
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func describeWorkers(n int) string {
	if n <= 0 {
		return "all CPUs"
	}
	return strconv.Itoa(n)
}
