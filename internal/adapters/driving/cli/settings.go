package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change the defaults every command starts from.

Settings are read from config.toml in the configuration directory.
STORYCSV_* environment variables, also read from a .env file, override
the file. Command arguments and flags override both.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long:  `Validates and stores one setting, e.g. "storycsv settings set segment.max_chars 1500".`,
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

var settingsUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Restore the default of a setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsUnset,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsUnsetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	if path := settingsService.ConfigPath(); path != "" {
		cmd.Printf("Config file: %s\n", path)
	}
	cmd.Println()

	section := ""
	for _, key := range settingsService.Keys() {
		value, err := settingsService.Value(key)
		if err != nil {
			return fmt.Errorf("failed to get %s: %w", key, err)
		}
		if s := sectionOf(key); s != section {
			if section != "" {
				cmd.Println()
			}
			section = s
			cmd.Printf("[%s]\n", section)
		}
		if value == "" {
			value = "(not set)"
		}
		cmd.Printf("  %s: %s\n", key, value)
	}

	if _, err := settingsService.Get(); err != nil {
		cmd.Println()
		cmd.Printf("Warning: %v\n", err)
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	cmd.Printf("%s set to %s\n", args[0], args[1])
	return nil
}

func runSettingsUnset(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if err := settingsService.Unset(args[0]); err != nil {
		return fmt.Errorf("failed to unset %s: %w", args[0], err)
	}
	value, err := settingsService.Value(args[0])
	if err != nil {
		return err
	}
	cmd.Printf("%s restored to %q\n", args[0], value)
	return nil
}

// sectionOf returns the part of a dot-notation key before the first dot.
func sectionOf(key string) string {
	section, _, _ := strings.Cut(key, ".")
	return section
}
