package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yildizm/RoadReport/internal/config"
	"gopkg.in/yaml.v3"
)

// newConfigCommand creates the config command with subcommands
func newConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage RoadReport configuration",
		Long: `Manage RoadReport configuration files and settings.

The configuration has five sections:
  api      analysis service URL, connectivity check base URL, request timeout
  intake   drop folder watched by 'run' and extra video extensions
  ui       theme, emoji, clipboard mode and the diagnostic log file
  output   default format and color mode of headless commands
  profile  reporter name, email and join date shown on the profile page`,
		Annotations: map[string]string{skipConfigAnnotation: "true"},
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand())
	configCmd.AddCommand(newConfigValidateCommand())
	configCmd.AddCommand(newConfigPathCommand())

	return configCmd
}

// newConfigInitCommand creates the config init subcommand
func newConfigInitCommand() *cobra.Command {
	var (
		outputPath string
		minimal    bool
		force      bool
	)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new configuration file",
		Long: `Initialize a new RoadReport configuration file with default values.

The full file documents every section (api, intake, ui, output, profile).
Use --minimal for a compact file holding the api endpoints, the output
format and the reporter profile.`,
		Example: `  # Create full config in current directory
  roadreport config init

  # Create minimal config
  roadreport config init --minimal

  # Create config at specific path
  roadreport config init --file ~/.config/roadreport/config.yaml

  # Overwrite existing config
  roadreport config init --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputPath == "" {
				outputPath = ".roadreport.yaml"
			}
			outputPath = config.ExpandPath(outputPath)

			if !force && fileExists(outputPath) {
				return fmt.Errorf("config file already exists at %s (use --force to overwrite)", outputPath)
			}

			dir := filepath.Dir(outputPath)
			if dir != "." && dir != "/" {
				if err := os.MkdirAll(dir, 0o750); err != nil {
					return fmt.Errorf("failed to create directory %s: %w", dir, err)
				}
			}

			content := config.SampleConfig()
			if minimal {
				content = config.MinimalSampleConfig()
			}

			if err := os.WriteFile(outputPath, []byte(content), 0o600); err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s Configuration file created at: %s\n", GetEmoji("success"), outputPath)
			if minimal {
				fmt.Fprintln(out, "Created minimal configuration with the api, output and profile sections")
			} else {
				fmt.Fprintln(out, "Created full configuration with all options and documentation")
			}
			return nil
		},
	}

	initCmd.Flags().StringVarP(&outputPath, "file", "f", "", "path for the new config file (default: .roadreport.yaml)")
	initCmd.Flags().BoolVarP(&minimal, "minimal", "m", false, "create minimal configuration")
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite existing config file")

	return initCmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	var format, section string

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long: `Display the effective configuration after merging defaults, config
files and ROADREPORT_* environment overrides. Use --section to show only
one of api, intake, ui, output or profile.`,
		Example: `  # Show config in YAML format
  roadreport config show

  # Show config in JSON format
  roadreport config show --format json

  # Show only the service endpoints
  roadreport config show --section api

  # Show config from specific file
  roadreport config show --config /path/to/config.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewLoader().LoadConfig(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			value, err := configSection(cfg, section)
			if err != nil {
				return err
			}

			var data []byte
			switch format {
			case "json":
				data, err = json.MarshalIndent(value, "", "  ")
				data = append(data, '\n')
			case "yaml":
				data, err = yaml.Marshal(value)
			default:
				return fmt.Errorf("unsupported format: %s (use json or yaml)", format)
			}
			if err != nil {
				return fmt.Errorf("failed to marshal config to %s: %w", format, err)
			}

			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	showCmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format (yaml, json)")
	showCmd.Flags().StringVarP(&section, "section", "s", "", "show one section (api, intake, ui, output, profile)")

	return showCmd
}

// configSection picks one section of cfg, or all of it when name is empty
func configSection(cfg *config.Config, name string) (interface{}, error) {
	switch name {
	case "":
		return cfg, nil
	case "api":
		return cfg.API, nil
	case "intake":
		return cfg.Intake, nil
	case "ui":
		return cfg.UI, nil
	case "output":
		return cfg.Output, nil
	case "profile":
		return cfg.Profile, nil
	default:
		return nil, fmt.Errorf("unknown section: %s (must be one of: api, intake, ui, output, profile)", name)
	}
}

// newConfigValidateCommand creates the config validate subcommand
func newConfigValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validate the RoadReport configuration for syntax and semantic errors.

Checks for:
- Valid YAML syntax
- api: service URLs with an http or https scheme, a non-negative timeout
- intake: extra video extensions starting with a dot
- ui: known theme and clipboard mode
- output: known format and color mode`,
		Example: `  # Validate current config
  roadreport config validate

  # Validate specific config file
  roadreport config validate --config /path/to/config.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfg, err := config.NewLoader().LoadConfig(cfgFile)
			if err != nil {
				fmt.Fprintf(out, "%s Configuration validation failed:\n", GetEmoji("error"))
				fmt.Fprintf(out, "   %v\n", err)
				return err
			}

			fmt.Fprintf(out, "%s Configuration is valid (version %s)\n", GetEmoji("success"), cfg.Version)
			printValidateSummary(out, cfg)
			return nil
		},
	}
}

func printValidateSummary(out io.Writer, cfg *config.Config) {
	timeout := "none"
	if cfg.API.Timeout > 0 {
		timeout = cfg.API.Timeout.String()
	}
	dropDir := "disabled"
	if cfg.Intake.DropDir != "" {
		dropDir = cfg.Intake.DropDir
	}
	extensions := "none"
	if len(cfg.Intake.ExtraVideoExtensions) > 0 {
		extensions = strings.Join(cfg.Intake.ExtraVideoExtensions, ", ")
	}

	fmt.Fprintln(out, "api:")
	fmt.Fprintf(out, "   Service URL: %s\n", cfg.API.ServiceURL)
	fmt.Fprintf(out, "   API base URL: %s\n", cfg.API.BaseURL)
	fmt.Fprintf(out, "   Timeout: %s\n", timeout)
	fmt.Fprintln(out, "intake:")
	fmt.Fprintf(out, "   Drop folder: %s\n", dropDir)
	fmt.Fprintf(out, "   Extra extensions: %s\n", extensions)
	fmt.Fprintln(out, "ui:")
	fmt.Fprintf(out, "   Theme: %s, clipboard: %s\n", cfg.UI.Theme, firstNonEmpty(cfg.UI.Clipboard, "auto"))
	fmt.Fprintln(out, "output:")
	fmt.Fprintf(out, "   Format: %s, color: %s\n", cfg.Output.DefaultFormat, cfg.Output.ColorMode)
	fmt.Fprintln(out, "profile:")
	fmt.Fprintf(out, "   %s <%s>\n", firstNonEmpty(cfg.Profile.Name, "(unnamed)"), cfg.Profile.Email)
}

// newConfigPathCommand creates the config path subcommand
func newConfigPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show configuration file search paths",
		Long: `Display the list of paths RoadReport searches for configuration files.

Shows the search order and indicates which files exist.`,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Configuration file search paths (in priority order):")
			fmt.Fprintln(out)

			priority := []string{"Highest", "Medium", "Lowest"}
			for i, path := range config.GetConfigPaths() {
				exists := " (not found)"
				if fileExists(path) {
					exists = " " + GetEmoji("success") + " (exists)"
				}

				fmt.Fprintf(out, "  %d. %s%s\n", i+1, path, exists)
				if i < len(priority) {
					fmt.Fprintf(out, "     Priority: %s\n", priority[i])
				}
				fmt.Fprintln(out)
			}

			if currentConfig, found := config.FindConfigFile(); found {
				fmt.Fprintf(out, "Current config file: %s\n", currentConfig)
			} else {
				fmt.Fprintln(out, "No config file found, using defaults")
			}

			fmt.Fprintln(out)
			fmt.Fprintln(out, "Environment variables override file settings, named ROADREPORT_<SECTION>_<KEY>")
			fmt.Fprintln(out, "(for example ROADREPORT_UI_CLIPBOARD, ROADREPORT_PROFILE_NAME); the api endpoints")
			fmt.Fprintln(out, "use ROADREPORT_SERVICE_URL and ROADREPORT_API_BASE_URL")
		},
	}
}

// Helper function to check if file exists
func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}
