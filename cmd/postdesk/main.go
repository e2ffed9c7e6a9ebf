// Command postdesk is a terminal client for the posts API.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"postdesk/internal/config"
	"postdesk/internal/logging"
)

var (
	// Global flags
	verbose    bool
	configPath string
	apiURL     string

	// Resolved in PersistentPreRunE
	cfg    *config.Config
	v      = viper.New()
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "postdesk",
	Short: "postdesk - terminal client for the posts API",
	Long: `postdesk lists, searches, reads and writes posts against a posts API.

Run without arguments to open the post list. Use "postdesk mockapi" to serve
an in-memory API for local development.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig()
		if err != nil {
			return err
		}

		// Non-interactive commands log to stderr; the TUI owns the terminal
		// and only logs to file when debug_mode is set.
		zc := zap.NewProductionConfig()
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		if err := logging.Initialize(cfg.Logging); err != nil {
			logger.Warn("file logging disabled", zap.Error(err))
		}
		logging.Get(logging.CategoryBoot).Info("postdesk %s, api %s", cmd.Name(), cfg.API.BaseURL)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.CloseAll()
		if logger != nil {
			_ = logger.Sync()
		}
	},
	Args: cobra.NoArgs,
	RunE: runListUI,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: .postdesk/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Posts API base URL (or set POSTDESK_API_BASE_URL)")

	listCmd.Flags().StringVarP(&searchTerm, "search", "s", "", "Only show posts matching this term")

	mockAPICmd.Flags().String("addr", "", "Listen address (default :3000)")
	mockAPICmd.Flags().Bool("seed", true, "Start with sample posts")
	mockAPICmd.Flags().Duration("delay", 0, "Artificial latency per request")
	bindConfigFlags(v)

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)

	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(mockAPICmd)
	rootCmd.AddCommand(configCmd)
}

// bindConfigFlags maps flags onto config keys so a flag that was set wins
// over file and environment values.
func bindConfigFlags(v *viper.Viper) {
	_ = v.BindPFlag("api.base_url", rootCmd.PersistentFlags().Lookup("api-url"))
	_ = v.BindPFlag("mockapi.addr", mockAPICmd.Flags().Lookup("addr"))
	_ = v.BindPFlag("mockapi.seed", mockAPICmd.Flags().Lookup("seed"))
}

// loadConfig resolves the effective configuration: defaults, then the config
// file, then POSTDESK_* environment, then flags.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	loaded, err := config.LoadWith(v, path)
	if err != nil {
		return nil, err
	}
	if err := loaded.Validate(); err != nil {
		return nil, err
	}
	return loaded, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
