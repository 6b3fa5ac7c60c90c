package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fekuna/boutique-catalog-service/config"
	"github.com/fekuna/boutique-catalog-service/internal/app"
	"github.com/fekuna/boutique-catalog-service/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose    bool
	jsonOutput bool
	assumeYes  bool
)

var rootCmd = &cobra.Command{
	Use:   "boutiquectl",
	Short: "Manage the boutique catalog from the command line",
	Long: `boutiquectl runs the catalog server and administers its data: schema
migrations, seeding, categories, products and site settings.

Configuration is read from the environment (and a local .env file), the same
way the server reads it.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "Answer yes to confirmation prompts")
}

func loadConfig() (*config.Config, error) {
	_ = godotenv.Load()
	return config.LoadEnv()
}

// cliLogger keeps the command output readable: warnings only unless
// --verbose is set.
func cliLogger(cfg *config.Config) logger.ZapLogger {
	if verbose {
		return app.NewLogger(cfg)
	}
	return logger.NewZapLogger(&logger.ZapLoggerConfig{
		Encoding:          "console",
		Level:             "warn",
		DisableCaller:     true,
		DisableStacktrace: true,
	})
}

// openApp builds the catalog from the environment. Callers must Close it.
func openApp(ctx context.Context) (*app.App, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return app.New(ctx, cfg, cliLogger(cfg))
}

// confirm asks a y/N question on out and reads the answer from in.
func confirm(in io.Reader, out io.Writer, question string) bool {
	if assumeYes {
		return true
	}
	fmt.Fprintf(out, "%s [y/N]: ", question)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes", "o", "oui":
		return true
	}
	return false
}
