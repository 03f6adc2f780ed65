package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/one-minute-gemma/one-minute-agent/config"
	"github.com/one-minute-gemma/one-minute-agent/logging"
)

var (
	// Global flags
	cfgPath          string
	envFile          string
	flagModel        string
	flagProvider     string
	flagLogLevel     string
	flagLogFormat    string
	flagShowThinking bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "oneminute",
	Short: "Emergency response agent coordination system",
	Long: `oneminute runs coordinated emergency response agents.

A victim assistant gathers sensor data and keeps the person calm while an
operator agent reports verified facts to a 911 dispatcher. Both agents share
a message bus so dispatch updates, status reports and escalations reach the
other side and land in an audit log.

Run without arguments to start the interactive operator chat.`,
	SilenceUsage: true,
	RunE:         runChat,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "Config file path (default: config.yaml if present)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Dotenv file to load before reading the environment (default: .env)")
	rootCmd.PersistentFlags().StringVarP(&flagModel, "model", "m", "", "Model name override")
	rootCmd.PersistentFlags().StringVarP(&flagProvider, "provider", "p", "", "Model provider: ollama, openai, anthropic, gemini or mock")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "Log format: text or json")
	rootCmd.PersistentFlags().BoolVar(&flagShowThinking, "show-thinking", false, "Print intermediate reasoning steps")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(toolsCmd)
}

// loadConfig resolves the effective configuration: defaults, optional YAML
// file, ONE_MINUTE_* environment, then command-line flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(func(o *config.LoadOptions) {
		if cfgPath != "" {
			o.Path = cfgPath
		}
		if envFile != "" {
			o.EnvFile = envFile
		}
	})
	if err != nil {
		return config.Config{}, err
	}

	if flagModel != "" {
		cfg.Model.DefaultName = flagModel
	}
	if flagProvider != "" {
		cfg.Model.Provider = flagProvider
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if flagLogFormat != "" {
		cfg.Log.Format = flagLogFormat
	}
	if cmd.Flags().Changed("show-thinking") {
		cfg.Agent.ShowThinking = flagShowThinking
	}

	return cfg, nil
}

// newLogger builds the process logger from the resolved configuration. The
// json format gets a zap production logger; text stays on the slog backend.
func newLogger(cfg config.Config) logging.Logger {
	if strings.EqualFold(cfg.Log.Format, "json") {
		zapCfg := zap.NewProductionConfig()
		zapCfg.Level = zap.NewAtomicLevelAt(zapLevel(cfg.LogLevel()))
		if zl, err := zapCfg.Build(); err == nil {
			return logging.NewZapAdapter(zl)
		}
	}
	return logging.New(func(o *logging.Options) {
		o.Level = cfg.LogLevel()
		o.Format = cfg.Log.Format
	})
}

func zapLevel(level logging.LogLevel) zapcore.Level {
	switch level {
	case logging.LogLevelDebug:
		return zapcore.DebugLevel
	case logging.LogLevelWarn:
		return zapcore.WarnLevel
	case logging.LogLevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
