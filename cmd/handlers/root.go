/*
Copyright © 2025 Your Name

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"podcaster/internal/cache"
	"podcaster/internal/config"
	"podcaster/internal/core"
	"podcaster/internal/llm"
	"podcaster/internal/logger"
	"podcaster/internal/pipeline"
	"podcaster/internal/styles"
)

var cfgFile string

// newCompleter builds the model client used by every command.
var newCompleter = func(cfg *config.Config, log *slog.Logger) llm.Completer {
	client := llm.NewClient(llm.Options{
		APIKey:      cfg.AI.Gemini.APIKey,
		Model:       cfg.AI.Gemini.Model,
		MaxTokens:   cfg.AI.Gemini.MaxTokens,
		Temperature: cfg.AI.Gemini.Temperature,
	})
	return llm.NewLoggingCompleter(client, client.ModelName(), log)
}

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "podcaster",
		Short: "Podcaster researches a topic and writes a two-speaker podcast script.",
		Long: `Podcaster asks Gemini for a structured research brief on a topic, validates it,
and turns it into a Host/Guest dialogue sized to the requested episode length.

Examples:
  podcaster generate --topic "Honeybee communication" --duration 12
  podcaster research --topic "Tides" --duration 8 --style educational
  podcaster serve --port 8000`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.podcaster.yaml)")

	rootCmd.AddCommand(NewGenerateCmd())
	rootCmd.AddCommand(NewResearchCmd())
	rootCmd.AddCommand(NewServeCmd())
	rootCmd.AddCommand(NewStylesCmd())
	rootCmd.AddCommand(NewTUICmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initConfig reads in config file and ENV variables and applies the logging settings.
func initConfig(cmd *cobra.Command) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}

	if err := logger.Configure(cfg.Logging.Level, cfg.Logging.Format); err != nil {
		return fmt.Errorf("error configuring logger: %w", err)
	}

	if cfg.App.ConfigFile != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Using config file: %s\n", cfg.App.ConfigFile)
	}
	return nil
}

// buildPipeline wires the research pipeline from configuration.
func buildPipeline(cfg *config.Config) *pipeline.Pipeline {
	log := logger.Get()
	return pipeline.New(
		newCompleter(cfg, log),
		cache.New(cfg.Cache.TTL, nil),
		pipeline.Options{
			MaxAttempts:              cfg.Pipeline.MaxAttempts,
			RetryDelay:               cfg.Pipeline.RetryDelay,
			ConversationalOnCacheHit: cfg.Pipeline.ConversationalOnCacheHit,
		},
		log,
	)
}

// requestFlags are the episode flags shared by generate, research and tui.
type requestFlags struct {
	topic    string
	duration int
	style    string
	language string
}

func (f *requestFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.topic, "topic", "t", "", "Episode topic (or pass it as the first argument)")
	cmd.Flags().IntVarP(&f.duration, "duration", "d", 10, "Target episode length in minutes")
	cmd.Flags().StringVarP(&f.style, "style", "s", styles.Default, "Show style (see 'podcaster styles')")
	cmd.Flags().StringVarP(&f.language, "language", "l", "", "Output language (default English)")
}

func (f *requestFlags) request(args []string) (core.ResearchRequest, error) {
	topic := f.topic
	if topic == "" && len(args) > 0 {
		topic = args[0]
	}
	if topic == "" {
		return core.ResearchRequest{}, errors.New("a topic is required: use --topic or pass it as an argument")
	}

	req := core.ResearchRequest{
		Topic:           topic,
		DurationMinutes: f.duration,
		Style:           f.style,
		Language:        f.language,
	}
	return req, req.Validate()
}
