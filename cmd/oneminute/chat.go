package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	oneminute "github.com/one-minute-gemma/one-minute-agent"
)

// chatCmd runs the interactive operator conversation
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive 911 operator conversation",
	Long: `Starts an interactive session where you play the 911 dispatcher.

The operator agent answers on behalf of the person in the emergency: it reads
sensor data (vitals, location, audio, video) through its tools and reports
verified facts back to you. Type quit, exit or bye to leave.`,
	RunE: runChat,
}

func runChat(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	provider, err := buildProvider(ctx, cfg)
	if err != nil {
		return fmt.Errorf("create model provider: %w", err)
	}

	sys := oneminute.New(func(o *oneminute.Options) {
		o.Config = cfg
		o.Logger = newLogger(cfg)
	})
	operator := sys.NewOperatorAgent(provider)

	info := provider.Info()
	fmt.Printf("Emergency Response Agent ready (%s via %s). Type 'quit' to exit.\n\n", info.Name, info.Provider)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("911 Operator: ")
		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		switch strings.ToLower(input) {
		case "quit", "exit", "bye":
			fmt.Println("Session ended.")
			return nil
		}

		resp := operator.Chat(ctx, input)
		if cfg.Agent.ShowThinking && resp.Metadata != nil {
			if n, ok := resp.Metadata["thinking_iterations"]; ok {
				fmt.Printf("  (thought for %v rounds)\n", n)
			}
		}
		fmt.Printf("Agent: %s\n\n", resp.Content)
	}

	return scanner.Err()
}
