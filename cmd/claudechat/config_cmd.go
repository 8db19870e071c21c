package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"claudechat/internal/config"
	"claudechat/internal/llm"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration and the API key",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		// Unset values fall back to the client defaults.
		defaults := llm.DefaultConfig("")
		if cfg.Model == "" {
			cfg.Model = defaults.Model
		}
		if cfg.BaseURL == "" {
			cfg.BaseURL = defaults.BaseURL
		}
		if cfg.MaxTokens == 0 {
			cfg.MaxTokens = defaults.MaxTokens
		}

		sessions, closer, serr := openSessions()
		keyStatus := "not set"
		if serr == nil {
			if sessions.HasCredential() {
				keyStatus = "set (" + maskKey(sessions.Credential()) + ")"
			}
			closer()
		}

		cfgFile, _ := config.File()
		dbPath, _ := config.DBPath()
		fmt.Printf("Config file:   %s\n", cfgFile)
		fmt.Printf("Database:      %s\n", dbPath)
		fmt.Printf("Theme:         %s\n", cfg.Theme)
		fmt.Printf("Model:         %s\n", cfg.Model)
		fmt.Printf("Base URL:      %s\n", cfg.BaseURL)
		fmt.Printf("Max tokens:    %d\n", cfg.MaxTokens)
		fmt.Printf("API key:       %s\n", keyStatus)
		return nil
	},
}

var configSetKeyCmd = &cobra.Command{
	Use:   "set-key [key]",
	Short: "Store the API key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sessions, closer, err := openSessions()
		if err != nil {
			return err
		}
		defer closer()

		sessions.SaveCredential(args[0])
		fmt.Println("API key saved.")
		return nil
	},
}

var configDeleteKeyCmd = &cobra.Command{
	Use:   "delete-key",
	Short: "Delete the API key and clear all chats",
	RunE: func(cmd *cobra.Command, args []string) error {
		sessions, closer, err := openSessions()
		if err != nil {
			return err
		}
		defer closer()

		if !sessions.HasCredential() {
			fmt.Println("No API key is set.")
			return nil
		}

		sessions.DeleteCredential()
		if sessions.HasCredential() {
			return fmt.Errorf("failed to delete API key")
		}
		fmt.Println("API key deleted.")
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetKeyCmd)
	configCmd.AddCommand(configDeleteKeyCmd)
}

// stdinConfirm asks a yes/no question on the terminal. Used as the store's
// confirmation gate for destructive operations in non-TUI commands.
func stdinConfirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func maskKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
