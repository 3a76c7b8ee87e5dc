// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the research-gateway CLI. The
// gateway backs a research-assistant front-end: it fetches paper metadata
// from arXiv, answers research questions through a generative AI gateway,
// and serves both over an HTTP API.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/meshintel/research-gateway/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback if non-empty, else the secret value for key.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the research-gateway CLI.
var rootCmd = &cobra.Command{
	Use:   "research-gateway",
	Short: "Backend gateway for the research-assistant front-end",
	Long: `research-gateway fetches research-paper metadata from the arXiv API and
answers natural-language research questions through a generative AI gateway.

Run "serve" to expose the HTTP API the front-end consumes, or use the
fetch, query, chat, and analyze subcommands directly from the terminal.
Fetched batches can be archived locally and searched with "archive".`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./research-gateway.yaml or ~/.config/research-gateway/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("research-gateway")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "research-gateway"))
		}
	}

	viper.SetEnvPrefix("RESEARCH_GATEWAY")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
