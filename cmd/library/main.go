// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the library CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the library CLI.
var rootCmd = &cobra.Command{
	Use:   "library",
	Short: "Download and track a personal library of academic papers",
	Long: `library maintains a personal paper library from a YAML catalog. It
deduplicates the catalog by source URL, downloads each paper's PDF into a
topic-organized store with a layered fetch fallback, and writes Markdown
indexes of what arrived and what needs manual retrieval.

A separate reading tracker records the status of each paper (not started,
in progress, read) in a local SQLite database.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./library.yaml or ~/.config/library/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("library")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "library"))
		}
	}

	viper.SetEnvPrefix("LIBRARY")
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
