// Copyright © 2019 One Concern

package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "filemon",
	Short: "Filemon versions files the git way, one file at a time",
	Long: `Filemon keeps an immutable, versioned history of individual files.

Every commit stores the full content of one file under a two-part
version number (e.g. 1.0, 1.1, 2.0). Branches fork the history,
tags pin a version, and a repository synchronizes with a remote
reachable as a plain directory path.
`,
}

var config *CLIConfig

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		osExit(1)
	}
}

func init() {
	log.SetFlags(0)
	addRepoDirFlag(rootCmd)
	addLogLevelFlag(rootCmd)
	cobra.OnInitialize(initConfig)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.SetDefault("branch", "main")
	viper.SetDefault("loglevel", "info")
	if os.Getenv("FILEMON_CONFIG") != "" {
		// Use config file from the flag.
		viper.SetConfigFile(os.Getenv("FILEMON_CONFIG"))
	} else {
		viper.SetConfigFile(filepath.Join(params.root.repoDir, configFile))
	}

	viper.AutomaticEnv() // read in environment variables that match
	// a missing config file just means the repository is not initialized yet
	_ = viper.ReadInConfig()

	var err error
	config, err = newConfig()
	if err != nil {
		logFatalln(err)
	}
	config.setSessionParams(&params)
}
