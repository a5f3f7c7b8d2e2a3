package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "shinkrobot",
	Short: "An AniList lookup bot",
	Long: `ShinkroBot answers chat commands such as /anime, /manga, /char and /user
with data from AniList, keeping recently fetched entries in memory.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/config.toml or ./config.toml)")
	rootCmd.PersistentFlags().String("database-dir", ".", "directory holding shinkrobot.db")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: trace, debug, info, warn or error")
	rootCmd.PersistentFlags().String("default-locale", "en", "locale used for new chats and missing translations")
	rootCmd.PersistentFlags().Int("cache-capacity", 50, "entries kept per kind before the cache is flushed")

	// Bind flags to viper
	viper.BindPFlag("database_dir", rootCmd.PersistentFlags().Lookup("database-dir"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("default_locale", rootCmd.PersistentFlags().Lookup("default-locale"))
	viper.BindPFlag("cache_capacity", rootCmd.PersistentFlags().Lookup("cache-capacity"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Search for config in home directory and current directory
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigType("toml")
		viper.SetConfigName("config")
	}

	// Environment variables
	viper.SetEnvPrefix("SHINKROBOT")
	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
