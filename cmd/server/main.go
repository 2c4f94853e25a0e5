package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vedran77/chirp/internal/config"
	"github.com/vedran77/chirp/internal/logger"
)

const Version = "0.1.0"

var (
	rootCmd = &cobra.Command{
		Use:   "chirp",
		Short: "microblogging backend",
		Long: fmt.Sprintf(`chirp (v%s)

A small Twitter-style backend: accounts, follows, tweets, likes,
retweets and notifications over a JSON API.`, Version),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logger.Init(viper.GetString("log-level"), viper.GetString("log-format"), os.Stdout)
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of chirp",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("chirp v%s\n", Version)
		},
	}
)

func init() {
	cobra.OnInitialize(config.Init)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(versionCmd)

	flags := rootCmd.PersistentFlags()
	flags.String("store", config.StorePostgres, "backing store (postgres, memory)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "json", "log format (json, text)")
	flags.String("db-host", "localhost", "postgres host")
	flags.String("db-port", "5432", "postgres port")
	flags.String("db-name", "chirp", "postgres database")
	if err := viper.BindPFlags(flags); err != nil {
		panic(err)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
