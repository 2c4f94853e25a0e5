package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vedran77/chirp/internal/config"
	"github.com/vedran77/chirp/internal/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the demo accounts and tweets",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		if a.cfg.Store == config.StoreMemory {
			return fmt.Errorf("seeding the memory store has no lasting effect, use serve instead")
		}

		created, err := seed.Run(cmd.Context(), a.auth, a.posts)
		if err != nil {
			return err
		}
		logrus.WithField("created", created).Info("seed finished")
		return nil
	},
}
