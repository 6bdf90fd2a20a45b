package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/siherrmann/duckling/core/timezone"
	"github.com/siherrmann/duckling/helper"
	"github.com/siherrmann/duckling/model"
	"github.com/spf13/cobra"
)

var dimsCmd = &cobra.Command{
	Use:   "dims",
	Short: "List the known dimensions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, d := range model.AllDimensions() {
			fmt.Fprintln(cmd.OutOrStdout(), d)
		}
		return nil
	},
}

var zonesFilter string

var zonesCmd = &cobra.Command{
	Use:   "zones",
	Short: "List the zones of the timezone database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tzdb, err := timezone.Load(tzdbPath(cmd), helper.NewLogger(os.Stderr, config.Level()))
		if err != nil {
			return err
		}
		return printZones(cmd.OutOrStdout(), tzdb, zonesFilter)
	},
}

func init() {
	zonesCmd.Flags().StringVar(&zonesFilter, "filter", "", "Only list zones starting with this prefix")
}

func printZones(w io.Writer, tzdb *timezone.Database, prefix string) error {
	for _, name := range tzdb.Names() {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		if _, err := fmt.Fprintln(w, name); err != nil {
			return err
		}
	}
	return nil
}
