package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var analyticsCmd = &cobra.Command{
	Use:   "analytics <truck-id>",
	Short: "Print the analytics bundle of one truck",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := loadService()
		if err != nil {
			return err
		}
		defer func() { _ = svc.Close() }()
		b, err := svc.TruckAnalytics(context.Background(), args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), b)
	},
}

var recommendationsCmd = &cobra.Command{
	Use:   "recommendations",
	Short: "Print the advisory catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := loadService()
		if err != nil {
			return err
		}
		defer func() { _ = svc.Close() }()
		return printJSON(cmd.OutOrStdout(), svc.Recommendations())
	},
}

func init() {
	rootCmd.AddCommand(analyticsCmd, recommendationsCmd)
}
