package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kilianp07/adaptivelog/core/fleet"
	"github.com/kilianp07/adaptivelog/core/model"
	"github.com/kilianp07/adaptivelog/pkg/export"
)

var (
	fleetStatus      string
	fleetDestination string
	exportFormat     string
)

var fleetCmd = &cobra.Command{
	Use:   "fleet",
	Short: "Fleet related commands",
}

var fleetLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List trucks in the roster",
	RunE:  runFleetLs,
}

var fleetStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the fleet dashboard summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := loadService()
		if err != nil {
			return err
		}
		defer func() { _ = svc.Close() }()
		return printJSON(cmd.OutOrStdout(), svc.FleetStats())
	},
}

var fleetExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Compute analytics for the fleet and write them as json or csv",
	RunE:  runFleetExport,
}

func init() {
	for _, c := range []*cobra.Command{fleetLsCmd, fleetExportCmd} {
		c.Flags().StringVar(&fleetStatus, "status", "", "only trucks with this status")
		c.Flags().StringVar(&fleetDestination, "destination", "", "only trucks heading to this destination")
	}
	fleetExportCmd.Flags().StringVarP(&exportFormat, "format", "f", export.FormatJSON, "output format: json or csv")
	fleetCmd.AddCommand(fleetLsCmd, fleetStatsCmd, fleetExportCmd)
	rootCmd.AddCommand(fleetCmd)
}

func fleetFilter() (fleet.Filter, error) {
	f := fleet.Filter{Status: model.TruckStatus(fleetStatus), Destination: fleetDestination}
	if f.Status != "" && !f.Status.Valid() {
		return f, fmt.Errorf("unknown status %q", fleetStatus)
	}
	return f, nil
}

func runFleetLs(cmd *cobra.Command, args []string) error {
	f, err := fleetFilter()
	if err != nil {
		return err
	}
	svc, _, err := loadService()
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSTATUS\tDESTINATION\tLOAD")
	for _, t := range svc.Trucks(f) {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.1f%%\n", t.ID, t.Name, t.Status, t.Destination, t.Utilization())
	}
	return tw.Flush()
}

func runFleetExport(cmd *cobra.Command, args []string) error {
	f, err := fleetFilter()
	if err != nil {
		return err
	}
	svc, _, err := loadService()
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	bundles, err := svc.AllAnalytics(context.Background(), f)
	if err != nil {
		return err
	}
	return export.Write(cmd.OutOrStdout(), exportFormat, bundles)
}
