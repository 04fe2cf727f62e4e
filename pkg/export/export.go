// Package export writes analytics bundles as JSON or CSV reports.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/kilianp07/adaptivelog/core/model"
)

// Supported formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// CSVHeader is the column layout of WriteCSV.
var CSVHeader = []string{
	"truck_id", "name", "status", "driver", "route",
	"utilization", "feasibility", "eta", "eta_confidence", "adjusted_speed",
	"fuel_cost", "penalty_level", "penalty_amount",
	"safety_score", "safety_rating", "eco_score", "eco_rating",
	"weather_location", "weather_safety", "congestion", "generated_at",
}

// Write dispatches on format.
func Write(w io.Writer, format string, bundles []model.AnalyticsBundle) error {
	switch strings.ToLower(format) {
	case FormatJSON:
		return WriteJSON(w, bundles)
	case FormatCSV:
		return WriteCSV(w, bundles)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

// WriteJSON writes the bundles as an indented JSON array.
func WriteJSON(w io.Writer, bundles []model.AnalyticsBundle) error {
	if bundles == nil {
		bundles = []model.AnalyticsBundle{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(bundles)
}

// WriteCSV writes one row per bundle. Missing route, weather or traffic
// leave their columns empty; a not applicable ETA is written as N/A.
func WriteCSV(w io.Writer, bundles []model.AnalyticsBundle) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, b := range bundles {
		if err := cw.Write(row(b)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func row(b model.AnalyticsBundle) []string {
	a := b.Analytics
	route := ""
	if b.CurrentRoute != nil {
		route = b.CurrentRoute.String()
	}
	eta, conf, speed := model.NotApplicable, "", ""
	if a.ETA.Applicable() {
		eta, conf, speed = a.ETA.Base, a.ETA.Confidence, a.ETA.AdjustedSpeed
	}
	loc, wsafety := "", ""
	if b.Weather != nil {
		loc = b.Weather.Location
		wsafety = formatFloat(b.Weather.Impact.SafetyScore)
	}
	congestion := ""
	if b.Traffic != nil {
		congestion = formatFloat(b.Traffic.CongestionLevel)
	}
	generated := ""
	if !b.GeneratedAt.IsZero() {
		generated = b.GeneratedAt.UTC().Format(time.RFC3339)
	}
	return []string{
		b.ID, b.Name, string(b.Status), b.Driver, route,
		strconv.FormatFloat(a.LoadFeasibility.Utilization, 'f', 2, 64),
		string(a.LoadFeasibility.Feasibility), eta, conf, speed,
		strconv.FormatFloat(a.FuelCost, 'f', 2, 64),
		string(a.PenaltyRisk.Level), formatFloat(a.PenaltyRisk.Amount),
		strconv.Itoa(a.SafetyScore.Score), a.SafetyScore.Rating,
		strconv.Itoa(a.EcoScore.Score), a.EcoScore.Rating,
		loc, wsafety, congestion, generated,
	}
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
