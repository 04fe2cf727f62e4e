// Package recommendation serves the advisory list shown to fleet managers.
package recommendation

import "github.com/kilianp07/adaptivelog/core/model"

// Catalog is an ordered, read-only list of recommendations.
type Catalog struct {
	items []model.Recommendation
}

// NewCatalog returns a catalog over items, or Defaults when empty.
func NewCatalog(items []model.Recommendation) *Catalog {
	if len(items) == 0 {
		items = Defaults()
	}
	return &Catalog{items: cloneAll(items)}
}

// List returns the recommendations in catalog order. The result is a copy.
func (c *Catalog) List() []model.Recommendation {
	return cloneAll(c.items)
}

// Len returns the number of recommendations.
func (c *Catalog) Len() int { return len(c.items) }

func cloneAll(in []model.Recommendation) []model.Recommendation {
	out := make([]model.Recommendation, len(in))
	for i, r := range in {
		r.Actions = append([]string(nil), r.Actions...)
		out[i] = r
	}
	return out
}

// Defaults returns the built-in demo advisories.
func Defaults() []model.Recommendation {
	return []model.Recommendation{
		{
			ID:          1,
			Type:        "route_optimization",
			Priority:    "high",
			Title:       "Reroute Truck #7821 for backhaul opportunity",
			Description: "Detour adds 45min but picks up $1,870 load in Denver, reducing empty return by 520 miles.",
			Impact:      model.RecommendationImpact{Financial: "+$1,240", Time: "+45min", Efficiency: "+42%"},
			Actions:     []string{"accept", "delay", "details"},
		},
		{
			ID:          2,
			Type:        "fuel_savings",
			Priority:    "medium",
			Title:       "Refuel Truck #4512 at exit 132 for 8% fuel savings",
			Description: "Current route has fuel at $3.42/gal vs $3.15/gal at exit 132.",
			Impact:      model.RecommendationImpact{Financial: "-$47", Time: "No change", Efficiency: "+8%"},
			Actions:     []string{"accept", "details"},
		},
		{
			ID:          3,
			Type:        "load_swap",
			Priority:    "medium",
			Title:       "Swap loads between Truck #3390 and #6712",
			Description: "Optimizes delivery windows and reduces idle time by 3.5 hours combined.",
			Impact:      model.RecommendationImpact{Financial: "+$320", Time: "-3.5h", Efficiency: "+15%"},
			Actions:     []string{"accept", "details"},
		},
	}
}
