package model

// RecommendationImpact summarises the expected effect of an advisory.
type RecommendationImpact struct {
	Financial  string `json:"financial"`
	Time       string `json:"time"`
	Efficiency string `json:"efficiency"`
}

// Recommendation is an advisory shown to fleet managers.
type Recommendation struct {
	ID          int                  `json:"id"`
	Type        string               `json:"type"`
	Priority    string               `json:"priority"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Impact      RecommendationImpact `json:"impact"`
	Actions     []string             `json:"actions"`
}
