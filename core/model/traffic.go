package model

// TrafficObservation describes live conditions along a route.
type TrafficObservation struct {
	Route           string  `json:"route"`
	CongestionLevel float64 `json:"congestionLevel"` // 0-100
	AverageSpeed    float64 `json:"averageSpeed"`
	Incidents       int     `json:"incidents"`
	DelayMinutes    float64 `json:"delayMinutes"`
}
