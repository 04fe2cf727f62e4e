package fleet

import "github.com/kilianp07/adaptivelog/core/model"

// DefaultTrucks is the demo roster used when configuration provides none.
func DefaultTrucks() []model.Truck {
	return []model.Truck{
		{
			ID:               "7821",
			Name:             "Peterbilt 579",
			Type:             "Flatbed",
			Capacity:         48000,
			CurrentLoad:      42000,
			Status:           model.StatusEnRoute,
			Location:         model.Coordinates{Lat: 41.8781, Lng: -87.6298},
			Destination:      "Chicago, IL",
			Driver:           "John Smith",
			FuelEfficiency:   6.5,
			MaintenanceScore: 92,
			CurrentRoute: &model.Route{
				Start:     "Dallas, TX",
				End:       "Chicago, IL",
				Distance:  967,
				Waypoints: []string{},
			},
			Metrics: &model.TruckMetrics{
				TotalMiles:   125430,
				AvgSpeed:     58,
				FuelConsumed: 19296,
				CO2Emitted:   173,
			},
		},
		{
			ID:               "4512",
			Name:             "Volvo VNL 760",
			Type:             "Reefer",
			Capacity:         42000,
			CurrentLoad:      38000,
			Status:           model.StatusLoading,
			Location:         model.Coordinates{Lat: 32.7767, Lng: -96.797},
			Destination:      "Atlanta, GA",
			Driver:           "Mike Johnson",
			FuelEfficiency:   7.2,
			MaintenanceScore: 88,
			CurrentRoute: &model.Route{
				Start:     "Dallas, TX",
				End:       "Atlanta, GA",
				Distance:  781,
				Waypoints: []string{},
			},
		},
		{
			ID:               "3390",
			Name:             "Freightliner Cascadia",
			Type:             "Dry Van",
			Capacity:         45000,
			CurrentLoad:      0,
			Status:           model.StatusAvailable,
			Location:         model.Coordinates{Lat: 39.7392, Lng: -104.9903},
			Destination:      "Denver, CO",
			Driver:           "Robert Brown",
			FuelEfficiency:   7.8,
			MaintenanceScore: 95,
		},
	}
}
