package domain

import "time"

type Flight struct {
	ID                 string    `json:"flight_id"`
	SourceAirport      string    `json:"source"`
	DestinationAirport string    `json:"destination"`
	SourceCity         string    `json:"source_city"`
	DestinationCity    string    `json:"destination_city"`
	DepartureTime      time.Time `json:"departure"`
	ArrivalTime        time.Time `json:"arrival"`
	AirplaneType       string    `json:"airplane_type"`
}

// FlightSummary is a search result row: a flight plus the lowest fare found
// across its seats and the class label of the seat group that produced it.
type FlightSummary struct {
	Flight
	LowestPrice int64  `json:"lowest_price"`
	TravelClass string `json:"travel_class"`
}

type Seat struct {
	ID          string `json:"seat_id"`
	FlightID    string `json:"flight_id"`
	TravelClass string `json:"class"`
	Price       int64  `json:"price"`
	IsBooked    bool   `json:"is_booked"`
}
