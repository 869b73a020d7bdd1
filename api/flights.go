package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/avelora/flightbook/internal/domain"
	"github.com/avelora/flightbook/internal/service/flights"
	"github.com/avelora/flightbook/internal/service/reference"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service   flights.FlightUseCase
	reference reference.ReferenceUseCase
}

func NewFlightHandler(service flights.FlightUseCase, ref reference.ReferenceUseCase) *FlightHandler {
	return &FlightHandler{service: service, reference: ref}
}

type searchFlightsQuery struct {
	Source      string `form:"source" binding:"required,airportcode"`
	Destination string `form:"destination" binding:"required,airportcode"`
	Date        string `form:"date" binding:"omitempty,datetime=2006-01-02"`
}

type flightResponse struct {
	FlightID     string `json:"flight_id"`
	Source       string `json:"source"`
	Destination  string `json:"destination"`
	SourceCity   string `json:"source_city,omitempty"`
	DestCity     string `json:"destination_city,omitempty"`
	Departure    string `json:"departure"`
	Arrival      string `json:"arrival"`
	AirplaneType string `json:"airplane_type"`
	LowestPrice  int64  `json:"lowest_price"`
	TravelClass  string `json:"travel_class"`
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("/flights/search", h.search)
	router.GET("/flights/:flight_id/seats", h.seats)
	router.POST("/search_flights", h.searchForm)
	router.GET("/select_flight", h.selectFlight)
	router.POST("/return_flight_search", h.returnFlightSearch)
}

// search is the JSON API: GET /flights/search?source=KHI&destination=DXB.
func (h *FlightHandler) search(c *gin.Context) {
	var q searchFlightsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "source and destination are required"})
		return
	}

	query := flights.SearchQuery{Source: q.Source, Destination: q.Destination}
	if q.Date != "" {
		day, err := time.Parse("2006-01-02", q.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
			return
		}
		query.Date = &day
	}

	results, err := h.service.Search(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toFlightResponses(results))
}

// seats is the JSON API: GET /flights/:flight_id/seats.
func (h *FlightHandler) seats(c *gin.Context) {
	flightID := c.Param("flight_id")
	seats, err := h.service.SeatMap(c.Request.Context(), flightID)
	if err != nil {
		if errors.Is(err, domain.ErrFlightNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, seats)
}

// searchForm backs the search form: POST /search_flights. The form submits
// airport codes; the response echoes the criteria with resolved city and
// class display names for the results header.
func (h *FlightHandler) searchForm(c *gin.Context) {
	departureCity := c.PostForm("departure_city")
	arrivalCity := c.PostForm("arrival_city")
	departureDate := c.PostForm("departure_date")
	travelClass := c.PostForm("travel_class")
	passengers := c.DefaultPostForm("passengers", "1")
	tripType := c.DefaultPostForm("trip_type", "one_way")

	query := flights.SearchQuery{Source: departureCity, Destination: arrivalCity}
	if departureDate != "" {
		if day, err := time.Parse("2006-01-02", departureDate); err == nil {
			query.Date = &day
		}
	}

	results, err := h.service.Search(c.Request.Context(), query)
	if err != nil {
		if errors.Is(err, flights.ErrMissingSource) || errors.Is(err, flights.ErrMissingDestination) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"flights": []flightResponse{},
			"error":   "No flights found or invalid search criteria",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"flights": toFlightResponses(results),
		"search_criteria": gin.H{
			"departure_city": h.cityName(c, departureCity),
			"arrival_city":   h.cityName(c, arrivalCity),
			"date":           departureDate,
			"travel_class":   h.className(c, travelClass),
			"passengers":     passengers,
			"trip_type":      tripType,
		},
	})
}

// selectFlight branches on trip type: round trips get a return-date prompt,
// one-way goes straight to the booking page.
func (h *FlightHandler) selectFlight(c *gin.Context) {
	flightID := c.Query("flight_id")
	tripType := c.DefaultQuery("trip_type", "one_way")
	passengers := c.DefaultQuery("passengers", "1")
	travelClass := c.Query("travel_class")
	departureCity := c.Query("departure_city")
	arrivalCity := c.Query("arrival_city")
	departureDate := c.Query("date")
	if departureDate == "" {
		departureDate = c.Query("departure_date")
	}

	if tripType == "round_trip" {
		c.JSON(http.StatusOK, gin.H{
			"prompt":         "return_date",
			"flight_id":      flightID,
			"passengers":     passengers,
			"travel_class":   travelClass,
			"departure_city": departureCity,
			"arrival_city":   arrivalCity,
			"departure_date": departureDate,
		})
		return
	}

	c.Redirect(http.StatusFound, "/book/"+flightID+"?passengers="+passengers)
}

// returnFlightSearch carries the return date as booking metadata. No return
// flight is searched for; the original behaves the same way.
func (h *FlightHandler) returnFlightSearch(c *gin.Context) {
	flightID := c.PostForm("flight_id")
	passengers := c.DefaultPostForm("passengers", "1")
	returnDate := c.PostForm("return_date")

	c.Redirect(http.StatusFound,
		"/book/"+flightID+"?passengers="+passengers+"&trip_type=round_trip&return_date="+returnDate)
}

func (h *FlightHandler) cityName(c *gin.Context, code string) string {
	if code == "" {
		return code
	}
	airport, err := h.reference.Airport(c.Request.Context(), code)
	if err != nil || airport == nil {
		return code
	}
	return airport.City
}

func (h *FlightHandler) className(c *gin.Context, classID string) string {
	if classID == "" {
		return classID
	}
	classes, err := h.reference.TravelClasses(c.Request.Context())
	if err != nil {
		return classID
	}
	for _, tc := range classes {
		if tc.ID == classID {
			return tc.Name
		}
	}
	return classID
}

func toFlightResponses(results []domain.FlightSummary) []flightResponse {
	out := make([]flightResponse, 0, len(results))
	for _, fs := range results {
		out = append(out, flightResponse{
			FlightID:     fs.ID,
			Source:       fs.SourceAirport,
			Destination:  fs.DestinationAirport,
			SourceCity:   fs.SourceCity,
			DestCity:     fs.DestinationCity,
			Departure:    fs.DepartureTime.Format("2006-01-02 15:04"),
			Arrival:      fs.ArrivalTime.Format("2006-01-02 15:04"),
			AirplaneType: fs.AirplaneType,
			LowestPrice:  fs.LowestPrice,
			TravelClass:  fs.TravelClass,
		})
	}
	return out
}
