package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/avelora/flightbook/internal/domain"
	"github.com/avelora/flightbook/internal/service/booking"
	"github.com/avelora/flightbook/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
	flights flights.FlightUseCase
}

func NewBookingHandler(service booking.BookingUseCase, flightSvc flights.FlightUseCase) *BookingHandler {
	return &BookingHandler{service: service, flights: flightSvc}
}

type confirmationResponse struct {
	FlightID        string `json:"flight_id"`
	SeatID          string `json:"seat_id"`
	PassengerName   string `json:"passenger_name"`
	ReservationID   string `json:"reservation_id"`
	PaymentID       string `json:"payment_id"`
	Amount          int64  `json:"amount"`
	PaymentDueDate  string `json:"payment_due_date"`
	PassengersCount int    `json:"passengers_count"`
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.GET("/book/:flight_id", h.seatMap)
	router.POST("/book/:flight_id", h.create)
}

// seatMap serves the booking page data: flight header plus every seat with
// class, price and booked flag.
func (h *BookingHandler) seatMap(c *gin.Context) {
	flightID := c.Param("flight_id")
	passengers := passengerCount(c)

	flight, seats, err := h.loadSeatMap(c, flightID)
	if err != nil {
		if errors.Is(err, domain.ErrFlightNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"flight":     flight,
		"seats":      seats,
		"passengers": passengers,
	})
}

// create handles the booking form POST: comma-separated seat_ids plus
// per-passenger fields suffixed with the 1-based passenger index.
func (h *BookingHandler) create(c *gin.Context) {
	flightID := c.Param("flight_id")
	passengers := passengerCount(c)

	seatIDs := splitSeatIDs(c.PostForm("seat_ids"))

	input := booking.CreateBookingInput{
		FlightID:       flightID,
		PassengerCount: passengers,
		SeatIDs:        seatIDs,
		Passengers:     parsePassengers(c, passengers),
	}

	result, err := h.service.CreateBooking(c.Request.Context(), input)
	if err != nil {
		h.renderError(c, flightID, passengers, err)
		return
	}

	primaryPassenger, primaryReservation, primaryPayment := result.Primary()
	c.JSON(http.StatusCreated, confirmationResponse{
		FlightID:        result.FlightID,
		SeatID:          primaryReservation.SeatID,
		PassengerName:   primaryPassenger.FullName(),
		ReservationID:   primaryReservation.ID,
		PaymentID:       primaryPayment.ID,
		Amount:          primaryPayment.Amount,
		PaymentDueDate:  primaryPayment.DueDate.Format(time.DateOnly),
		PassengersCount: len(result.Passengers),
	})
}

// renderError maps booking failures onto responses. A seat shortfall
// re-renders the seat map with the message so the form can be corrected.
func (h *BookingHandler) renderError(c *gin.Context, flightID string, passengers int, err error) {
	var shortfall *domain.ErrSeatShortfall
	switch {
	case errors.As(err, &shortfall):
		flight, seats, loadErr := h.loadSeatMap(c, flightID)
		if loadErr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": loadErr.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      shortfall.Error(),
			"flight":     flight,
			"seats":      seats,
			"passengers": passengers,
		})
	case errors.Is(err, domain.ErrSeatTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrFlightNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (h *BookingHandler) loadSeatMap(c *gin.Context, flightID string) (*domain.Flight, []domain.Seat, error) {
	flight, err := h.flights.GetByID(c.Request.Context(), flightID)
	if err != nil {
		return nil, nil, err
	}
	seats, err := h.flights.SeatMap(c.Request.Context(), flightID)
	if err != nil {
		return nil, nil, err
	}
	return flight, seats, nil
}

// passengerCount reads the count from query or form, defaulting to 1 and
// never going below it.
func passengerCount(c *gin.Context) int {
	raw := c.Query("passengers")
	if raw == "" {
		raw = c.PostForm("passengers")
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func splitSeatIDs(raw string) []string {
	parts := strings.Split(raw, ",")
	seatIDs := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			seatIDs = append(seatIDs, s)
		}
	}
	return seatIDs
}

func parsePassengers(c *gin.Context, count int) []booking.PassengerDetails {
	details := make([]booking.PassengerDetails, 0, count)
	for i := 1; i <= count; i++ {
		details = append(details, booking.PassengerDetails{
			FirstName:   c.PostForm(fmt.Sprintf("first_name_%d", i)),
			LastName:    c.PostForm(fmt.Sprintf("last_name_%d", i)),
			Email:       c.PostForm(fmt.Sprintf("email_%d", i)),
			PhoneNumber: c.PostForm(fmt.Sprintf("phone_number_%d", i)),
			Address:     c.PostForm(fmt.Sprintf("address_%d", i)),
			City:        c.PostForm(fmt.Sprintf("city_%d", i)),
			State:       c.PostForm(fmt.Sprintf("state_%d", i)),
			Zipcode:     c.PostForm(fmt.Sprintf("zipcode_%d", i)),
			Country:     c.PostForm(fmt.Sprintf("country_%d", i)),
		})
	}
	return details
}
