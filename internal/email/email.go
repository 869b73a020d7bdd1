package email

import (
	"context"
	"fmt"

	"github.com/avelora/flightbook/internal/kafka"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	switch event.Type {
	case "payment_due":
		fmt.Printf("send payment reminder to %s: %d due %s for reservation %v\n",
			event.Email, event.Amount, event.PaymentDue.Format("2006-01-02"), event.ReservationIDs)
	default:
		fmt.Printf("send email to %s about %s for flight %s seats %v\n",
			event.Email, event.Type, event.FlightID, event.SeatIDs)
	}
	return nil
}
