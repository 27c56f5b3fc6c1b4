package email

import (
	"context"
	"fmt"

	"github.com/zvrva/littlelemon/internal/kafka"
)

// Sender is a stand-in notification transport; it only logs what a real
// mailer would send.
type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	fmt.Printf("notify %s: %s for %d guests at %s\n", event.Name, event.Type, event.NoOfGuests, event.BookingDate.Format("2006-01-02 15:04"))
	return nil
}
