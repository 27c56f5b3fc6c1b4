package booking

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/zvrva/littlelemon/internal/domain"
	"github.com/zvrva/littlelemon/internal/kafka"
	"github.com/zvrva/littlelemon/internal/repository"
)

type BookingUseCase interface {
	List(ctx context.Context) ([]domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Create(ctx context.Context, input BookingInput) (*domain.Booking, error)
	Update(ctx context.Context, id int64, input BookingInput) (*domain.Booking, error)
	Delete(ctx context.Context, id int64) error
	SendDueReminders(ctx context.Context) ([]domain.Booking, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// BookingInput uses pointer fields so partial updates can leave stored
// values untouched.
type BookingInput struct {
	Name        *string
	NoOfGuests  *int
	BookingDate *string
}

type BookingService struct {
	bookings           repository.BookingRepository
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	reminderWindow     time.Duration
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func WithReminderWindow(window time.Duration) BookingServiceOption {
	return func(s *BookingService) {
		s.reminderWindow = window
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	producer Producer,
	bookingTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:       bookings,
		producer:       producer,
		bookingTopic:   bookingTopic,
		reminderWindow: 24 * time.Hour,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) List(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.List(ctx)
}

func (s *BookingService) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

func (s *BookingService) Create(ctx context.Context, input BookingInput) (*domain.Booking, error) {
	booking := &domain.Booking{}
	if err := apply(booking, input, true); err != nil {
		return nil, err
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}
	s.publish(ctx, "booking_created", booking)
	return booking, nil
}

func (s *BookingService) Update(ctx context.Context, id int64, input BookingInput) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := apply(booking, input, false); err != nil {
		return nil, err
	}

	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, err
	}
	s.publish(ctx, "booking_updated", booking)
	return booking, nil
}

func (s *BookingService) Delete(ctx context.Context, id int64) error {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.bookings.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, "booking_cancelled", booking)
	return nil
}

// SendDueReminders claims bookings starting within the reminder window and
// publishes a reminder event for each.
func (s *BookingService) SendDueReminders(ctx context.Context) ([]domain.Booking, error) {
	now := time.Now()
	due, err := s.bookings.MarkDueForReminder(ctx, now, now.Add(s.reminderWindow))
	if err != nil {
		return nil, err
	}
	for i := range due {
		s.publish(ctx, "booking_reminder", &due[i])
	}
	return due, nil
}

// publish is best effort: a dead broker must never fail the request.
func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:        eventType,
		BookingID:   booking.ID,
		Name:        booking.Name,
		NoOfGuests:  booking.NoOfGuests,
		BookingDate: booking.BookingDate.Time,
	}
	key := strconv.FormatInt(booking.ID, 10)
	if err := s.producer.Publish(ctx, s.bookingTopic, key, event); err != nil {
		log.Printf("WARNING: failed to publish %s event for booking %d: %v", eventType, booking.ID, err)
		return
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, key, event); err != nil {
			log.Printf("WARNING: failed to publish %s notification for booking %d: %v", eventType, booking.ID, err)
		}
	}
}

func apply(booking *domain.Booking, input BookingInput, requireAll bool) error {
	verrs := domain.ValidationErrors{}

	switch {
	case input.Name != nil:
		if *input.Name == "" {
			verrs["name"] = "name must not be empty"
		} else {
			booking.Name = *input.Name
		}
	case requireAll:
		verrs["name"] = "this field is required"
	}

	switch {
	case input.NoOfGuests != nil:
		if *input.NoOfGuests <= 0 {
			verrs["no_of_guests"] = "number of guests must be positive"
		} else {
			booking.NoOfGuests = *input.NoOfGuests
		}
	case requireAll:
		verrs["no_of_guests"] = "this field is required"
	}

	switch {
	case input.BookingDate != nil:
		date, err := domain.ParseBookingTime(*input.BookingDate)
		if err != nil {
			verrs["bookingDate"] = err.Error()
		} else {
			booking.BookingDate = date
		}
	case requireAll:
		verrs["bookingDate"] = "this field is required"
	}

	if len(verrs) > 0 {
		return verrs
	}
	return nil
}

var _ BookingUseCase = (*BookingService)(nil)
