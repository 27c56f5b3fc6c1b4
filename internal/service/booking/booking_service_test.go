package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/zvrva/littlelemon/internal/domain"
	"github.com/zvrva/littlelemon/internal/kafka"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	if args.Error(0) == nil {
		booking.ID = 1
	}
	return args.Error(0)
}

func (m *MockBookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookingRepository) MarkDueForReminder(ctx context.Context, from, until time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, from, until)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestBookingService_Create_Success(t *testing.T) {
	repo := &MockBookingRepository{}
	producer := &MockProducer{}
	svc := NewBookingService(repo, producer, "bookings")

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)
	producer.On("Publish", mock.Anything, "bookings", "1", mock.AnythingOfType("kafka.BookingEvent")).Return(nil)

	created, err := svc.Create(context.Background(), BookingInput{
		Name:        strPtr("Test User"),
		NoOfGuests:  intPtr(12),
		BookingDate: strPtr("2025-04-16 13:00:00"),
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "Test User", created.Name)
	assert.Equal(t, 12, created.NoOfGuests)
	assert.Equal(t, "2025-04-16T13:00:00Z", created.BookingDate.String())
	repo.AssertExpectations(t)
	producer.AssertExpectations(t)
}

func TestBookingService_Create_DateOnlyNormalizesToMidnight(t *testing.T) {
	repo := &MockBookingRepository{}
	svc := NewBookingService(repo, nil, "")

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)

	created, err := svc.Create(context.Background(), BookingInput{
		Name:        strPtr("Test User"),
		NoOfGuests:  intPtr(2),
		BookingDate: strPtr("2025-04-16"),
	})

	assert.NoError(t, err)
	assert.Equal(t, "2025-04-16T00:00:00Z", created.BookingDate.String())
}

func TestBookingService_Create_Validation(t *testing.T) {
	repo := &MockBookingRepository{}
	svc := NewBookingService(repo, nil, "")

	_, err := svc.Create(context.Background(), BookingInput{
		NoOfGuests:  intPtr(0),
		BookingDate: strPtr("not a date"),
	})

	var verrs domain.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "name")
	assert.Contains(t, verrs, "no_of_guests")
	assert.Contains(t, verrs, "bookingDate")
	repo.AssertNotCalled(t, "Create")
}

func TestBookingService_Create_PublishFailureDoesNotFail(t *testing.T) {
	repo := &MockBookingRepository{}
	producer := &MockProducer{}
	svc := NewBookingService(repo, producer, "bookings")

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)
	producer.On("Publish", mock.Anything, "bookings", "1", mock.Anything).Return(errors.New("broker down"))

	created, err := svc.Create(context.Background(), BookingInput{
		Name:        strPtr("Test User"),
		NoOfGuests:  intPtr(4),
		BookingDate: strPtr("2025-04-16 13:00:00"),
	})

	assert.NoError(t, err)
	assert.NotNil(t, created)
}

func TestBookingService_Update_Partial(t *testing.T) {
	repo := &MockBookingRepository{}
	svc := NewBookingService(repo, nil, "")

	existing := &domain.Booking{
		ID:          5,
		Name:        "Test User",
		NoOfGuests:  12,
		BookingDate: domain.NewBookingTime(time.Date(2025, 4, 16, 13, 0, 0, 0, time.UTC)),
	}
	repo.On("GetByID", mock.Anything, int64(5)).Return(existing, nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)

	updated, err := svc.Update(context.Background(), 5, BookingInput{NoOfGuests: intPtr(6)})

	assert.NoError(t, err)
	assert.Equal(t, "Test User", updated.Name)
	assert.Equal(t, 6, updated.NoOfGuests)
	assert.Equal(t, "2025-04-16T13:00:00Z", updated.BookingDate.String())
	repo.AssertExpectations(t)
}

func TestBookingService_Update_NotFound(t *testing.T) {
	repo := &MockBookingRepository{}
	svc := NewBookingService(repo, nil, "")

	repo.On("GetByID", mock.Anything, int64(404)).Return(nil, domain.ErrNotFound)

	_, err := svc.Update(context.Background(), 404, BookingInput{NoOfGuests: intPtr(2)})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBookingService_Delete_PublishesCancelled(t *testing.T) {
	repo := &MockBookingRepository{}
	producer := &MockProducer{}
	svc := NewBookingService(repo, producer, "bookings")

	existing := &domain.Booking{ID: 5, Name: "Test User", NoOfGuests: 12}
	repo.On("GetByID", mock.Anything, int64(5)).Return(existing, nil)
	repo.On("Delete", mock.Anything, int64(5)).Return(nil)
	producer.On("Publish", mock.Anything, "bookings", "5", mock.MatchedBy(func(v interface{}) bool {
		event, ok := v.(kafka.BookingEvent)
		return ok && event.Type == "booking_cancelled" && event.BookingID == 5
	})).Return(nil)

	assert.NoError(t, svc.Delete(context.Background(), 5))
	repo.AssertExpectations(t)
	producer.AssertExpectations(t)
}

func TestBookingService_SendDueReminders(t *testing.T) {
	repo := &MockBookingRepository{}
	producer := &MockProducer{}
	svc := NewBookingService(repo, producer, "bookings", WithReminderWindow(2*time.Hour))

	due := []domain.Booking{
		{ID: 1, Name: "Test User", NoOfGuests: 12},
		{ID: 2, Name: "Test User 2", NoOfGuests: 2},
	}
	repo.On("MarkDueForReminder", mock.Anything, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return(due, nil)
	producer.On("Publish", mock.Anything, "bookings", "1", mock.MatchedBy(func(v interface{}) bool {
		event, ok := v.(kafka.BookingEvent)
		return ok && event.Type == "booking_reminder"
	})).Return(nil)
	producer.On("Publish", mock.Anything, "bookings", "2", mock.Anything).Return(nil)

	got, err := svc.SendDueReminders(context.Background())

	assert.NoError(t, err)
	assert.Len(t, got, 2)
	producer.AssertExpectations(t)
}

func TestBookingService_List(t *testing.T) {
	repo := &MockBookingRepository{}
	svc := NewBookingService(repo, nil, "")

	bookings := []domain.Booking{{ID: 1, Name: "Test User", NoOfGuests: 12}}
	repo.On("List", mock.Anything).Return(bookings, nil)

	got, err := svc.List(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, bookings, got)
}
