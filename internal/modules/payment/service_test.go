package payment

import (
	"context"
	"testing"
	"time"

	"kosrental/internal/domain"
	"kosrental/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	args := m.Called(ctx, p)
	if p != nil {
		p.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockPaymentRepository) UpdateStatus(ctx context.Context, paymentID int64, status domain.PaymentStatus) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListRowsByUser(ctx context.Context, userID int64) ([]repository.PaymentRow, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.PaymentRow), args.Error(1)
}

func (m *MockPaymentRepository) ListRowsAll(ctx context.Context) ([]repository.PaymentRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.PaymentRow), args.Error(1)
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) IsOwnedByUser(ctx context.Context, bookingID, userID int64) (bool, error) {
	args := m.Called(ctx, bookingID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) SetPaymentProof(ctx context.Context, bookingID int64, proofRef string) error {
	args := m.Called(ctx, bookingID, proofRef)
	return args.Error(0)
}

func TestService_CreatePayment_Success(t *testing.T) {
	mockPayments := new(MockPaymentRepository)
	mockBookings := new(MockBookingRepository)

	mockBookings.On("IsOwnedByUser", mock.Anything, int64(42), int64(7)).Return(true, nil)
	mockBookings.On("SetPaymentProof", mock.Anything, int64(42), "feb.jpg").Return(nil)
	mockPayments.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Payment) bool {
		return p.BookingID == 42 && p.Status == domain.PaymentPending && p.PaymentProof == "feb.jpg"
	})).Return(nil)

	service := NewService(mockPayments, mockBookings)

	p, err := service.CreatePayment(context.Background(), CreatePaymentRequest{
		UserID:       7,
		BookingID:    42,
		PaymentProof: "feb.jpg",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.PaymentPending, p.Status)
	mockPayments.AssertExpectations(t)
}

// Submitting against someone else's booking reads as missing.
func TestService_CreatePayment_NotOwner(t *testing.T) {
	mockPayments := new(MockPaymentRepository)
	mockBookings := new(MockBookingRepository)

	mockBookings.On("IsOwnedByUser", mock.Anything, int64(42), int64(8)).Return(false, nil)

	service := NewService(mockPayments, mockBookings)

	_, err := service.CreatePayment(context.Background(), CreatePaymentRequest{
		UserID:       8,
		BookingID:    42,
		PaymentProof: "feb.jpg",
	})

	assert.ErrorIs(t, err, ErrBookingNotFound)
	mockPayments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_VerifyPayment_Success(t *testing.T) {
	mockPayments := new(MockPaymentRepository)

	mockPayments.On("UpdateStatus", mock.Anything, int64(5), domain.PaymentVerified).Return(&domain.Payment{
		ID: 5, BookingID: 42, Status: domain.PaymentVerified,
	}, nil)

	service := NewService(mockPayments, new(MockBookingRepository))

	p, err := service.VerifyPayment(context.Background(), 5, VerifyPaymentRequest{Status: "VERIFIED"})

	assert.NoError(t, err)
	assert.Equal(t, domain.PaymentVerified, p.Status)
}

// Verification is an unconditional overwrite: a later decision
// replaces the earlier one.
func TestService_VerifyPayment_LastWriteWins(t *testing.T) {
	mockPayments := new(MockPaymentRepository)

	mockPayments.On("UpdateStatus", mock.Anything, int64(5), domain.PaymentVerified).Return(&domain.Payment{
		ID: 5, Status: domain.PaymentVerified,
	}, nil).Once()
	mockPayments.On("UpdateStatus", mock.Anything, int64(5), domain.PaymentRejected).Return(&domain.Payment{
		ID: 5, Status: domain.PaymentRejected,
	}, nil).Once()

	service := NewService(mockPayments, new(MockBookingRepository))

	p, err := service.VerifyPayment(context.Background(), 5, VerifyPaymentRequest{Status: "VERIFIED"})
	assert.NoError(t, err)
	assert.Equal(t, domain.PaymentVerified, p.Status)

	p, err = service.VerifyPayment(context.Background(), 5, VerifyPaymentRequest{Status: "REJECTED"})
	assert.NoError(t, err)
	assert.Equal(t, domain.PaymentRejected, p.Status)

	mockPayments.AssertExpectations(t)
}

func TestService_VerifyPayment_NotFound(t *testing.T) {
	mockPayments := new(MockPaymentRepository)

	mockPayments.On("UpdateStatus", mock.Anything, int64(404), domain.PaymentVerified).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(mockPayments, new(MockBookingRepository))

	_, err := service.VerifyPayment(context.Background(), 404, VerifyPaymentRequest{Status: "VERIFIED"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_VerifyPayment_InvalidStatus(t *testing.T) {
	service := NewService(new(MockPaymentRepository), new(MockBookingRepository))

	_, err := service.VerifyPayment(context.Background(), 5, VerifyPaymentRequest{Status: "PENDING"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_ListAllPayments_RecomputesAmountDue(t *testing.T) {
	mockPayments := new(MockPaymentRepository)

	moveIn := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	moveOut := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC) // 61 days -> 3 months

	mockPayments.On("ListRowsAll", mock.Anything).Return([]repository.PaymentRow{
		{
			ID: 5, BookingID: 42, PaymentProof: "jan.jpg", Status: string(domain.PaymentPending),
			UserID: 7, UserName: "Budi Santoso", UserEmail: "budi@gmail.com",
			RoomCode: "A1", TypeName: "Kamar AC",
			Price: 1600000, MoveInDate: moveIn, MoveOutDate: moveOut,
		},
	}, nil)

	service := NewService(mockPayments, new(MockBookingRepository))

	details, err := service.ListAllPayments(context.Background())

	assert.NoError(t, err)
	assert.Len(t, details, 1)
	assert.Equal(t, 4800000.0, details[0].AmountDue)
	assert.Equal(t, "Budi Santoso", details[0].UserName)
}

func TestService_ListMyPayments_OmitsUserBlock(t *testing.T) {
	mockPayments := new(MockPaymentRepository)

	mockPayments.On("ListRowsByUser", mock.Anything, int64(7)).Return([]repository.PaymentRow{
		{
			ID: 5, BookingID: 42, Status: string(domain.PaymentVerified),
			UserID: 7, UserName: "Budi Santoso",
			RoomCode: "A1", Price: 1600000,
			MoveInDate:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			MoveOutDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		},
	}, nil)

	service := NewService(mockPayments, new(MockBookingRepository))

	details, err := service.ListMyPayments(context.Background(), 7)

	assert.NoError(t, err)
	assert.Len(t, details, 1)
	assert.Empty(t, details[0].UserName)
	assert.Equal(t, 1600000.0, details[0].AmountDue)
}
