package marketplace

import (
	"time"

	"github.com/m04kA/SMC-BookingWizard/internal/domain"
)

// Cleaner модель клинера из маркетплейса
type Cleaner struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	PricePerHour *float64 `json:"price_per_hour"`
	Rating       float64  `json:"rating"`
	ReviewsCount int      `json:"reviews_count"`
}

// ToDomain конвертирует модель в domain
func (c *Cleaner) ToDomain() *domain.Cleaner {
	return &domain.Cleaner{
		ID:           c.ID,
		Name:         c.Name,
		PricePerHour: c.PricePerHour,
		Rating:       c.Rating,
		ReviewsCount: c.ReviewsCount,
	}
}

// HolidayResponse ответ holiday-by-date: holiday = null, если дата не праздничная
type HolidayResponse struct {
	Holiday *Holiday `json:"holiday"`
}

// Holiday праздник на дату
type Holiday struct {
	Name           string `json:"name,omitempty"`
	SupportLimited bool   `json:"support_limited"`
}

// ToDomain конвертирует модель в domain; любой найденный праздник считается федеральным
func (h *Holiday) ToDomain() *domain.Holiday {
	if h == nil {
		return nil
	}
	return &domain.Holiday{
		Name:           h.Name,
		Federal:        true,
		SupportLimited: h.SupportLimited,
	}
}

// EstimateRequest запрос оценки цены
type EstimateRequest struct {
	CleanerID     string   `json:"cleaner_id"`
	ServiceType   string   `json:"service_type"`
	DurationHours int      `json:"duration_hours"`
	AddOns        []string `json:"add_ons"`
}

// Estimate ответ оценки цены
type Estimate struct {
	Price float64 `json:"price"`
}

// BookingAddress адрес в запросе создания бронирования
type BookingAddress struct {
	Street string `json:"street"`
	Line2  string `json:"line2,omitempty"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

// CreateBookingRequest тело запроса booking-create
type CreateBookingRequest struct {
	CleanerID           string         `json:"cleaner_id"`
	ServiceType         string         `json:"service_type"`
	DurationHours       int            `json:"duration_hours"`
	ScheduledAt         time.Time      `json:"scheduled_at"`
	ScheduledEndAt      time.Time      `json:"scheduled_end_at"`
	Address             BookingAddress `json:"address"`
	SpecialInstructions string         `json:"special_instructions,omitempty"`
	AddOns              []string       `json:"add_ons"`
	IdempotencyKey      string         `json:"idempotency_key"`
}

// Booking созданное бронирование
type Booking struct {
	ID             string    `json:"id"`
	Status         string    `json:"status"`
	CleanerID      string    `json:"cleaner_id"`
	ScheduledAt    time.Time `json:"scheduled_at"`
	ScheduledEndAt time.Time `json:"scheduled_end_at"`
	TotalPrice     *float64  `json:"total_price,omitempty"`
}

// ToDomain конвертирует модель в domain
func (b *Booking) ToDomain() *domain.CreatedBooking {
	return &domain.CreatedBooking{
		ID:             b.ID,
		Status:         domain.BookingStatus(b.Status),
		CleanerID:      b.CleanerID,
		ScheduledAt:    b.ScheduledAt,
		ScheduledEndAt: b.ScheduledEndAt,
		TotalPrice:     b.TotalPrice,
	}
}

// ErrorResponse конверт ошибки бэкенда
type ErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}
