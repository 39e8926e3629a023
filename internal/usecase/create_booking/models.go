package create_booking

import (
	"time"

	"github.com/m04kA/SMC-BookingWizard/internal/domain"
	"github.com/m04kA/SMC-BookingWizard/internal/integrations/marketplace"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID         int64               // ID пользователя
	CleanerID      string              // ID выбранного клинера
	Draft          domain.BookingDraft // Накопленное состояние визарда
	IdempotencyKey string              // Ключ идемпотентности сессии визарда
}

// Response модель ответа с созданным бронированием
type Response = domain.CreatedBooking

// buildPayload собирает тело booking-create из черновика
// scheduled_at - дата+время в UTC, scheduled_end_at = scheduled_at + duration_hours, обе с точностью до секунды
func buildPayload(req *Request) (*marketplace.CreateBookingRequest, error) {
	start, err := scheduledAt(req.Draft)
	if err != nil {
		return nil, err
	}
	end := start.Add(time.Duration(req.Draft.DurationHours) * time.Hour)

	addOns := domain.NormalizeAddOns(req.Draft.AddOns)
	if addOns == nil {
		addOns = []string{}
	}

	a := req.Draft.Address
	return &marketplace.CreateBookingRequest{
		CleanerID:      req.CleanerID,
		ServiceType:    string(req.Draft.ServiceType),
		DurationHours:  req.Draft.DurationHours,
		ScheduledAt:    start,
		ScheduledEndAt: end.Truncate(time.Second),
		Address: marketplace.BookingAddress{
			Street: a.Street,
			Line2:  a.Line2,
			City:   a.City,
			State:  a.State,
			Zip:    a.Zip,
		},
		SpecialInstructions: req.Draft.SpecialInstructions,
		AddOns:              addOns,
		IdempotencyKey:      req.IdempotencyKey,
	}, nil
}

func scheduledAt(d domain.BookingDraft) (time.Time, error) {
	if !d.HasSchedule() {
		return time.Time{}, ErrScheduleRequired
	}
	t, err := time.ParseInLocation(domain.DateFormat+" "+domain.TimeFormat, d.ScheduledDate+" "+d.ScheduledTime, time.UTC)
	if err != nil {
		return time.Time{}, ErrScheduleRequired
	}
	return t.Truncate(time.Second), nil
}
