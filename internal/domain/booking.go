package domain

import "time"

// BookingStatus status of a booking as reported by the marketplace
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
)

// CreatedBooking booking returned by the marketplace after a successful submission
type CreatedBooking struct {
	ID             string
	Status         BookingStatus
	CleanerID      string
	ScheduledAt    time.Time
	ScheduledEndAt time.Time
	TotalPrice     *float64
}

// BookingCreatedEvent published after a successful submission
type BookingCreatedEvent struct {
	BookingID      string    `json:"booking_id"`
	UserID         int64     `json:"user_id"`
	CleanerID      string    `json:"cleaner_id"`
	ServiceType    string    `json:"service_type"`
	ScheduledAt    time.Time `json:"scheduled_at"`
	ScheduledEndAt time.Time `json:"scheduled_end_at"`
	IdempotencyKey string    `json:"idempotency_key"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// EventBookingCreated event type of BookingCreatedEvent
const EventBookingCreated = "booking.created"
