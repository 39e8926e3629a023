package create_booking

import (
	"errors"
)

// FallbackMessage показывается пользователю, если бэкенд не прислал сообщение об ошибке
const FallbackMessage = "Failed to create booking. Please try again."

var (
	// ErrScheduleRequired возвращается, когда в черновике нет даты или времени
	ErrScheduleRequired = errors.New("create_booking: scheduled date and time are required")

	// ErrRejected возвращается, когда бэкенд отклонил бронирование с сообщением для пользователя
	ErrRejected = errors.New("create_booking: rejected by marketplace")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// RejectedError отказ бэкенда; Message показывается пользователю как есть
type RejectedError struct {
	StatusCode int
	Message    string
}

func (e *RejectedError) Error() string {
	return ErrRejected.Error() + ": " + e.Message
}

// Unwrap позволяет проверять ошибку через errors.Is(err, ErrRejected)
func (e *RejectedError) Unwrap() error {
	return ErrRejected
}

// UserMessage сообщение об ошибке для уведомления пользователя
func UserMessage(err error) string {
	var rejected *RejectedError
	if errors.As(err, &rejected) && rejected.Message != "" {
		return rejected.Message
	}
	if errors.Is(err, ErrScheduleRequired) {
		return "Please choose a date and time for your booking."
	}
	return FallbackMessage
}
