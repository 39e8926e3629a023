package create_booking

import (
	"fmt"
	"strings"
)

// validateRequest валидирует входные данные запроса
// Адрес намеренно не проверяется: его валидирует бэкенд, а его сообщение показывается пользователю
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if strings.TrimSpace(req.CleanerID) == "" {
		return fmt.Errorf("%w: cleanerID is required", ErrInvalidInput)
	}

	if req.Draft.DurationHours <= 0 {
		return fmt.Errorf("%w: duration_hours must be positive", ErrInvalidInput)
	}

	if strings.TrimSpace(req.IdempotencyKey) == "" {
		return fmt.Errorf("%w: idempotency key is required", ErrInvalidInput)
	}

	return nil
}
