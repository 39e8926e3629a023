package marketplace

import (
	"errors"
	"fmt"
)

var (
	// ErrCleanerNotFound возвращается, когда клинер не найден
	ErrCleanerNotFound = errors.New("cleaner not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("marketplace client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("marketplace client: invalid response")
)

// APIError ошибка, которую бэкенд вернул в конверте {"error":{"message":...}}
// Message показывается пользователю как есть
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("marketplace: status %d: %s", e.StatusCode, e.Message)
}
