package drafts

import "errors"

var (
	// ErrDraftNotFound возвращается, когда у пользователя нет черновика
	ErrDraftNotFound = errors.New("draft not found")

	// ErrInvalidInput возвращается при некорректных полях черновика
	ErrInvalidInput = errors.New("invalid draft data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("drafts service: internal error")
)
