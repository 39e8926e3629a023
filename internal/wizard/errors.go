package wizard

import "errors"

var (
	// ErrCleanerRequired визард открыт без выбранного клинера
	ErrCleanerRequired = errors.New("wizard: cleaner is required")

	// ErrCleanerNotFound выбранный клинер не существует
	ErrCleanerNotFound = errors.New("wizard: cleaner not found")

	// ErrSessionNotFound сессия не найдена или уже закрыта
	ErrSessionNotFound = errors.New("wizard: session not found")

	// ErrAccessDenied сессия принадлежит другому пользователю
	ErrAccessDenied = errors.New("wizard: access denied")

	// ErrSessionClosed операция над закрытой сессией
	ErrSessionClosed = errors.New("wizard: session closed")

	// ErrInvalidDraft правка черновика не прошла валидацию
	ErrInvalidDraft = errors.New("wizard: invalid draft")

	// ErrNotTerminalStep отправка возможна только с последнего шага
	ErrNotTerminalStep = errors.New("wizard: submit is only available on the confirm step")

	// ErrSubmissionInProgress бронирование уже отправляется
	ErrSubmissionInProgress = errors.New("wizard: submission in progress")

	// ErrAlreadySubmitted бронирование уже создано в этой сессии
	ErrAlreadySubmitted = errors.New("wizard: booking already submitted")

	// ErrDraftSave ручное сохранение черновика не удалось
	ErrDraftSave = errors.New("wizard: failed to save draft")

	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("wizard: internal error")
)

// RecoveryReturnToSearch действие восстановления для ErrCleanerRequired и ErrCleanerNotFound
const RecoveryReturnToSearch = "return_to_search"
