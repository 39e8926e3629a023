package holiday

import "errors"

var (
	// ErrSource возвращается, когда источник праздников вернул ошибку
	ErrSource = errors.New("holiday cache: source error")
)
