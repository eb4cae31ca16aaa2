package plot

import "errors"

// Все ошибки пакета проверяются через errors.Is; контекст добавляется
// снаружи через fmt.Errorf("...: %w", ErrX).
var (
	// ErrSizeMismatch - две парные последовательности разной длины.
	ErrSizeMismatch = errors.New("plot: size mismatch")

	// ErrOutOfRange - индекс столбца, строки, кластера или компоненты вне границ.
	ErrOutOfRange = errors.New("plot: index out of range")

	// ErrInvalidArgument - нечисловые данные там, где нужны числа, неизвестный тип серии и т.п.
	ErrInvalidArgument = errors.New("plot: invalid argument")

	// ErrUnsupportedFormat - неизвестный формат отрисовки или сохранения.
	ErrUnsupportedFormat = errors.New("plot: unsupported format")
)
