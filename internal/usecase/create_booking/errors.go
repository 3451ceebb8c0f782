package create_booking

import "errors"

var (
	// ErrProviderNotFound возвращается, когда мастер не найден или неактивен
	ErrProviderNotFound = errors.New("create_booking: provider not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrTooSoon возвращается, когда начало нарушает правило минимального
	// заблаговременного бронирования (minAdvanceHours)
	ErrTooSoon = errors.New("create_booking: too late to book this slot")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение maxAdvanceDays
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrOutsideWorkingHours возвращается, когда запрошенный интервал не
	// помещается целиком в одно рабочее окно мастера
	ErrOutsideWorkingHours = errors.New("create_booking: outside provider working hours")

	// ErrProviderUnavailable возвращается, когда интервал пересекается с time-off мастера
	ErrProviderUnavailable = errors.New("create_booking: provider is unavailable at this time")

	// ErrSlotConflict возвращается, когда интервал пересекается с существующим
	// бронированием (с учётом буфера)
	ErrSlotConflict = errors.New("create_booking: slot is no longer available")

	// ErrConcurrencyConflict возвращается, когда транзакция допуска проиграла
	// гонку сериализации; клиент может повторить запрос
	ErrConcurrencyConflict = errors.New("create_booking: concurrent booking attempt, please retry")

	// ErrCodeGeneration возвращается, когда не удалось подобрать уникальный
	// код подтверждения за отведённое число попыток
	ErrCodeGeneration = errors.New("create_booking: failed to generate confirmation code")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
