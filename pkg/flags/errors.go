package flags

import "errors"

var (
	// ErrNotConvertible значение невозможно привести к 64-битному шаблону.
	ErrNotConvertible = errors.New("value is not convertible to a 64-bit pattern")

	// ErrUnknownValue для значения нет именованной константы в наборе.
	ErrUnknownValue = errors.New("no named constant for value")

	// ErrUnknownName имя не зарегистрировано в наборе констант.
	ErrUnknownName = errors.New("unknown constant name")

	// ErrInvalidEnum некорректное определение набора констант.
	ErrInvalidEnum = errors.New("invalid enum definition")
)
