package flags

import (
	"fmt"
	"reflect"
)

// Bits ограничение на типы, приводимые к 64-битному шаблону: целые и любые
// именованные типы поверх них (константы-флаги вызывающей стороны, сам Flag).
type Bits interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Combine объединяет значения в один битовый шаблон через OR.
// Без аргументов возвращает пустой шаблон. Знаковые значения приводятся
// бит-в-бит (дополнительный код).
func Combine[T Bits](values ...T) Flag {
	var p Flag
	for _, v := range values {
		p |= Flag(uint64(v))
	}

	return p
}

// New создает Flag как OR-комбинацию переданных значений: сырых целых,
// именованных констант или других Flag. Без аргументов возвращает нулевое
// значение.
func New[T Bits](values ...T) Flag {
	return Combine(values...)
}

// AsFlag приводит произвольное значение к Flag: принимает Flag и *Flag,
// любой встроенный целый тип и именованные типы с целым базовым типом.
// Для остальных значений возвращает ошибку ErrNotConvertible.
func AsFlag(v any) (Flag, error) {
	switch val := v.(type) {
	case Flag:
		return val, nil
	case *Flag:
		if val == nil {
			return 0, fmt.Errorf("cannot convert <nil>: %w", ErrNotConvertible)
		}
		return *val, nil
	case uint64:
		return Flag(val), nil
	case int64:
		return Flag(uint64(val)), nil
	case int:
		return Flag(uint64(val)), nil
	case uint:
		return Flag(uint64(val)), nil
	case int8:
		return Flag(uint64(val)), nil
	case int16:
		return Flag(uint64(val)), nil
	case int32:
		return Flag(uint64(val)), nil
	case uint8:
		return Flag(uint64(val)), nil
	case uint16:
		return Flag(uint64(val)), nil
	case uint32:
		return Flag(uint64(val)), nil
	case nil:
		return 0, fmt.Errorf("cannot convert <nil>: %w", ErrNotConvertible)
	}

	// именованные типы констант приходят сюда через any без конкретного case
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Flag(uint64(rv.Int())), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Flag(rv.Uint()), nil
	}

	return 0, fmt.Errorf("cannot convert %T: %w", v, ErrNotConvertible)
}
