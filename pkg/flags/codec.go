package flags

import (
	"database/sql/driver"
	"fmt"
	"strconv"
)

// String возвращает двоичную запись значения без ведущих нулей и
// разделителей: Flag(5) -> "101", Flag(0) -> "0".
func (f Flag) String() string {
	return strconv.FormatUint(uint64(f), 2)
}

// ParseFlag разбирает двоичную запись, полученную из String.
func ParseFlag(s string) (Flag, error) {
	v, err := strconv.ParseUint(s, 2, 64)
	if err != nil {
		return 0, fmt.Errorf("parse flag %q: %w", s, err)
	}

	return Flag(v), nil
}

// MarshalText сериализует значение в двоичную текстовую форму.
func (f Flag) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText восстанавливает значение из двоичной текстовой формы.
func (f *Flag) UnmarshalText(data []byte) error {
	v, err := ParseFlag(string(data))
	if err != nil {
		return err
	}

	*f = v
	return nil
}

// Scan читает значение из BIGINT колонки, биты сохраняются как есть.
func (f *Flag) Scan(value interface{}) error {
	switch v := value.(type) {
	case int64:
		*f = Flag(uint64(v))
	case uint64:
		*f = Flag(v)
	case nil:
		return fmt.Errorf("cannot scan <nil> into Flag: %w", ErrNotConvertible)
	default:
		return fmt.Errorf("cannot scan %T into Flag: %w", value, ErrNotConvertible)
	}

	return nil
}

// Value сохраняет биты значения в int64 для BIGINT колонки.
func (f Flag) Value() (driver.Value, error) {
	return int64(uint64(f)), nil
}
