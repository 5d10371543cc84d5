package types

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"

	"github.com/guregu/null"

	"github.com/EveryHotel/flag-tools/pkg/flags"
)

// NullFlag флаг с поддержкой NULL в JSON и БД
type NullFlag struct {
	Flag  flags.Flag
	Valid bool
}

func NewNullFlag(f flags.Flag) NullFlag {
	return NullFlag{Flag: f, Valid: true}
}

func (f NullFlag) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Flag)
}

func (f *NullFlag) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		f.Flag, f.Valid = 0, false
		return nil
	}

	if err := json.Unmarshal(data, &f.Flag); err != nil {
		return err
	}

	f.Valid = true
	return nil
}

func (f *NullFlag) Scan(v interface{}) error {
	var stored null.Int
	if err := stored.Scan(v); err != nil {
		return err
	}

	f.Flag, f.Valid = flags.Flag(uint64(stored.Int64)), stored.Valid

	return nil
}

func (f NullFlag) Value() (driver.Value, error) {
	if !f.Valid {
		return nil, nil
	}

	return f.Flag.Value()
}
