package types

import (
	"bytes"
	"encoding/json"
)

// OmitemptyFlag
//
// UnMarshal:
//
// * "101" = ((0b101, true), true)
//
// * null = ((0, false), true)
//
// * omitempty = ((0, false), false)
type OmitemptyFlag struct {
	NullFlag NullFlag
	Valid    bool
}

func (f *OmitemptyFlag) UnmarshalJSON(data []byte) error {
	f.Valid = true

	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	if err := json.Unmarshal(data, &f.NullFlag); err != nil {
		return err
	}

	return nil
}
