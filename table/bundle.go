package table

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// EncodeBundle encodes t in deterministic CBOR, for tools that
// need the tables without parsing C.
func EncodeBundle(t *Table) ([]byte, error) {
	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return nil, fmt.Errorf("bundle: %w", err)
	}
	b, err := enc.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("bundle: %w", err)
	}
	return b, nil
}

func DecodeBundle(data []byte) (*Table, error) {
	mode, err := cbor.DecOptions{
		ExtraReturnErrors: cbor.ExtraDecErrorUnknownField,
	}.DecMode()
	if err != nil {
		return nil, fmt.Errorf("bundle: %w", err)
	}
	t := new(Table)
	if err := mode.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("bundle: %w", err)
	}
	for i := 1; i < len(t.Mappings); i++ {
		if t.Mappings[i-1].Rune >= t.Mappings[i].Rune {
			return nil, fmt.Errorf("bundle: mappings not sorted at %U", t.Mappings[i].Rune)
		}
	}
	return t, nil
}
