package pix

import (
	"fmt"
	"strconv"
)

type Field struct {
	ID    string
	Value string
}

// Parse splits a TLV sequence into its top-level fields.
func Parse(s string) ([]Field, error) {
	var out []Field
	for i := 0; i < len(s); {
		if i+4 > len(s) {
			return nil, fmt.Errorf("truncated field header at %d", i)
		}
		n, err := strconv.Atoi(s[i+2 : i+4])
		if err != nil {
			return nil, fmt.Errorf("invalid length at %d: %w", i, err)
		}
		end := i + 4 + n
		if end > len(s) {
			return nil, fmt.Errorf("field %s overflows payload", s[i:i+2])
		}
		out = append(out, Field{ID: s[i : i+2], Value: s[i+4 : end]})
		i = end
	}
	return out, nil
}

// Verify checks structure and trailing checksum of a complete code.
func Verify(code string) bool {
	fields, err := Parse(code)
	if err != nil || len(fields) == 0 {
		return false
	}
	last := fields[len(fields)-1]
	if last.ID != idCRC || len(last.Value) != 4 {
		return false
	}
	body := code[:len(code)-4]
	return Checksum(body) == last.Value
}
