package globalid

import (
	"encoding/base64"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Cursor marks a position within a paginated traversal of a
// collection. The zero cursor points at the beginning.
type Cursor struct {
	// Offset is the number of values preceding the cursor position
	// under the traversal's condition and order.
	Offset int `msgpack:"o"`

	// Key optionally pins the value the cursor was taken from, for
	// consumers that want to detect shifted pages.
	Key any `msgpack:"k,omitempty"`
}

// String returns the opaque text form of the cursor: msgpack encoded,
// then base64 (URL alphabet, unpadded).
func (c Cursor) String() string {
	buf, err := msgpack.Marshal(c)
	if err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(buf)
}

// DecodeCursor parses an opaque cursor produced by Cursor.String.
// The empty string decodes to the zero cursor.
func DecodeCursor(s string) (Cursor, error) {
	var c Cursor
	if s == "" {
		return c, nil
	}
	buf, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return c, fmt.Errorf("invalid cursor: %w", err)
	}
	if err := msgpack.Unmarshal(buf, &c); err != nil {
		return c, fmt.Errorf("invalid cursor: %w", err)
	}
	return c, nil
}
