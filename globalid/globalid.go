// Package globalid implements the opaque identifier codec used by the
// generated node field: a global ID is "Type:ID" encoded in base64, so
// any value in the graph can be addressed by a single string.
package globalid

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// GlobalID represents a globally unique identifier for any node.
// The format is: Type:ID encoded in base64.
type GlobalID string

// New creates a new GlobalID from a type name and ID.
func New(typeName string, id any) GlobalID {
	raw := fmt.Sprintf("%s:%v", typeName, id)
	return GlobalID(base64.StdEncoding.EncodeToString([]byte(raw)))
}

// Parse parses a global ID string and returns the type and ID.
func Parse(gid string) (string, string, error) {
	return GlobalID(gid).Decode()
}

// Decode decodes the GlobalID into its type name and ID.
func (g GlobalID) Decode() (typeName string, id string, err error) {
	decoded, err := base64.StdEncoding.DecodeString(string(g))
	if err != nil {
		return "", "", fmt.Errorf("invalid global id: %w", err)
	}
	parts := strings.SplitN(string(decoded), ":", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid global id format")
	}
	return parts[0], parts[1], nil
}

// Type returns the type name from the GlobalID.
func (g GlobalID) Type() (string, error) {
	typeName, _, err := g.Decode()
	return typeName, err
}

// ID returns the ID from the GlobalID.
func (g GlobalID) ID() (string, error) {
	_, id, err := g.Decode()
	return id, err
}

// String returns the string representation of the GlobalID.
func (g GlobalID) String() string {
	return string(g)
}

// IntID returns the ID as an int.
func (g GlobalID) IntID() (int, error) {
	_, id, err := g.Decode()
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(id)
}

// Int64ID returns the ID as an int64.
func (g GlobalID) Int64ID() (int64, error) {
	_, id, err := g.Decode()
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(id, 10, 64)
}

// UUIDID returns the ID as a UUID.
func (g GlobalID) UUIDID() (uuid.UUID, error) {
	_, id, err := g.Decode()
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.Parse(id)
}
