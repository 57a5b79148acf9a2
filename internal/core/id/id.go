// Package id is the row identifier shared by every table.
package id

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID is a UUID. Rows created here get version 7, so keys sort by creation.
type ID = uuid.UUID

// Nil is the unset ID.
var Nil = uuid.Nil

// New returns a UUIDv7, or a random v4 if the clock source fails.
func New() ID {
	v, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return v
}

// Parse reads one ID, ignoring surrounding spaces.
func Parse(s string) (ID, error) {
	return uuid.Parse(strings.TrimSpace(s))
}

// ParseList reads a comma-separated list such as "?ids=a,b". Blank entries
// are skipped and repeats are kept once, in first-seen order.
func ParseList(raw string) ([]ID, error) {
	var out []ID
	seen := make(map[ID]struct{})
	for part := range strings.SplitSeq(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := uuid.Parse(part)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q: %w", part, err)
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out, nil
}

// Strings renders ids in canonical form.
func Strings(ids []ID) []string {
	out := make([]string, len(ids))
	for i, v := range ids {
		out[i] = v.String()
	}
	return out
}

func IsNil(v ID) bool { return v == Nil }
