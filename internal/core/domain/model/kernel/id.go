package kernel

import (
	"fmt"
	"strconv"

	"dispatch/internal/pkg/errs"
)

// ID is the integer identity of an entity or aggregate. Identities are
// generated by the storage engine on insert, so a freshly constructed
// aggregate carries the zero ID until it is persisted.
//
// The zero value is invalid everywhere an existing entity is referenced;
// use Validate before treating an ID as a reference.
type ID int64

// NewID wraps a raw database identifier. Returns an error when the value
// cannot reference an existing row.
func NewID(value int64) (ID, error) {
	id := ID(value)
	if err := id.Validate(); err != nil {
		return 0, err
	}
	return id, nil
}

// Validate reports whether the ID can reference an existing entity.
func (id ID) Validate() error {
	if id <= 0 {
		return errs.NewValueIsRequiredErrorWithCause("id",
			fmt.Errorf("got %d, identities are positive integers", int64(id)))
	}
	return nil
}

// IsZero reports whether the ID has not been assigned yet.
func (id ID) IsZero() bool {
	return id == 0
}

// Int64 returns the raw identifier for persistence.
func (id ID) Int64() int64 {
	return int64(id)
}

// String returns the decimal representation of the ID.
func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}
