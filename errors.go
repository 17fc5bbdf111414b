// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package daddy

import (
	"fmt"
	"log"
)

// Error returns the error status of the DDD. We return an empty string if
// there are no errors.
func (d *DDD) Error() string {
	if d.error == nil {
		return ""
	}
	return d.error.Error()
}

// Errored returns true if there was an error during a computation.
func (d *DDD) Errored() bool {
	return d.error != nil
}

// Err returns the error status of the DDD, or nil.
func (d *DDD) Err() error {
	return d.error
}

// seterror records the first error found during a computation; later errors
// are chained to the message. It always returns Empty so that callers can
// write `return d.seterror(...)`.
func (d *DDD) seterror(format string, a ...interface{}) Node {
	if d.error != nil {
		d.error = fmt.Errorf(format+"; %w", append(a, d.error)...)
		return Empty
	}
	d.error = fmt.Errorf(format, a...)
	if _DEBUG {
		log.Println(d.error)
	}
	return Empty
}
