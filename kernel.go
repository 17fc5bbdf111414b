// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package daddy

import (
	"errors"
)

// _MAXVAR is the maximal number of levels in a DDD. Levels are stored on 32
// bits in nodes and we keep some room for the terminal level.
const _MAXVAR int = 0x1FFFFF

// _DEFAULTNODESIZE is the initial capacity of the node table when no Nodesize
// option is given.
const _DEFAULTNODESIZE int = 1 << 10

// _DEFAULTCACHESIZE is the default number of entries in each operation cache.
const _DEFAULTCACHESIZE int = 10000

// ErrInvalidActionSpec is returned when building an operator from an ill-formed
// description, for instance when a coefficient vector does not have one entry
// per coordinate, or when a target or source is outside the vector space.
var ErrInvalidActionSpec = errors.New("daddy: invalid action specification")

// ErrUnknownComparator is returned when a guard uses a comparator outside of
// EQ, NE, LT, GT, LE and GE.
var ErrUnknownComparator = errors.New("daddy: unknown comparator")

var errMemory = errors.New("unable to allocate new node; node table at max capacity")
var errPending = errors.New("reached terminal with an unresolved pending write")
var errComposite = errors.New("composite homomorphism used as an arc rule")
