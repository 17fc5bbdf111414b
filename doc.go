// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

/*
Package daddy defines a concrete type for Data Decision Diagrams (DDD), a data
structure used to represent sets of integer vectors with a fixed size, and
homomorphisms over DDD that compute guarded affine updates on these sets
without enumerating their elements.

# Basics

Each DDD has a fixed number of coordinates, Varnum, declared when it is
initialized (using the method New) and each coordinate is represented by an
index in the interval [0..Varnum), called a level. Nodes are integers, with the
convention that 0 (Empty) is the empty set and 1 (One) is the accepting
terminal. Diagrams are quasi-reduced: every path from a root to One visits
every level exactly once, in increasing order.

# Homomorphisms

A homomorphism (type Hom) is a function on sets of vectors that distributes
over union. It is defined by a rule on each arc of a node, Phi, that returns
a Step, and by a rule on the terminal One. The package provides three families
of homomorphisms for transition relations:

	NewAction  a conjunction of linear guards with simultaneous affine updates
	NewAssign  the assignment tgt := mul*src + inc (or +=)
	NewLinear  the assignment tgt := Σ coefs[i]*x[i] + inc

Guards are decided as soon as all the coordinates they depend on have been
visited, so that paths are pruned early. Homomorphisms can be combined using
Compose, Sum and Fixpoint. Each DDD keeps a single instance of every
homomorphism, based on a structural key, and memoizes the result of applying
an instance to a node.

# Use of build tags

To get access to better statistics about caches, as well as to unlock logging
of some operations, you can compile your executable with the build tag `debug`.

# Errors

Errors raised during computations on a DDD are sticky: the
first error is recorded (see methods Error and Errored), and operations return
Empty from then on. Errors in the construction of homomorphisms are returned
directly and wrap one of ErrInvalidActionSpec or ErrUnknownComparator.
*/
package daddy
