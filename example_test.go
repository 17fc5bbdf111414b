// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package daddy_test

import (
	"fmt"
	"log"

	"github.com/dalzilio/daddy"
)

// This example shows the basic usage of the package: create a DDD, apply an
// assignment to a set of vectors and enumerate the result.
func Example_basic() {
	// Create a new DDD for vectors of size 2, with a node table of 1 000 nodes
	// and a cache size of 3 000 (initially).
	d, _ := daddy.New(2, daddy.Nodesize(1000), daddy.Cachesize(3000))
	// s is the set {(3, 0), (0, 7)}
	s := d.FromVectors([][]int{{3, 0}, {0, 7}})
	// h is the assignment x1 := 2*x0 + 5
	h, err := daddy.NewAssign(2, 1, 0, false, 5, 2)
	if err != nil {
		log.Fatal(err)
	}
	_ = d.Allvec(d.Apply(h, s), func(v []int) error {
		fmt.Println(v)
		return nil
	})
	// Output:
	// [0 5]
	// [3 11]
}

// This example computes the states reachable from (0, 0) using a guarded
// action, where the first coordinate is a bounded counter.
func Example_reachability() {
	d, _ := daddy.New(2, daddy.Names("x", "y"))
	// x < 3 -> x += 1 ; y := x
	t, err := daddy.NewAction(2,
		[]daddy.Guard{{Cmp: daddy.LT, Constant: -3, Coefs: []int{1, 0}}},
		[]daddy.Update{
			{Target: 0, Accumulate: true, Constant: 1, Coefs: []int{0, 0}},
			{Target: 1, Coefs: []int{1, 0}},
		})
	if err != nil {
		log.Fatal(err)
	}
	r := d.Apply(daddy.Fixpoint(daddy.Sum(daddy.Identity, t)), d.Vector(0, 0))
	fmt.Printf("Number of reachable states: %s\n", d.Count(r))
	_ = d.Allvec(r, func(v []int) error {
		fmt.Println(v)
		return nil
	})
	// Output:
	// Number of reachable states: 4
	// [0 0]
	// [1 0]
	// [2 1]
	// [3 2]
}
