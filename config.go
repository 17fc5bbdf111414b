// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package daddy

// configs is used to store the values of different parameters of the DDD
type configs struct {
	varnum      int      // number of coordinates (levels)
	nodesize    int      // initial capacity of the node table
	maxnodesize int      // maximum total number of nodes (0 if no limit)
	cachesize   int      // initial cache size (general)
	cacheratio  int      // ratio (%) between cache size and node table, 0 if size constant
	names       []string // optional names for the coordinates
}

func makeconfigs(varnum int) *configs {
	c := &configs{varnum: varnum}
	c.nodesize = _DEFAULTNODESIZE
	c.cachesize = _DEFAULTCACHESIZE
	return c
}

// Nodesize is a configuration option (function). Used as a parameter in New it
// sets a preferred initial size for the node table. The table grows as needed
// during computations.
func Nodesize(size int) func(*configs) {
	return func(c *configs) {
		if size > 2 {
			c.nodesize = size
		}
	}
}

// Maxnodesize is a configuration option (function). Used as a parameter in New
// it sets a limit to the number of nodes in the DDD. An operation trying to
// raise the number of nodes above this limit sets the error status of the DDD
// and returns Empty. The default value (0) means that there is no limit.
func Maxnodesize(size int) func(*configs) {
	return func(c *configs) {
		c.maxnodesize = size
	}
}

// Cachesize is a configuration option (function). Used as a parameter in New it
// sets the initial number of entries in the operation caches (set operations
// and homomorphism applications). The default value is 10 000.
func Cachesize(size int) func(*configs) {
	return func(c *configs) {
		if size > 0 {
			c.cachesize = size
		}
	}
}

// Cacheratio is a configuration option (function). Used as a parameter in New
// it sets a "cache ratio" (%) so that caches can grow each time the node table
// doubles in size. With a cache ratio of r, we have r available entries in the
// cache for every 100 nodes. The default value (0) means that the cache size
// never grows.
func Cacheratio(ratio int) func(*configs) {
	return func(c *configs) {
		c.cacheratio = ratio
	}
}

// Names is a configuration option (function) that gives a name to each
// coordinate, in level order. Names are only used when printing. Missing names
// default to x0, x1, ...
func Names(names ...string) func(*configs) {
	return func(c *configs) {
		c.names = append([]string(nil), names...)
	}
}
