// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package daddy

// Hash functions

func _TRIPLE(a, b, c, len int) int {
	return int(_PAIR64(uint64(c), _PAIR(a, b, len), uint64(len)))
}

// _PAIR is a mapping function that maps (bijectively) a pair of integer (a, b)
// into a unique integer. It is therefore a perfect hash: no collisions
func _PAIR(a, b, len int) uint64 {
	return (((uint64(a+b) * uint64(a+b+1)) / 2) + uint64(a)) % uint64(len)
}

func _PAIR64(a, b, len uint64) uint64 {
	return (((((a + b) % len) * ((a + b + 1) % len)) / 2) + a) % len
}

// ************************************************************

// The hash function for set operations is #(left, right, op).

func (d *DDD) matchapply(left, right Node, op Operator) (Node, bool) {
	entry := d.setcache.table[_TRIPLE(int(left), int(right), int(op), len(d.setcache.table))]
	if entry.a == int(left) && entry.b == right && entry.c == int(op) {
		if _DEBUG {
			d.opHit++
		}
		return entry.res, true
	}
	if _DEBUG {
		d.opMiss++
	}
	return Empty, false
}

func (d *DDD) setapply(left, right Node, op Operator, res Node) Node {
	d.setcache.table[_TRIPLE(int(left), int(right), int(op), len(d.setcache.table))] = cacheData{
		a:   int(left),
		b:   right,
		c:   int(op),
		res: res,
	}
	return res
}

// ************************************************************

// The hash function for homomorphisms is #(hom, n), where hom is the index of
// the (canonical) homomorphism in the registry.

func (d *DDD) matchhom(hom int, n Node) (Node, bool) {
	entry := d.homcache.table[int(_PAIR(hom, int(n), len(d.homcache.table)))]
	if entry.a == hom && entry.b == n {
		if _DEBUG {
			d.homHit++
		}
		return entry.res, true
	}
	if _DEBUG {
		d.homMiss++
	}
	return Empty, false
}

func (d *DDD) sethom(hom int, n Node, res Node) Node {
	d.homcache.table[int(_PAIR(hom, int(n), len(d.homcache.table)))] = cacheData{
		a:   hom,
		b:   n,
		res: res,
	}
	return res
}
