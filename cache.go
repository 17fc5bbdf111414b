// Copyright 2021. Silvano DAL ZILIO.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

package daddy

import (
	"fmt"
)

// ************************************************************
// cache is used for caching the results of set operations and of homomorphism
// applications. Entries are overwritten on collision, so a cache never grows
// past its table size.
type cache struct {
	table []cacheData
}

// cacheStat stores status information about cache usage
type cacheStat struct {
	uniqueAccess int // accesses to the unique node table
	uniqueHit    int // entries actually found in the the unique node table
	uniqueMiss   int // entries not found in the the unique node table
	opHit        int // entries found in the set operation cache
	opMiss       int // entries not found in the set operation cache
	homHit       int // entries found in the homomorphism cache
	homMiss      int // entries not found in the homomorphism cache
}

// cacheData is a unit of information stored in a cache
type cacheData struct {
	res Node
	a   int
	b   Node
	c   int
}

// ************************************************************

// Basic functions shared by all caches

func (bc *cache) cacheinit(size int) {
	// we never check if the creation of the slice panic because of lack of memory
	size = primeGte(size)
	bc.table = make([]cacheData, size)
	bc.cachereset()
}

func (bc *cache) cachereset() {
	for k := range bc.table {
		bc.table[k].a = -1
	}
}

// *************************************************************************
// Setup and resize

func (d *DDD) cacheinit() {
	d.setcache.cacheinit(d.cachesize)
	d.homcache.cacheinit(d.cachesize)
	d.cachenodes = len(d.nodes)
}

// cacheresize is called each time a node is added. When a cache ratio is set,
// we grow the caches every time the node table doubles. Old entries are lost.
func (d *DDD) cacheresize() {
	if d.cacheratio <= 0 || len(d.nodes) < 2*d.cachenodes {
		return
	}
	d.cachenodes = len(d.nodes)
	size := (len(d.nodes) * d.cacheratio) / 100
	if size <= len(d.setcache.table) {
		return
	}
	d.setcache.cacheinit(size)
	d.homcache.cacheinit(size)
}

// ************************************************************

// Prints information about the cache performance. The information contains the
// number of accesses to the unique node table, the number of times a node was
// (not) found there. Hit and miss count is also given for the operation
// caches.
func (c cacheStat) String() string {
	res := fmt.Sprintf("Unique Access:  %d\n", c.uniqueAccess)
	res += fmt.Sprintf("Unique Hit:     %d\n", c.uniqueHit)
	res += fmt.Sprintf("Unique Miss:    %d\n", c.uniqueMiss)
	res += fmt.Sprintf("Operator Hits:  %d\n", c.opHit)
	res += fmt.Sprintf("Operator Miss:  %d\n", c.opMiss)
	res += fmt.Sprintf("Hom Hits:       %d\n", c.homHit)
	res += fmt.Sprintf("Hom Miss:       %d", c.homMiss)
	return res
}
