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

//go:build debug
// +build debug

package daddy

import (
	"log"
	"os"
)

const _DEBUG bool = true
const _LOGLEVEL int = 1

// ******************************************************************************************************

func init() {
	log.SetOutput(os.Stdout)
}

// ******************************************************************************************************

// logTable prints the content of the node table, one node per line.
func (d *DDD) logTable() {
	if d.error != nil {
		log.Printf("ERROR: %s\n", d.error)
	}
	for k, n := range d.nodes {
		if k < 2 {
			log.Printf("%-3d [%-3d] terminal\n", k, n.level)
			continue
		}
		log.Printf("%-3d [%-3d] %v\n", k, n.level, n.arcs)
	}
}
