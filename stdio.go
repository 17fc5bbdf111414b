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
	"bufio"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
)

// Stats returns information about the DDD: size of the node table, number of
// registered homomorphisms and size of the caches.
func (d *DDD) Stats() string {
	res := fmt.Sprintf("Varnum:     %d\n", d.varnum)
	res += fmt.Sprintf("Allocated:  %d\n", len(d.nodes))
	res += fmt.Sprintf("Produced:   %d\n", d.produced)
	res += fmt.Sprintf("Homs:       %d\n", len(d.homs))
	res += fmt.Sprintf("Cachesize:  %d", len(d.setcache.table))
	if _DEBUG {
		res += "\n==============\n"
		res += d.cacheStat.String()
	}
	return res
}

// PrintStats outputs a textual representation of the DDD statistics.
func (d *DDD) PrintStats() {
	fmt.Println("==============")
	fmt.Println(d.Stats())
	if _DEBUG {
		d.logTable()
	}
	fmt.Println("==============")
}

// ************************************************************

// Print returns a one-line description of node n.
func (d *DDD) Print(n Node) string {
	if d.error != nil {
		return fmt.Sprintf("node %d: error %s", n, d.error)
	}
	if d.checknode(n) != nil {
		return fmt.Sprintf("Error (%d not a valid index)", n)
	}
	switch n {
	case Empty:
		return "Empty"
	case One:
		return "One"
	}
	return fmt.Sprintf("%d[%s] %v", n, d.Name(int(d.level(n))), d.arcs(n))
}

// PrintSet outputs a textual representation of the nodes reachable from n, one
// per line, on the standard output.
func (d *DDD) PrintSet(n Node) error {
	return d.Fprint(os.Stdout, n)
}

// Fprint writes a textual representation of the nodes reachable from n to w,
// one per line, in depth-first order.
func (d *DDD) Fprint(w io.Writer, n Node) error {
	if d.error != nil {
		fmt.Fprintf(w, "ERROR: %s\n", d.error)
		return d.error
	}
	switch n {
	case Empty:
		_, err := fmt.Fprintln(w, "Empty")
		return err
	case One:
		_, err := fmt.Fprintln(w, "One")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	err := d.Allnodes(func(id Node, level int, arcs []Arc) error {
		if id == One {
			return nil
		}
		fmt.Fprintf(tw, "%d\t[%s]\t", id, d.Name(level))
		for _, a := range arcs {
			fmt.Fprintf(tw, " %d->%d", a.Value, a.Child)
		}
		fmt.Fprintln(tw)
		return nil
	}, n)
	if err != nil {
		return err
	}
	return tw.Flush()
}

// ************************************************************

// PrintDot prints a graph-like description of the DDD with root n using the DOT
// format.
func (d *DDD) PrintDot(n Node) error {
	return d.WriteDot(os.Stdout, n)
}

// FPrintDot writes the DOT description of the DDD with root n in a file. We
// use the standard output when filename is "-".
func (d *DDD) FPrintDot(filename string, n Node) error {
	if filename == "-" {
		return d.WriteDot(os.Stdout, n)
	}
	out, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := d.WriteDot(out, n); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// WriteDot writes a GraphViz DOT description of the DDD with root n to w. Nodes
// are numbered in depth-first order, starting with 2 for the root, so that the
// output only depends on the set denoted by n. The terminal One is numbered 1.
// We do not draw the terminal Empty, unless n is Empty.
func (d *DDD) WriteDot(w io.Writer, n Node) error {
	if d.error != nil {
		return d.error
	}
	if err := d.checknode(n); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "digraph G {")
	if n == Empty {
		fmt.Fprintln(bw, `0 [shape=box, label="0", style=filled, height=0.3, width=0.3];`)
		fmt.Fprintln(bw, "}")
		return bw.Flush()
	}
	fmt.Fprintln(bw, `1 [shape=box, label="1", style=filled, height=0.3, width=0.3];`)
	ids := map[Node]int{One: 1}
	var order []Node
	_ = d.Allnodes(func(id Node, _ int, _ []Arc) error {
		if id != One {
			ids[id] = len(order) + 2
			order = append(order, id)
		}
		return nil
	}, n)
	for _, v := range order {
		fmt.Fprintf(bw, "%d [label=%q];\n", ids[v], d.Name(int(d.level(v))))
		for _, a := range d.arcs(v) {
			fmt.Fprintf(bw, "%d -> %d [label=\"%d\"];\n", ids[v], ids[a.Child], a.Value)
		}
	}
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}
