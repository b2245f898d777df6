package rrb

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AreeseDT/collectable/radix"
	"github.com/fatih/color"
	"golang.org/x/term"
)

// Dump writes an indented listing of the tree rooted at root to w (for
// debugging purposes). Each line shows a node's cached values and its
// ownership status. If w is a terminal, the status is colored.
func Dump[T any](w io.Writer, root *Node[T], shift int) error {
	p := newPalette(isTerminal(w))
	var sb strings.Builder
	dumpNode(&sb, p, root, shift, 0, 0)
	_, err := io.WriteString(w, sb.String())
	return err
}

func dumpNode[T any](sb *strings.Builder, p palette, n *Node[T], shift, depth, index int) {
	indent := strings.Repeat("  ", depth)
	if n == nil {
		fmt.Fprintf(sb, "%s#%d <unset>\n", indent, index)
		return
	}
	recompute := "strict"
	if n.recompute != Strict {
		recompute = fmt.Sprintf("stale=%d", n.recompute)
	}
	fmt.Fprintf(sb, "%s#%d size=%d sum=%d sub=%d %s %s",
		indent, index, n.size, n.sum, n.subcount, recompute, p.status(n.owner))
	if shift == 0 {
		fmt.Fprintf(sb, " %v\n", n.items)
		return
	}
	sb.WriteByte('\n')
	for i, child := range n.nodes {
		dumpNode(sb, p, child, shift-radix.BranchBits, depth+1, i)
	}
}

type palette struct {
	editable, reserved, shared *color.Color
}

func newPalette(colored bool) palette {
	p := palette{
		editable: color.New(color.FgGreen),
		reserved: color.New(color.FgYellow),
		shared:   color.New(color.FgBlue),
	}
	for _, c := range []*color.Color{p.editable, p.reserved, p.shared} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) status(tag Tag) string {
	switch {
	case tag > 0:
		return p.editable.Sprintf("editable(%d)", tag)
	case tag < 0:
		return p.reserved.Sprintf("reserved(%d)", -tag)
	}
	return p.shared.Sprint("shared")
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// ToDot outputs the structure of the tree rooted at root in Graphviz DOT
// format (for debugging purposes). Leaves are boxes, internal nodes circles;
// the fill color encodes the ownership status.
func ToDot[T any](w io.Writer, root *Node[T], shift int) error {
	ids := make(map[*Node[T]]int)
	count := 0 // ids of nodes and unset slots
	var nodelist, edgelist strings.Builder
	var walk func(n *Node[T], shift int) int
	walk = func(n *Node[T], shift int) int {
		if id, ok := ids[n]; ok {
			return id // shared subtree, already emitted
		}
		count++
		id := count
		ids[n] = id
		if shift == 0 {
			fmt.Fprintf(&nodelist, "\"%d\" [label=\"%d\\n%v\" %s];\n", id, n.size, n.items, dotStyles(n, true))
			return id
		}
		fmt.Fprintf(&nodelist, "\"%d\" [label=\"%d\" %s];\n", id, n.size, dotStyles(n, false))
		for _, child := range n.nodes {
			if child == nil {
				count++
				nilid := count
				fmt.Fprintf(&nodelist, "\"%d\" %s;\n", nilid, emptyDotNode)
				fmt.Fprintf(&edgelist, "\"%d\" -> \"%d\";\n", id, nilid)
				continue
			}
			fmt.Fprintf(&edgelist, "\"%d\" -> \"%d\";\n", id, walk(child, shift-radix.BranchBits))
		}
		return id
	}
	walk(root, shift)
	_, err := io.WriteString(w, "strict digraph {\n\tnode [fontname=Arial,fontsize=12];\n"+
		nodelist.String()+edgelist.String()+"}\n")
	return err
}

const emptyDotNode = "[label=\"\",color=black,shape=circle,fixedsize=true,width=.4]"

func dotStyles[T any](n *Node[T], isLeaf bool) string {
	s := ",style=filled"
	if isLeaf {
		s += ",shape=box"
	} else {
		s += ",color=black,shape=circle"
	}
	switch {
	case n.owner > 0:
		s += ",fillcolor=\"#bde5b8\""
	case n.owner < 0:
		s += ",fillcolor=\"#ffeeaa\""
	default:
		s += ",fillcolor=\"#a3d7e4\""
	}
	return s
}
