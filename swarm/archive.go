package swarm

import (
	"github.com/petar/GoLLRB/llrb"

	pso "github.com/RodrigoJC20/PSO-Rastrigin"
)

// Archive keeps the k lowest-valued global-best improvements seen during a
// run, ordered from best to worst.
type Archive struct {
	k    int
	tree *llrb.LLRB
}

type entry struct {
	pso.Point
	iter int
}

func (e entry) Less(than llrb.Item) bool {
	o := than.(entry)
	if e.Val == o.Val {
		return e.iter < o.iter
	}
	return e.Val < o.Val
}

func NewArchive(k int) *Archive {
	return &Archive{k: k, tree: llrb.New()}
}

// Add archives the improvement p observed at the given sweep, evicting the
// worst entry once more than k improvements are held.
func (a *Archive) Add(iter int, p pso.Point) {
	a.tree.InsertNoReplace(entry{Point: p, iter: iter})
	for a.tree.Len() > a.k {
		a.tree.DeleteMax()
	}
}

func (a *Archive) Len() int { return a.tree.Len() }

// Walk visits archived improvements from best to worst.
func (a *Archive) Walk(visit func(iter int, p pso.Point)) {
	if a.tree.Len() == 0 {
		return
	}
	a.tree.AscendGreaterOrEqual(a.tree.Min(), func(i llrb.Item) bool {
		e := i.(entry)
		visit(e.iter, e.Point)
		return true
	})
}
