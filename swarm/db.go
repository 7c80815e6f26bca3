package swarm

import (
	"fmt"

	"github.com/RodrigoJC20/PSO-Rastrigin/report"
)

const (
	// TblParticles is the name of the sql database table that contains
	// positions and evaluated fitnesses for particles for each sweep.
	TblParticles = "swarmparticles"
	// TblParticlesBest is the name of the sql database table that contains
	// each particle's personal best position at each sweep.
	TblParticlesBest = "swarmparticlesbest"
	// TblBest is the name of the sql database table that contains
	// the best position for the entire swarm at each sweep.
	TblBest = "swarmbest"
)

func (it *Iterator) initdb() error {
	if it.Db == nil {
		return nil
	}

	s := "CREATE TABLE IF NOT EXISTS " + TblParticles + " (particle INTEGER, iter INTEGER, val REAL"
	s += it.xdbsql("define")
	s += ");"
	if _, err := it.Db.Exec(s); err != nil {
		return dberr("creating table "+TblParticles, err)
	}

	s = "CREATE TABLE IF NOT EXISTS " + TblParticlesBest + " (particle INTEGER, iter INTEGER, best REAL"
	s += it.xdbsql("define")
	s += ");"
	if _, err := it.Db.Exec(s); err != nil {
		return dberr("creating table "+TblParticlesBest, err)
	}

	s = "CREATE TABLE IF NOT EXISTS " + TblBest + " (iter INTEGER, val REAL"
	s += it.xdbsql("define")
	s += ");"
	if _, err := it.Db.Exec(s); err != nil {
		return dberr("creating table "+TblBest, err)
	}
	return nil
}

func (it *Iterator) updateDb() error {
	if it.Db == nil {
		return nil
	}

	tx, err := it.Db.Begin()
	if err != nil {
		return dberr(fmt.Sprintf("recording sweep %v", it.count), err)
	}

	s0 := "INSERT INTO " + TblParticles + " (particle,iter,val" + it.xdbsql("x") + ") VALUES (?,?,?" + it.xdbsql("?") + ");"
	s1 := "INSERT INTO " + TblParticlesBest + " (particle,iter,best" + it.xdbsql("x") + ") VALUES (?,?,?" + it.xdbsql("?") + ");"
	for _, p := range it.Pop {
		args := []any{p.Id, it.count, p.Val}
		args = append(args, pos2iface(p.Pos)...)
		if _, err := tx.Exec(s0, args...); err != nil {
			tx.Rollback()
			return dberr(fmt.Sprintf("recording particle %v sweep %v", p.Id, it.count), err)
		}

		args = []any{p.Id, it.count, p.Best.Val}
		args = append(args, pos2iface(p.Best.Pos())...)
		if _, err := tx.Exec(s1, args...); err != nil {
			tx.Rollback()
			return dberr(fmt.Sprintf("recording particle %v best sweep %v", p.Id, it.count), err)
		}
	}

	s2 := "INSERT INTO " + TblBest + " (iter,val" + it.xdbsql("x") + ") VALUES (?,?" + it.xdbsql("?") + ");"
	args := []any{it.count, it.best.Val}
	args = append(args, pos2iface(it.best.Pos())...)
	if _, err := tx.Exec(s2, args...); err != nil {
		tx.Rollback()
		return dberr(fmt.Sprintf("recording best sweep %v", it.count), err)
	}

	if err := tx.Commit(); err != nil {
		return dberr(fmt.Sprintf("recording sweep %v", it.count), err)
	}
	return nil
}

func (it *Iterator) xdbsql(op string) string {
	s := ""
	for i := range it.Pop[0].Pos {
		if op == "?" {
			s += ",?"
		} else if op == "define" {
			s += fmt.Sprintf(",x%v REAL", i)
		} else if op == "x" {
			s += fmt.Sprintf(",x%v", i)
		} else {
			panic("invalid db op " + op)
		}
	}
	return s
}

func pos2iface(pos []float64) []any {
	iface := make([]any, 0, len(pos))
	for _, v := range pos {
		iface = append(iface, v)
	}
	return iface
}

func dberr(op string, err error) error {
	return fmt.Errorf("%v: %w: %w", op, report.IOErr, err)
}
