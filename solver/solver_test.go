package solver

import (
	"strings"
	"testing"
)

func mustParse(t *testing.T, cnf string) *Problem {
	t.Helper()
	pb, err := ParseCNF(strings.NewReader(cnf))
	if err != nil {
		t.Fatalf("could not parse CNF: %v", err)
	}
	return pb
}

func TestSearchSat(t *testing.T) {
	pb := mustParse(t, "p cnf 3 3\n1 2 0\n-1 3 0\n-2 -3 0\n")
	s := New(pb)
	if status := s.Search(-1); status != Sat {
		t.Fatalf("expected Sat, got %s", status)
	}
}

func TestSearchUnsat(t *testing.T) {
	pb := mustParse(t, "p cnf 1 2\n1 0\n-1 0\n")
	s := New(pb)
	if s.ok {
		if status := s.Search(-1); status != Unsat {
			t.Fatalf("expected Unsat, got %s", status)
		}
	}
	if s.Ok() {
		t.Fatalf("expected the solver to be globally unsat")
	}
}

func TestAssumptionConflict(t *testing.T) {
	// x=1 forces y=1 (clause -x y); assuming x and -y must fail.
	pb := mustParse(t, "p cnf 2 1\n-1 2 0\n")
	s := New(pb)
	x := IntToLit(1)
	notY := IntToLit(-2)
	s.PushAssumption(x)
	s.PushAssumption(notY)
	status := s.Search(-1)
	if status != Unsat {
		t.Fatalf("expected Unsat under assumptions, got %s", status)
	}
	conflict := s.Conflict()
	if len(conflict) == 0 {
		t.Fatalf("expected a non-empty conflict set")
	}
	for _, l := range conflict {
		if l != x.Negation() && l != notY.Negation() {
			t.Errorf("conflict literal %d is not the negation of a pushed assumption", l.Int())
		}
	}
	if !s.Ok() {
		t.Fatalf("a conflict under assumptions must not mark the solver globally unsat")
	}
}

func TestEnqueuePropagateCycle(t *testing.T) {
	pb := mustParse(t, "p cnf 2 1\n-1 2 0\n")
	s := New(pb)
	s.NewDecisionLevel()
	if !s.Enqueue(IntToLit(1)) {
		t.Fatalf("enqueue of an unbound literal should succeed")
	}
	if confl := s.Propagate(); confl != nil {
		t.Fatalf("unexpected conflict during propagation")
	}
	if s.Value(IntToLit(2)) != Sat {
		t.Fatalf("expected var 2 to be implied true")
	}
	s.CancelUntil(0)
	if s.Value(IntToLit(2)) != Indet {
		t.Fatalf("expected var 2 to be unbound again after CancelUntil(0)")
	}
}
