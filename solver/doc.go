/*
Package solver implements a CDCL SAT solver over plain CNF problems.

Its input is a DIMACS CNF stream, or a solver.Problem built programmatically.
The solver.Solver then exposes Search, run with a conflict budget (or none)
and optional assumptions, and the lower-level primitives (Enqueue,
Propagate, NewDecisionLevel, CancelUntil) that let a
caller drive its own search branches on top of the same trail, clause
database and conflict-analysis machinery.

Describing a problem

A problem is most commonly read from a DIMACS stream:

    p cnf 6 7
    1 2 3 0
    4 5 6 0
    -1 -4 0
    -2 -5 0
    -3 -6 0
    -1 -3 0
    -4 -6 0

    pb, err := solver.ParseCNF(f)

Solving a problem

    s := solver.New(pb)
    status := s.Search(-1)

If the status was Sat, the programmer can ask for a model, i.e. an
assignment that makes all clauses true:

    m := s.Model()

Driving a search branch

A caller that wants to explore a restricted branch of the search tree
pushes assumptions before calling Search:

    s.PushAssumption(lit)
    status := s.Search(budget)
    if status == solver.Unsat {
        reduced := s.Conflict() // negations of a subset of the pushed assumptions
    }
    s.CancelUntil(0)
    s.ClearAssumptions()
*/
package solver
