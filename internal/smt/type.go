// Package smt is a small typed layer over the yices2 bindings: named
// bit-vector and boolean terms, a solver context and model reads.
package smt

import yices2 "github.com/ianamason/yices2_go_bindings/yices_api"

// Init must be called once per process before any term is created.
func Init() {
	yices2.Init()
}

// Exit releases every term, context and model owned by yices.
func Exit() {
	yices2.Exit()
}

func rawTerms(bools []*Bool) []yices2.TermT {
	terms := make([]yices2.TermT, len(bools))
	for i := range bools {
		terms[i] = bools[i].GetRaw()
	}
	return terms
}
