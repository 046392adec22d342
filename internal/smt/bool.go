package smt

import (
	"fmt"

	yices2 "github.com/ianamason/yices2_go_bindings/yices_api"
)

type Bool struct {
	name  string
	value yices2.TermT
}

func NewBoolVal(value bool) *Bool {
	if value {
		return &Bool{value: yices2.True()}
	}
	return &Bool{value: yices2.False()}
}

func NewBool(name string) *Bool {
	term := yices2.NewUninterpretedTerm(yices2.BoolType())
	errcode := yices2.SetTermName(term, name)
	if errcode < 0 {
		fmt.Println("set term name ", errcode)
	}
	return &Bool{
		name:  name,
		value: term,
	}
}

func (b *Bool) GetRaw() yices2.TermT {
	return b.value
}

func (b *Bool) String() string {
	if b.name != "" {
		return b.name
	}
	return fmt.Sprintf("bool(%d)", b.value)
}

func (b *Bool) Not() *Bool {
	return &Bool{value: yices2.Not(b.value)}
}

func (b *Bool) And(other *Bool) *Bool {
	return &Bool{value: yices2.And2(b.value, other.value)}
}

func (b *Bool) Or(other *Bool) *Bool {
	return &Bool{value: yices2.Or2(b.value, other.value)}
}

// IsTrue reports whether the term is the constant true.
func (b *Bool) IsTrue() bool {
	var val int32
	if errcode := yices2.BoolConstValue(b.value, &val); errcode != 0 {
		return false
	}
	return val != 0
}

// IsFalse reports whether the term is the constant false.
func (b *Bool) IsFalse() bool {
	var val int32
	if errcode := yices2.BoolConstValue(b.value, &val); errcode != 0 {
		return false
	}
	return val == 0
}

func (b *Bool) IsSymbolic() bool {
	return yices2.TermConstructor(b.value) != yices2.TrmCnstrBoolConstant
}
