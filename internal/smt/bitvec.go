package smt

import (
	"fmt"

	yices2 "github.com/ianamason/yices2_go_bindings/yices_api"
)

type BitVec struct {
	name  string
	size  uint32
	value yices2.TermT
}

// NewBitVec declares an uninterpreted bit-vector of the given width.
func NewBitVec(name string, size uint32) *BitVec {
	term := yices2.NewUninterpretedTerm(yices2.BvType(size))
	errcode := yices2.SetTermName(term, name)
	if errcode < 0 {
		fmt.Println("set term name ", errcode)
	}
	return &BitVec{
		name:  name,
		size:  size,
		value: term,
	}
}

func NewBitVecValUint64(value uint64, size uint32) *BitVec {
	return &BitVec{
		name:  "",
		size:  size,
		value: yices2.BvconstUint64(size, value),
	}
}

func NewBitVecValByte(value byte) *BitVec {
	return NewBitVecValUint64(uint64(value), 8)
}

func (bv *BitVec) GetRaw() yices2.TermT {
	return bv.value
}

func (bv *BitVec) Size() uint32 {
	return bv.size
}

func (bv *BitVec) String() string {
	if bv.name != "" {
		return bv.name
	}
	return fmt.Sprintf("bv%d(%d)", bv.size, bv.value)
}

// Xor
func (bv *BitVec) Xor(other *BitVec) *BitVec {
	return &BitVec{
		size:  bv.size,
		value: yices2.Bvxor2(bv.value, other.value),
	}
}

func (bv *BitVec) Eq(other *BitVec) *Bool {
	return &Bool{
		value: yices2.BveqAtom(bv.value, other.value),
	}
}

func (bv *BitVec) Ne(other *BitVec) *Bool {
	return &Bool{
		value: yices2.BvneqAtom(bv.value, other.value),
	}
}

// Bv{xxxx} are the unsigned comparisons
func (bv *BitVec) Ult(other *BitVec) *Bool {
	return &Bool{
		value: yices2.BvltAtom(bv.value, other.value),
	}
}

func (bv *BitVec) Ule(other *BitVec) *Bool {
	return &Bool{
		value: yices2.BvleAtom(bv.value, other.value),
	}
}

func (bv *BitVec) Uge(other *BitVec) *Bool {
	return &Bool{
		value: yices2.BvgeAtom(bv.value, other.value),
	}
}

// Within is lo <= bv <= hi, unsigned.
func (bv *BitVec) Within(lo, hi *BitVec) *Bool {
	return bv.Uge(lo).And(bv.Ule(hi))
}
