package smt

import (
	"github.com/pkg/errors"

	yices2 "github.com/ianamason/yices2_go_bindings/yices_api"
)

type Model struct {
	raw *yices2.ModelT
}

// BitVecValue reads a bit-vector of at most 64 bits out of the model.
func (m *Model) BitVecValue(bv *BitVec) (uint64, error) {
	if bv.Size() > 64 {
		return 0, errors.Errorf("bit-vector %s is %d bits wide", bv, bv.Size())
	}
	bits := make([]int32, bv.Size())
	errcode := yices2.GetBvValue(*m.raw, bv.GetRaw(), bits)
	if errcode != 0 {
		return 0, errors.Errorf("get bv value of %s: %s", bv, yices2.ErrorString())
	}
	return bitsToUint64(bits), nil
}

// ByteValue is BitVecValue for 8-bit vectors.
func (m *Model) ByteValue(bv *BitVec) (byte, error) {
	if bv.Size() != 8 {
		return 0, errors.Errorf("bit-vector %s is %d bits wide, want 8", bv, bv.Size())
	}
	v, err := m.BitVecValue(bv)
	return byte(v), err
}

func (m *Model) Close() {
	if m.raw != nil {
		yices2.CloseModel(m.raw)
		m.raw = nil
	}
}

// yices returns bit-vector values least significant bit first
func bitsToUint64(bits []int32) uint64 {
	var v uint64
	for i := range bits {
		if bits[i] == 1 {
			v |= 1 << uint(i)
		}
	}
	return v
}
