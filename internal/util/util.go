// Package util parses command line inputs.
package util

import (
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// ParseIntList parses a comma or whitespace separated list of integers.
func ParseIntList(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	result := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, errors.Wrapf(err, "parse %q", f)
		}
		result = append(result, v)
	}
	return result, nil
}

// ParseByteList is ParseIntList restricted to values in [0, 255].
func ParseByteList(s string) ([]byte, error) {
	ints, err := ParseIntList(s)
	if err != nil {
		return nil, err
	}
	if bad, ok := lo.Find(ints, func(v int) bool { return v < 0 || v > 255 }); ok {
		return nil, errors.Errorf("%d is not a byte", bad)
	}
	return lo.Map(ints, func(v int, _ int) byte {
		return byte(v)
	}), nil
}

// ParseHexBytes decodes a hex string. The 0x prefix is optional.
func ParseHexBytes(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	if s == "0x" {
		return []byte{}, nil
	}
	data, err := hexutil.Decode(s)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %q", s)
	}
	return data, nil
}

// Fingerprint is the keccak256 hash of data, hex encoded and shortened to
// eight bytes. It identifies an input in reports.
func Fingerprint(data []byte) string {
	return hexutil.Encode(crypto.Keccak256(data)[:8])
}
