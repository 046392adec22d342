package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParseByteList(t *testing.T) {
	var testCases = []struct {
		input   string
		want    []byte
		wantErr bool
	}{
		{"53,38,49", []byte{53, 38, 49}, false},
		{"53, 38 49", []byte{53, 38, 49}, false},
		{"", []byte{}, false},
		{"0,255", []byte{0, 255}, false},
		{"256", nil, true},
		{"-1", nil, true},
		{"a", nil, true},
	}
	for _, tc := range testCases {
		got, err := ParseByteList(tc.input)
		if tc.wantErr {
			assert.Error(t, err, tc.input)
			continue
		}
		require.NoError(t, err, tc.input)
		assert.Equal(t, tc.want, got, tc.input)
	}
}

func Test_ParseIntList(t *testing.T) {
	got, err := ParseIntList("3,7, -1")
	require.NoError(t, err)
	assert.Equal(t, []int{3, 7, -1}, got)
}

func Test_ParseHexBytes(t *testing.T) {
	var testCases = []struct {
		input   string
		want    []byte
		wantErr bool
	}{
		{"0x3526", []byte{0x35, 0x26}, false},
		{"3526", []byte{0x35, 0x26}, false},
		{"0x", []byte{}, false},
		{"0x352", nil, true},
		{"0xzz", nil, true},
	}
	for _, tc := range testCases {
		got, err := ParseHexBytes(tc.input)
		if tc.wantErr {
			assert.Error(t, err, tc.input)
			continue
		}
		require.NoError(t, err, tc.input)
		assert.Equal(t, tc.want, got, tc.input)
	}
}

func Test_Fingerprint(t *testing.T) {
	// keccak256 of the empty input starts with c5d2460186f7233c
	assert.Equal(t, "0xc5d2460186f7233c", Fingerprint(nil))
	assert.Len(t, Fingerprint([]byte{1, 2, 3}), 18)
}
