// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package util

import (
	"bytes"
	"encoding/binary"
)

var ByteOrder binary.ByteOrder = binary.BigEndian

func ConcatBytes(srcs ...[]byte) []byte {
	buf := bytes.NewBuffer(nil)
	size := 0
	for _, src := range srcs {
		size += len(src)
	}
	buf.Grow(size)
	for _, src := range srcs {
		buf.Write(src)
	}
	return buf.Bytes()
}

func Uint64Bytes(v uint64) []byte {
	b := make([]byte, 8)
	ByteOrder.PutUint64(b, v)
	return b
}

// BytesUint64 returns 0 for nil or short input
func BytesUint64(b []byte) uint64 {
	if len(b) < 8 {
		return 0
	}
	return ByteOrder.Uint64(b)
}

// LengthPrefixed prefixes b with its 4-byte length,
// so that prefix scans over one key never match a longer key.
func LengthPrefixed(b []byte) []byte {
	l := make([]byte, 4)
	ByteOrder.PutUint32(l, uint32(len(b)))
	return ConcatBytes(l, b)
}
