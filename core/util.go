// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package core

import (
	"encoding/base64"
	"encoding/binary"
)

func uint64ToBytes(i uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, i)
	return b
}

func toBase64(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}
