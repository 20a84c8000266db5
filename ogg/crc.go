// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package ogg

// crcPolynomial is the direct (non-reflected) CRC-32 polynomial mandated by
// RFC 3533, with zero initial value and no final XOR.
const crcPolynomial = 0x04C11DB7

var crcTable [256]uint32

func init() {
	for i := range crcTable {
		r := uint32(i) << 24
		for j := 0; j < 8; j++ {
			if r&0x80000000 != 0 {
				r = (r << 1) ^ crcPolynomial
			} else {
				r <<= 1
			}
		}
		crcTable[i] = r
	}
}

// crcUpdate folds p into crc. Start from zero for a fresh checksum.
func crcUpdate(crc uint32, p []byte) uint32 {
	for _, b := range p {
		crc = (crc << 8) ^ crcTable[byte(crc>>24)^b]
	}
	return crc
}
