package pix

import "fmt"

const (
	crcInit       = 0xFFFF
	crcPolynomial = 0x1021
)

// CRC16 is CRC-16/CCITT-FALSE: init 0xFFFF, poly 0x1021, no reflection,
// no final xor.
func CRC16(data []byte) uint16 {
	crc := uint16(crcInit)
	for _, b := range data {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ crcPolynomial
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

// Checksum renders CRC16 of s as four uppercase hex digits.
func Checksum(s string) string {
	return fmt.Sprintf("%04X", CRC16([]byte(s)))
}
