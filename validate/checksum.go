package validate

// crcPolynomial is the reflected CRC-32 polynomial (same family as
// hash/crc32 IEEE). The table is built by hand so the exact wire algorithm
// is pinned here rather than inherited from library defaults.
const crcPolynomial uint32 = 0xEDB88320

// Checksum is a table-driven CRC-32 over message payloads.
type Checksum struct {
	table [256]uint32
}

// NewChecksum builds the 256-entry lookup table once.
func NewChecksum() *Checksum {
	c := &Checksum{}
	for i := range c.table {
		crc := uint32(i)
		for j := 0; j < 8; j++ {
			if crc&1 != 0 {
				crc = (crc >> 1) ^ crcPolynomial
			} else {
				crc >>= 1
			}
		}
		c.table[i] = crc
	}
	return c
}

// Calculate returns the CRC-32 of data: initial value all-ones, final
// complement.
func (c *Checksum) Calculate(data []byte) uint32 {
	crc := ^uint32(0)
	for _, b := range data {
		crc = (crc >> 8) ^ c.table[byte(crc)^b]
	}
	return ^crc
}

// Validate recomputes the checksum and fails with both values on mismatch.
func (c *Checksum) Validate(data []byte, expected uint32) error {
	calculated := c.Calculate(data)
	if calculated != expected {
		return &ChecksumError{Expected: expected, Calculated: calculated}
	}
	return nil
}
