package common

// WipeByteArray overwrites b with zeros. Used for passwords held in memory.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
