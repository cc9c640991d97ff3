package core

// utoa converts an unsigned integer to a string without the fmt package,
// which would bloat the firmware image.
func utoa(n uint32) string {
	if n == 0 {
		return "0"
	}

	var buf [10]byte
	pos := len(buf)
	for n > 0 {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[pos:])
}

// hex8 formats a byte as 0xNN.
func hex8(b uint8) string {
	const hexDigits = "0123456789abcdef"
	return string([]byte{'0', 'x', hexDigits[b>>4], hexDigits[b&0xf]})
}
