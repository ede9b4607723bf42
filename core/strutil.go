package core

// itoa converts an integer to a string without using fmt package
// This is a lightweight alternative for embedded systems
func itoa(n int) string {
	if n == 0 {
		return "0"
	}

	// Work on the magnitude as unsigned so the minimum int does not overflow
	negative := n < 0
	u := uint(n)
	if negative {
		u = -u
	}

	// Count digits
	temp := u
	digits := 0
	for temp > 0 {
		digits++
		temp /= 10
	}

	// Add space for negative sign
	if negative {
		digits++
	}

	// Build string from right to left
	buf := make([]byte, digits)
	pos := digits - 1

	for u > 0 {
		buf[pos] = byte('0' + u%10)
		u /= 10
		pos--
	}

	if negative {
		buf[0] = '-'
	}

	return string(buf)
}

// btoa renders a bool the way the serial console expects it: "1" or "0"
func btoa(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// SplitString splits data on sep and returns the field at index.
// Every field but the last ends at the next separator; the last field runs
// to the end of the string and keeps a trailing separator, so "a,b" has
// fields "a" and "b" while "a," has the single field "a,".
// An index past the last field, or a negative index, returns "".
// Nothing is allocated; the result shares memory with data.
func SplitString(data string, sep byte, index int) string {
	if index < 0 {
		return ""
	}

	found := 0
	start, end := 0, -1
	last := len(data) - 1
	for i := 0; i <= last && found <= index; i++ {
		if data[i] != sep && i != last {
			continue
		}
		found++
		start = end + 1
		if i == last {
			end = i + 1
		} else {
			end = i
		}
	}

	if found > index {
		return data[start:end]
	}
	return ""
}
