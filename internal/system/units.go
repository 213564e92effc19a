package system

import "strconv"

const bytesPerGB = 1 << 30

// GB converts bytes to whole gigabytes, truncating
func GB(bytes uint64) uint64 {
	return bytes / bytesPerGB
}

// Float2string converts float to string with specified precision
func Float2string(f float64, precision int) string {
	return strconv.FormatFloat(f, 'f', precision, 64)
}
