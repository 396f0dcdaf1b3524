package buffer

import "bytes"

// Find returns the offset of the next match of pattern in data, searching
// forward from start or backward from just before it. It returns -1 when
// there is none.
func Find(data, pattern []byte, start int64, forward bool) int64 {
	if len(pattern) == 0 || len(data) == 0 {
		return -1
	}

	last := int64(len(data)) - int64(len(pattern))
	if forward {
		if start < 0 {
			start = 0
		}
		if start > last {
			return -1
		}
		if i := bytes.Index(data[start:], pattern); i >= 0 {
			return start + int64(i)
		}
		return -1
	}

	end := start - 1
	if end > last {
		end = last
	}
	if end < 0 {
		return -1
	}
	return int64(bytes.LastIndex(data[:end+int64(len(pattern))], pattern))
}

func CountMatches(data, pattern []byte) int {
	if len(pattern) == 0 {
		return 0
	}
	count := 0
	for i := 0; i+len(pattern) <= len(data); {
		j := bytes.Index(data[i:], pattern)
		if j < 0 {
			break
		}
		count++
		i += j + 1
	}
	return count
}
