package cl

import "bytes"

// trimNUL converts a NUL-terminated byte buffer into a Go string.
func trimNUL(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

// CString encodes s the way the API returns string properties: NUL-terminated.
func CString(s string) []byte {
	b := make([]byte, len(s)+1)
	copy(b, s)
	return b
}

// GoString decodes a NUL-terminated string property.
func GoString(b []byte) string {
	return trimNUL(b)
}
