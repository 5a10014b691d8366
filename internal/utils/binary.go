package utils

import (
	"io"
	"os"
	"unicode/utf8"
)

// sniffLength bounds the number of bytes read when classifying file content.
const sniffLength = 8000

// IsBinary reports whether the provided byte slice appears to contain binary data.
// Content is treated as binary when it is not valid UTF-8 or contains a NUL byte.
func IsBinary(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	if !utf8.Valid(data) {
		return true
	}
	for _, byteValue := range data {
		if byteValue == 0 {
			return true
		}
	}
	return false
}

// IsFileBinary reads up to sniffLength bytes from the file at path and reports
// whether the content appears to be binary. Unreadable files are reported as text.
func IsFileBinary(path string) bool {
	fileHandle, openError := os.Open(path)
	if openError != nil {
		return false
	}
	defer fileHandle.Close()

	sniffBuffer := make([]byte, sniffLength)
	bytesRead, readError := fileHandle.Read(sniffBuffer)
	if readError != nil && readError != io.EOF {
		return false
	}
	return IsBinary(sniffBuffer[:bytesRead])
}
