package utils

import (
	"io"
	"net/http"
	"os"
)

// DetectMimeType returns the MIME type of the file at filePath.
// It reads up to sniffLength bytes and classifies them with http.DetectContentType.
// An unreadable file yields an empty string.
func DetectMimeType(filePath string) string {
	fileHandle, openError := os.Open(filePath)
	if openError != nil {
		return ""
	}
	defer fileHandle.Close()

	sniffBuffer := make([]byte, sniffLength)
	bytesRead, readError := fileHandle.Read(sniffBuffer)
	if readError != nil && readError != io.EOF {
		return ""
	}
	return http.DetectContentType(sniffBuffer[:bytesRead])
}
