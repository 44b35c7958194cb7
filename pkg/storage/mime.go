package storage

import (
	"mime"
	"net/http"
	"path/filepath"
	"strings"
)

// MIME type constants.
const (
	MIMEOctetStream    = "application/octet-stream"
	mimeDetectionBytes = 512 // http.DetectContentType looks at no more than 512 bytes
)

// extTypes covers extensions commonly attached to scheduled reports
// that the platform MIME table may not know.
var extTypes = map[string]string{
	".log":  "text/plain; charset=utf-8",
	".csv":  "text/csv",
	".md":   "text/markdown; charset=utf-8",
	".yaml": "application/yaml",
	".yml":  "application/yaml",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	".7z":   "application/x-7z-compressed",
}

// DetectMIME returns the MIME type of content named name.
// Magic bytes win; the extension is consulted when sniffing is inconclusive.
func DetectMIME(name string, content []byte) string {
	head := content
	if len(head) > mimeDetectionBytes {
		head = head[:mimeDetectionBytes]
	}

	sniffed := MIMEOctetStream
	if len(head) > 0 {
		sniffed = http.DetectContentType(head)
	}
	if !isGeneric(sniffed) {
		return sniffed
	}

	if byExt := mimeFromExt(filepath.Ext(name)); byExt != "" {
		return byExt
	}
	return sniffed
}

func mimeFromExt(ext string) string {
	ext = strings.ToLower(ext)
	if ext == "" {
		return ""
	}
	if t, ok := extTypes[ext]; ok {
		return t
	}
	return mime.TypeByExtension(ext)
}

// isGeneric reports whether a sniffed type says nothing beyond "text" or "bytes".
// Office documents sniff as zip archives, so those count as generic as well.
func isGeneric(mimeType string) bool {
	switch normalizeMIME(mimeType) {
	case MIMEOctetStream, "text/plain", "application/zip":
		return true
	}
	return false
}

// normalizeMIME extracts the base MIME type, removing parameters like charset.
func normalizeMIME(mimeType string) string {
	mimeType, _, _ = strings.Cut(mimeType, ";")
	return strings.TrimSpace(strings.ToLower(mimeType))
}
