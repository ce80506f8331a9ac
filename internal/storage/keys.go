package storage

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	unsafeFolderChars = regexp.MustCompile(`[^a-zA-Z0-9/_-]`)
	nameInvalidChars  = regexp.MustCompile(`[^a-z0-9\s-]`)
	nameWhitespace    = regexp.MustCompile(`\s+`)
	nameDashRuns      = regexp.MustCompile(`-+`)
)

// SanitizeFolder replaces characters outside [a-zA-Z0-9/_-] with "_".
func SanitizeFolder(folder string) string {
	return unsafeFolderChars.ReplaceAllString(folder, "_")
}

// SanitizeName turns a display name into a short slug usable in object keys.
func SanitizeName(name string) string {
	s := strings.TrimSpace(strings.ToLower(name))
	s = nameInvalidChars.ReplaceAllString(s, "")
	s = nameWhitespace.ReplaceAllString(s, "-")
	s = nameDashRuns.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > 50 {
		s = s[:50]
	}
	return s
}

// Extension returns the text after the last "." or "bin".
func Extension(originalName string) string {
	idx := strings.LastIndex(originalName, ".")
	if idx < 0 || idx == len(originalName)-1 {
		return "bin"
	}
	return originalName[idx+1:]
}

// GenerateKey builds folder/[prefix-]<unix ms>-<16 hex>.<ext>.
func GenerateKey(folder, originalName, prefix string) string {
	if folder == "" {
		folder = "uploads"
	}
	safeFolder := strings.TrimRight(SanitizeFolder(folder), "/")

	filename := fmt.Sprintf("%d-%s.%s", time.Now().UnixMilli(), randomHex(8), Extension(originalName))
	if prefix != "" {
		filename = prefix + "-" + filename
	}
	return safeFolder + "/" + filename
}

func randomHex(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("%0*x", n*2, time.Now().UnixNano())
	}
	return hex.EncodeToString(buf)
}
