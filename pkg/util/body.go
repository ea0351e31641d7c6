package util

// MaxLogBodySize caps response bodies written to debug logs.
const MaxLogBodySize = 4 * 1024

const truncatedSuffix = "...(truncated)"

// TruncateBody returns at most maxSize bytes of body as a string.
// A non-positive maxSize selects MaxLogBodySize.
func TruncateBody(body []byte, maxSize int) string {
	if maxSize <= 0 {
		maxSize = MaxLogBodySize
	}
	if len(body) <= maxSize {
		return string(body)
	}
	return string(body[:maxSize]) + truncatedSuffix
}
