// internal/app/system/limits/limits.go
package limits

// Request body size limits.
const (
	// MaxJSONBody caps any decoded JSON request body. Event descriptions are
	// the largest field at 10,000 characters.
	MaxJSONBody = 1 << 20 // 1 MB
)
