// internal/app/system/limits/limits.go
package limits

// Request body size limits for various features.
// These limits help prevent memory exhaustion from oversized requests.
const (
	// MaxBannerFormSize caps the announcement banner form submission.
	MaxBannerFormSize = 64 << 10 // 64 KB

	// MaxFormSize is the general cap for simple form submissions.
	MaxFormSize = 1 << 20 // 1 MB
)
