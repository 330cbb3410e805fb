package security

// Config holds security policy settings. It is set once at validator
// construction and never mutated.
type Config struct {
	AllowedExtensions  []string
	MaxFileSize        int64
	AllowedDirectories []string
}

// DefaultConfig returns the default security policy
func DefaultConfig() Config {
	return Config{
		AllowedExtensions:  []string{".py", ".js", ".ts", ".txt"},
		MaxFileSize:        10 * 1024 * 1024, // 10MB
		AllowedDirectories: []string{"src", "scripts", "output"},
	}
}
