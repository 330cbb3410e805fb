package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/genguard/genguard/internal/errors"
)

// hashChunkSize is the read size used when streaming files through the digest
const hashChunkSize = 4096

// Auditor provides integrity checks (content hashing, size verification) on
// top of an audit event sink. Hashes are used for tamper-evidence in the
// audit trail, not for deduplication.
type Auditor struct {
	Sink
	maxFileSize int64
}

// NewAuditor creates an auditor that emits events to sink and enforces
// maxFileSize in VerifySize
func NewAuditor(sink Sink, maxFileSize int64) *Auditor {
	return &Auditor{Sink: sink, maxFileSize: maxFileSize}
}

// HashFile streams the file through SHA-256 and returns the hex digest.
// A missing file is a hard failure.
func (a *Auditor) HashFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &errors.NotFoundError{Path: path}
		}
		return "", fmt.Errorf("failed to open file for hashing: %w", err)
	}
	defer file.Close()

	digest := sha256.New()
	buf := make([]byte, hashChunkSize)
	if _, err := io.CopyBuffer(digest, file, buf); err != nil {
		return "", fmt.Errorf("failed to hash file: %w", err)
	}

	return hex.EncodeToString(digest.Sum(nil)), nil
}

// VerifySize reports whether the file is within the configured size limit.
// A missing file passes (there is nothing to violate). This is an advisory
// after-the-fact check, not a write-time ceiling.
func (a *Auditor) VerifySize(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return true
	}

	if info.Size() > a.maxFileSize {
		a.LogEvent(EventSizeLimit, fmt.Sprintf("File exceeds size limit: %s (%d bytes, max %d)", path, info.Size(), a.maxFileSize))
		return false
	}

	return true
}
