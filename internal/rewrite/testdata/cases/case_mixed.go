package cases

import (
	"fmt"
	"os"
)

// Remove the lock file. Only annotated functions change, this one keeps
// its body as is.
func RemoveLock(path string) error {
	return os.Remove(path)
}

// Acquire the lock file.
//
//errctx:context
func AcquireLock(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return fmt.Errorf("open exclusively: %w", err)
	}
	return f.Close()
}
