package artifact

import (
	"fmt"
	"os"
)

// BackupCredentials writes a rolling copy of the credentials file next to
// the original. The previous backup is removed first, so at most one is ever
// retained. Returns the backup path.
func BackupCredentials(path string) (string, error) {
	backup := path + ".bak"
	if err := os.Remove(backup); err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("could not remove previous backup %s: %w", backup, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("could not read credentials file: %w", err)
	}
	if err := os.WriteFile(backup, data, 0600); err != nil {
		return "", fmt.Errorf("could not write backup %s: %w", backup, err)
	}
	return backup, nil
}
