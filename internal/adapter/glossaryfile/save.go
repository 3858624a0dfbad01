package glossaryfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/heartmarshall/concept-clarity/internal/domain"
)

const lockRetryDelay = 100 * time.Millisecond

// Save writes g to path in the given format, keeping term order.
//
// Writers serialize on <path>.lock. The content goes to a temp file in the
// same directory which is then renamed over path, so readers see either the
// old file or the new one.
func Save(ctx context.Context, path string, format Format, g *domain.Glossary) error {
	data, err := encode(g.Entries(), format.resolve(path))
	if err != nil {
		return fmt.Errorf("save glossary %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("save glossary: create dir %s: %w", dir, err)
	}

	lockPath := path + ".lock"
	l := flock.New(lockPath)
	locked, err := l.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("save glossary: lock %s: %w", lockPath, err)
	}
	if !locked {
		return fmt.Errorf("save glossary: another writer holds %s", lockPath)
	}
	defer func() { _ = l.Unlock() }()

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("save glossary: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("save glossary: write %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("save glossary: sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save glossary: close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("save glossary: chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("save glossary: replace %s: %w", path, err)
	}
	return nil
}
