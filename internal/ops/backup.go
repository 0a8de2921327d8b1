// Package ops holds operational helpers for the save database:
// archiving, restoring, and verifying backups.
package ops

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"idlepark/internal/save"
)

// sidecarSuffixes are the SQLite companion files that must travel
// with the database for a consistent cold copy.
var sidecarSuffixes = []string{"", "-wal", "-shm"}

// BackupSave archives the save database (and its WAL/SHM sidecars,
// when present) into a tar.gz at archivePath. The server should be
// stopped or idle; this is a cold copy.
func BackupSave(dbPath, archivePath string) error {
	dbPath = filepath.Clean(strings.TrimSpace(dbPath))
	archivePath = filepath.Clean(strings.TrimSpace(archivePath))
	if dbPath == "" || archivePath == "" {
		return fmt.Errorf("dbPath and archivePath are required")
	}
	if _, err := os.Stat(dbPath); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(archivePath), 0o755); err != nil {
		return err
	}

	f, err := os.Create(archivePath)
	if err != nil {
		return err
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	defer gz.Close()

	tw := tar.NewWriter(gz)
	defer tw.Close()

	for _, suffix := range sidecarSuffixes {
		path := dbPath + suffix
		info, err := os.Stat(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return err
		}

		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		hdr.Name = filepath.Base(path)
		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}

		src, err := os.Open(path)
		if err != nil {
			return err
		}
		if _, err := io.Copy(tw, src); err != nil {
			_ = src.Close()
			return err
		}
		if err := src.Close(); err != nil {
			return err
		}
	}

	return nil
}

// RestoreSave unpacks an archive produced by BackupSave into the
// directory of dbPath, renaming the database file to match.
func RestoreSave(archivePath, dbPath string) error {
	archivePath = filepath.Clean(strings.TrimSpace(archivePath))
	dbPath = filepath.Clean(strings.TrimSpace(dbPath))
	if archivePath == "" || dbPath == "" {
		return fmt.Errorf("archivePath and dbPath are required")
	}
	targetDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return err
	}

	f, err := os.Open(archivePath)
	if err != nil {
		return err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return err
	}
	defer gz.Close()

	var dbBase string
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}

		name, err := sanitizeArchiveName(hdr.Name)
		if err != nil {
			return err
		}
		// First entry is the database itself; later ones its sidecars.
		if dbBase == "" {
			dbBase = name
		}

		outName := filepath.Base(dbPath) + strings.TrimPrefix(name, dbBase)
		outPath := filepath.Join(targetDir, outName)
		dst, err := os.OpenFile(outPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, os.FileMode(hdr.Mode))
		if err != nil {
			return err
		}
		if _, err := io.Copy(dst, tr); err != nil {
			_ = dst.Close()
			return err
		}
		if err := dst.Close(); err != nil {
			return err
		}
	}

	if dbBase == "" {
		return fmt.Errorf("archive contains no database file")
	}
	return nil
}

// Summary is what a drill reports about a restored save.
type Summary struct {
	HasSave          bool
	Money            float64
	Guests           float64
	Buildings        int
	LifetimeEarnings float64
	GameOver         bool
}

// Drill restores the archive into a scratch directory and opens the
// result, proving the backup is actually loadable.
func Drill(ctx context.Context, archivePath string) (Summary, error) {
	scratch, err := os.MkdirTemp("", "idlepark-drill-*")
	if err != nil {
		return Summary{}, err
	}
	defer os.RemoveAll(scratch)

	dbPath := filepath.Join(scratch, "save.db")
	if err := RestoreSave(archivePath, dbPath); err != nil {
		return Summary{}, fmt.Errorf("restore: %w", err)
	}
	return Inspect(ctx, dbPath)
}

// Inspect opens a save database and summarizes its contents.
func Inspect(ctx context.Context, dbPath string) (Summary, error) {
	repo, err := save.OpenSQLite(dbPath)
	if err != nil {
		return Summary{}, fmt.Errorf("open: %w", err)
	}
	defer repo.Close()

	snap, ok, err := repo.Load(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("load: %w", err)
	}
	if !ok {
		return Summary{}, nil
	}
	return Summary{
		HasSave:          true,
		Money:            snap.Park.Money,
		Guests:           snap.Park.Guests,
		Buildings:        len(snap.Park.Slots),
		LifetimeEarnings: snap.Park.LifetimeEarnings,
		GameOver:         snap.Park.GameOver,
	}, nil
}

func sanitizeArchiveName(name string) (string, error) {
	name = filepath.Clean(strings.TrimSpace(name))
	if name == "." || name == "" {
		return "", fmt.Errorf("invalid archive entry path")
	}
	if filepath.IsAbs(name) || strings.Contains(name, "..") || strings.ContainsRune(name, filepath.Separator) {
		return "", fmt.Errorf("invalid archive entry path: %s", name)
	}
	return name, nil
}
