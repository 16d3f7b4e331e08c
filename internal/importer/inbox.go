package importer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Statement is a bank export file.
type Statement struct {
	Name string
	Path string
	Size int64
}

// Inbox is a project's import/ directory. Statements dropped there are
// imported by `fintrack import` and then archived under import/processed/.
type Inbox struct {
	dir string
}

// NewInbox returns the inbox of the project rooted at projectDir.
func NewInbox(projectDir string) *Inbox {
	return &Inbox{dir: filepath.Join(projectDir, "import")}
}

func (in *Inbox) processedDir() string {
	return filepath.Join(in.dir, "processed")
}

// Prepare creates the inbox and its archive directory.
func (in *Inbox) Prepare() error {
	if err := os.MkdirAll(in.processedDir(), 0o755); err != nil {
		return fmt.Errorf("creating import inbox: %w", err)
	}
	return nil
}

// Pending returns the CSV statements waiting in the inbox, by name. A
// missing inbox has nothing pending.
func (in *Inbox) Pending() ([]Statement, error) {
	entries, err := os.ReadDir(in.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading import inbox: %w", err)
	}

	var pending []Statement
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		pending = append(pending, Statement{
			Name: e.Name(),
			Path: filepath.Join(in.dir, e.Name()),
			Size: info.Size(),
		})
	}
	return pending, nil
}

// Archive moves an imported statement to import/processed/. If a statement
// with the same name was archived before, a numeric suffix keeps both.
// Returns the archived path.
func (in *Inbox) Archive(name string) (string, error) {
	if err := in.Prepare(); err != nil {
		return "", err
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	dst := filepath.Join(in.processedDir(), name)
	for n := 2; ; n++ {
		if _, err := os.Stat(dst); errors.Is(err, fs.ErrNotExist) {
			break
		}
		dst = filepath.Join(in.processedDir(), stem+"-"+strconv.Itoa(n)+ext)
	}

	if err := os.Rename(filepath.Join(in.dir, name), dst); err != nil {
		return "", fmt.Errorf("archiving %s: %w", name, err)
	}
	return dst, nil
}
