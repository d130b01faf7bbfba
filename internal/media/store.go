package media

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var allowedExt = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Store saves uploaded menu images under a single directory and hands back
// the public path for the stored file.
type Store struct {
	Dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{Dir: dir}, nil
}

// Allowed reports whether the filename has an accepted image extension.
func Allowed(filename string) bool {
	return allowedExt[strings.ToLower(filepath.Ext(filename))]
}

// Save writes the upload into the store directory. When a file with the same
// name already exists, the name is suffixed _1, _2, ... until it is free.
// Returns the web path ("/static/uploads/name.ext" style, derived from Dir).
func (s *Store) Save(fh *multipart.FileHeader) (string, error) {
	name := sanitize(filepath.Base(fh.Filename))
	if name == "" || !Allowed(name) {
		return "", fmt.Errorf("unsupported file type: %s", fh.Filename)
	}

	dest := filepath.Join(s.Dir, name)
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	for i := 1; exists(dest); i++ {
		name = fmt.Sprintf("%s_%d%s", base, i, ext)
		dest = filepath.Join(s.Dir, name)
	}

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	out, err := os.Create(dest)
	if err != nil {
		return "", err
	}
	defer out.Close()
	if _, err := io.Copy(out, src); err != nil {
		return "", err
	}

	return "/" + filepath.ToSlash(filepath.Join(filepath.Clean(s.Dir), name)), nil
}

func sanitize(name string) string {
	name = strings.TrimLeft(unsafeChars.ReplaceAllString(name, "_"), ".")
	return name
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
