package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/tools/txtar"
)

// WriteFiles writes each file by renaming a fully written temp file from the
// same directory over the target, so a target is either the old or the new
// content, never a truncated mix.
func WriteFiles(files []GeneratedFile) error {
	for _, f := range files {
		if err := writeAtomic(f.Name, f.Content); err != nil {
			return fmt.Errorf("write %s: %w", f.Name, err)
		}
	}
	return nil
}

func writeAtomic(path string, content []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(content); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// FormatArchive renders files as one txtar archive, for --dry-run.
func FormatArchive(files []GeneratedFile) []byte {
	ar := &txtar.Archive{
		Comment: []byte(fmt.Sprintf("onebinary: %d files\n", len(files))),
	}
	for _, f := range files {
		data := f.Content
		if n := len(data); n > 0 && data[n-1] != '\n' {
			data = append(data[:n:n], '\n')
		}
		ar.Files = append(ar.Files, txtar.File{Name: f.Name, Data: data})
	}
	return txtar.Format(ar)
}

// PrintArchive writes the dry-run archive to w.
func PrintArchive(w io.Writer, files []GeneratedFile) error {
	_, err := w.Write(FormatArchive(files))
	return err
}
