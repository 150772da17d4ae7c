// Package writer puts rendered files on disk.
//
// Write-if-absent files are kept when the target exists, and paths matched
// by the output directory's ignore file are never written.
package writer

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/edgar1992/openapi-generator/internal/logger"
	"github.com/edgar1992/openapi-generator/internal/render"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// MetadataDir holds the list of written files.
const MetadataDir = ".openapi-generator"

// Options controls a write.
type Options struct {
	// DryRun computes the report without touching the file system.
	DryRun bool
	// SkipMetadata disables writing MetadataDir/FILES.
	SkipMetadata bool
}

// Report lists what a write did, in file order.
type Report struct {
	Written []string
	Skipped []string
	Ignored []string
}

// ErrUnsafePath is returned for file paths that are absolute or leave the
// output directory.
var ErrUnsafePath = errors.New("path outside output directory")

// Write writes files below outputDir. It creates the directory if it
// doesn't exist.
//
// Every file is first staged next to its target and renamed into place only
// once all files are staged, so a failed write leaves no generated file
// behind. A failing rename can still leave earlier renames in place.
func Write(files []render.File, outputDir string, opts Options) (*Report, error) {
	for _, file := range files {
		if !safePath(file.Path) {
			return nil, errors.Wrapf(ErrUnsafePath, "%q", file.Path)
		}
	}

	ignore, err := LoadIgnoreFile(filepath.Join(outputDir, IgnoreFileName))
	if err != nil {
		return nil, err
	}

	logger.Debugw("ignore file loaded", "patterns", ignore.Len())

	report := &Report{}

	var pending []render.File

	for _, file := range files {
		if ignore.Ignored(file.Path) {
			report.Ignored = append(report.Ignored, file.Path)
			logger.Debugw("file ignored", "path", file.Path)

			continue
		}

		if file.WriteIfAbsent {
			found, err := exists(target(outputDir, file.Path))
			if err != nil {
				return nil, errors.Wrapf(err, "checking file %s", file.Path)
			}

			if found {
				report.Skipped = append(report.Skipped, file.Path)
				logger.Debugw("file exists, kept", "path", file.Path)

				continue
			}
		}

		pending = append(pending, file)
		report.Written = append(report.Written, file.Path)
	}

	if opts.DryRun {
		return report, nil
	}

	if err := os.MkdirAll(outputDir, dirPerm); err != nil {
		return nil, errors.Wrap(err, "creating output directory")
	}

	if err := commit(outputDir, pending); err != nil {
		return nil, err
	}

	if !opts.SkipMetadata {
		if err := writeMetadata(outputDir, report.Written); err != nil {
			return nil, err
		}
	}

	return report, nil
}

// commit stages every file and renames the staged files into place.
func commit(outputDir string, files []render.File) error {
	staged := make([]string, 0, len(files))

	discard := func() {
		for _, tmp := range staged {
			_ = os.Remove(tmp)
		}
	}

	for _, file := range files {
		tmp, err := stage(target(outputDir, file.Path), file.Content)
		if err != nil {
			discard()
			return errors.Wrapf(err, "writing file %s", file.Path)
		}

		staged = append(staged, tmp)
	}

	for i, file := range files {
		if err := os.Rename(staged[i], target(outputDir, file.Path)); err != nil {
			staged = staged[i:]
			discard()

			return errors.Wrapf(err, "writing file %s", file.Path)
		}
	}

	return nil
}

// stage writes content to a temporary file in the directory of name.
func stage(name string, content []byte) (string, error) {
	if err := os.MkdirAll(filepath.Dir(name), dirPerm); err != nil {
		return "", err
	}

	f, err := os.CreateTemp(filepath.Dir(name), "."+filepath.Base(name)+".*")
	if err != nil {
		return "", err
	}

	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())

		return "", err
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", err
	}

	if err := os.Chmod(f.Name(), filePerm); err != nil {
		_ = os.Remove(f.Name())
		return "", err
	}

	return f.Name(), nil
}

func writeFile(name string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(name), dirPerm); err != nil {
		return err
	}

	return os.WriteFile(name, content, filePerm)
}

func writeMetadata(outputDir string, written []string) error {
	content := strings.Join(written, "\n")
	if content != "" {
		content += "\n"
	}

	if err := writeFile(filepath.Join(outputDir, MetadataDir, "FILES"), []byte(content)); err != nil {
		return errors.Wrap(err, "writing generator metadata")
	}

	return nil
}

func target(outputDir, file string) string {
	return filepath.Join(outputDir, filepath.FromSlash(file))
}

// safePath reports whether p is a relative slash separated path that stays
// below the output directory.
func safePath(p string) bool {
	if p == "" || path.IsAbs(p) || filepath.IsAbs(filepath.FromSlash(p)) {
		return false
	}

	clean := path.Clean(p)

	return clean != "." && clean != ".." && !strings.HasPrefix(clean, "../")
}

// exists reports whether name exists. Errors other than a missing file are
// returned, an unreadable file is never overwritten.
func exists(name string) (bool, error) {
	_, err := os.Stat(name)

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}
