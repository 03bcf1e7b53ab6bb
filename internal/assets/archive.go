package assets

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Pack creates a gzip-compressed tar archive of srcDir at outPath, with every
// entry placed under topName at the archive root. On failure the output file
// is removed so a partially written archive never survives.
func Pack(srcDir, outPath, topName string) error {
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create archive %s: %w", outPath, err)
	}

	gz := gzip.NewWriter(out)
	tw := tar.NewWriter(gz)

	walkErr := filepath.WalkDir(srcDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(srcDir, p)
		if err != nil {
			return err
		}

		if rel == "." {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return fmt.Errorf("tar header for %s: %w", rel, err)
		}

		hdr.Name = path.Join(topName, filepath.ToSlash(rel))
		if d.IsDir() {
			hdr.Name += "/"
		}

		if err := tw.WriteHeader(hdr); err != nil {
			return fmt.Errorf("write tar header for %s: %w", rel, err)
		}

		if d.IsDir() {
			return nil
		}

		fh, err := os.Open(p)
		if err != nil {
			return fmt.Errorf("open %s: %w", p, err)
		}

		_, err = io.Copy(tw, fh)

		_ = fh.Close()

		if err != nil {
			return fmt.Errorf("archive %s: %w", rel, err)
		}

		return nil
	})

	if walkErr == nil {
		walkErr = tw.Close()
	} else {
		_ = tw.Close()
	}

	if walkErr == nil {
		walkErr = gz.Close()
	} else {
		_ = gz.Close()
	}

	if closeErr := out.Close(); walkErr == nil {
		walkErr = closeErr
	}

	if walkErr != nil {
		_ = os.Remove(outPath)
		return fmt.Errorf("pack %s: %w", srcDir, walkErr)
	}

	return nil
}

// Unpack extracts an archive into destDir, dispatching on the file extension.
// Supported formats are .zip, .tar, .tar.gz and .tgz; anything else yields an
// unsupported-archive-type error before any file is written. Existing files
// under destDir are kept as-is unless force is true.
func Unpack(archivePath, destDir string, force bool) error {
	name := strings.ToLower(archivePath)

	switch {
	case strings.HasSuffix(name, ".zip"):
		return extractZip(archivePath, destDir, force)
	case strings.HasSuffix(name, ".tar.gz"), strings.HasSuffix(name, ".tgz"):
		return extractTar(archivePath, destDir, force, true)
	case strings.HasSuffix(name, ".tar"):
		return extractTar(archivePath, destDir, force, false)
	default:
		return fmt.Errorf("unsupported archive type: %s", archivePath)
	}
}

func extractZip(archivePath, destDir string, force bool) error {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("open zip archive: %w", err)
	}

	defer func() { _ = zr.Close() }()

	for _, f := range zr.File {
		targetPath, err := safeExtractPath(destDir, f.Name)
		if err != nil {
			return err
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(targetPath, 0o755); err != nil {
				return fmt.Errorf("create dir %s: %w", targetPath, err)
			}

			continue
		}

		if _, err := os.Stat(targetPath); err == nil && !force {
			continue
		}

		if err := os.MkdirAll(filepath.Dir(targetPath), 0o755); err != nil {
			return fmt.Errorf("create parent dir for %s: %w", targetPath, err)
		}

		src, err := f.Open()
		if err != nil {
			return fmt.Errorf("open zip entry %s: %w", f.Name, err)
		}

		dst, err := os.Create(targetPath)
		if err != nil {
			_ = src.Close()
			return fmt.Errorf("create extracted file %s: %w", targetPath, err)
		}

		_, err = io.Copy(dst, src)

		_ = dst.Close()
		_ = src.Close()

		if err != nil {
			return fmt.Errorf("extract zip entry %s: %w", f.Name, err)
		}
	}

	return nil
}

func extractTar(archivePath, destDir string, force, gzipped bool) error {
	fh, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("open tar archive: %w", err)
	}

	defer func() { _ = fh.Close() }()

	var reader io.Reader = fh

	if gzipped {
		gz, err := gzip.NewReader(fh)
		if err != nil {
			return fmt.Errorf("open gzip reader: %w", err)
		}

		defer func() { _ = gz.Close() }()

		reader = gz
	}

	tr := tar.NewReader(reader)

	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return fmt.Errorf("read tar entry: %w", err)
		}

		targetPath, err := safeExtractPath(destDir, hdr.Name)
		if err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(targetPath, 0o755); err != nil {
				return fmt.Errorf("create dir %s: %w", targetPath, err)
			}
		case tar.TypeReg:
			if _, err := os.Stat(targetPath); err == nil && !force {
				continue
			}

			if err := os.MkdirAll(filepath.Dir(targetPath), 0o755); err != nil {
				return fmt.Errorf("create parent dir for %s: %w", targetPath, err)
			}

			dst, err := os.Create(targetPath)
			if err != nil {
				return fmt.Errorf("create extracted file %s: %w", targetPath, err)
			}

			_, err = io.Copy(dst, tr)

			_ = dst.Close()

			if err != nil {
				return fmt.Errorf("extract tar entry %s: %w", hdr.Name, err)
			}
		default:
			// Ignore non-regular entries for archive portability.
		}
	}

	return nil
}

func safeExtractPath(baseDir, entryName string) (string, error) {
	cleaned := filepath.Clean(strings.TrimPrefix(entryName, "/"))
	target := filepath.Join(baseDir, cleaned)

	base := filepath.Clean(baseDir) + string(os.PathSeparator)
	if !strings.HasPrefix(filepath.Clean(target)+string(os.PathSeparator), base) {
		return "", fmt.Errorf("unsafe archive path traversal attempt: %q", entryName)
	}

	return target, nil
}
