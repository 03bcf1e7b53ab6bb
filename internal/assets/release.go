package assets

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
)

// ArchiveError reports a failure to create the release archive itself, as
// opposed to a failure downloading its contents.
type ArchiveError struct {
	Path string
	Err  error
}

func (e *ArchiveError) Error() string { return e.Err.Error() }

func (e *ArchiveError) Unwrap() error { return e.Err }

// BuildOptions configure a release archive build.
type BuildOptions struct {
	Output   string
	WorkDir  string // staging directory; system temp when empty
	Revision string
	Styles   []string
	Force    bool
	Keep     bool // retain the working directory after the build
	BaseURL  string
	Token    string
	Client   *http.Client
	Stdout   io.Writer
	Stderr   io.Writer
}

// FetchResult records the outcome for a single asset file.
type FetchResult struct {
	Path string
	Err  error
}

// BuildRelease downloads the complete asset set into the working directory
// and packs it into a gzip-compressed tar archive at Output, with everything
// under a fixed top-level directory. Every file is required here: download
// failures are collected, reported in aggregate and fail the build before any
// archive is written.
func BuildRelease(opts BuildOptions) error {
	if opts.Stdout == nil {
		opts.Stdout = io.Discard
	}

	if opts.Stderr == nil {
		opts.Stderr = io.Discard
	}

	if opts.Client == nil {
		opts.Client = &http.Client{Timeout: 0}
	}

	if opts.Revision == "" {
		opts.Revision = "main"
	}

	if opts.Output == "" {
		return fmt.Errorf("output path is required")
	}

	base, err := ResolveBaseURL(opts.BaseURL, opts.Revision)
	if err != nil {
		return err
	}

	workDir := opts.WorkDir
	if workDir == "" {
		workDir, err = os.MkdirTemp("", "supertonic-build-*")
		if err != nil {
			return fmt.Errorf("create work dir: %w", err)
		}
	} else if err := os.MkdirAll(workDir, 0o755); err != nil {
		return fmt.Errorf("create work dir: %w", err)
	}

	if !opts.Keep {
		defer func() { _ = os.RemoveAll(workDir) }()
	}

	stage := filepath.Join(workDir, releaseTopDir)

	results := make([]FetchResult, 0, len(RequiredFiles())+len(opts.Styles))

	for _, rel := range AllFiles(opts.Styles) {
		err := DownloadFile(DownloadOptions{
			URL:    base + rel,
			Dest:   filepath.Join(stage, filepath.FromSlash(rel)),
			Token:  opts.Token,
			Force:  opts.Force,
			Client: opts.Client,
			Stdout: opts.Stdout,
		})

		results = append(results, FetchResult{Path: rel, Err: err})
	}

	var failed int

	for _, r := range results {
		if r.Err != nil {
			failed++

			_, _ = fmt.Fprintln(opts.Stderr, color.RedString("failed: %s: %v", r.Path, r.Err))
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d downloads failed", failed, len(results))
	}

	_, _ = fmt.Fprintf(opts.Stdout, "all %d files downloaded; creating archive %s\n", len(results), opts.Output)

	if err := Pack(stage, opts.Output, releaseTopDir); err != nil {
		return &ArchiveError{Path: opts.Output, Err: err}
	}

	if fi, err := os.Stat(opts.Output); err == nil {
		_, _ = fmt.Fprintln(opts.Stdout, color.GreenString("archive created: %s (%s)", opts.Output, humanize.Bytes(uint64(fi.Size()))))
	}

	if opts.Keep {
		_, _ = fmt.Fprintf(opts.Stdout, "work directory kept: %s\n", workDir)
	}

	return nil
}
