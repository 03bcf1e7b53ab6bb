package assets

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Built-in remote defaults. Both are overridable by flags and environment.
const (
	DefaultReleaseURL = "https://github.com/williamomeara/audiobook_flutter_assets/releases/download/ai-cores-int8-v1/supertonic_core.tar.gz"
	DefaultBaseURL    = "https://huggingface.co/Supertone/supertonic/resolve/{revision}/"

	revisionPlaceholder = "{revision}"

	// releaseTopDir is the directory the release archive carries at its root.
	releaseTopDir = "supertonic"
)

// ConfigError reports an unusable base-URL template.
type ConfigError struct {
	Template string
	Msg      string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid base URL template %q: %s", e.Template, e.Msg)
}

// FetchOptions configure a full asset fetch.
type FetchOptions struct {
	Dest        string
	WorkDir     string // scratch parent for the release archive; system temp when empty
	Revision    string
	Styles      []string
	Force       bool
	SkipRelease bool
	ReleaseURL  string
	BaseURL     string
	Token       string
	Client      *http.Client
	Stdout      io.Writer
	Stderr      io.Writer
}

// FetchAssets populates Dest with a complete asset set.
//
// When a release URL is configured and not skipped the release archive is
// tried first; any failure on that path is logged and recovered by falling
// back to per-file downloads from the base URL template. Only both strategies
// failing is an error. Missing optional voice styles are warnings, missing
// required files abort the per-file run.
func FetchAssets(opts FetchOptions) error {
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

	if opts.Styles == nil {
		opts.Styles = DefaultStyles()
	}

	if opts.Dest == "" {
		return fmt.Errorf("dest is required")
	}

	if err := os.MkdirAll(opts.Dest, 0o755); err != nil {
		return fmt.Errorf("create dest dir: %w", err)
	}

	if opts.ReleaseURL != "" && !opts.SkipRelease {
		_, _ = fmt.Fprintln(opts.Stdout, "attempting release archive download...")

		err := fetchRelease(opts)
		if err == nil {
			_, _ = fmt.Fprintln(opts.Stdout, color.GreenString("release archive fetched and extracted into %s", opts.Dest))
			return nil
		}

		slog.Warn("release fetch failed; falling back to per-file downloads",
			"url", opts.ReleaseURL, "error", err)
	}

	base, err := ResolveBaseURL(opts.BaseURL, opts.Revision)
	if err != nil {
		return err
	}

	if err := fetchPerFile(opts, base); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(opts.Stdout, color.GreenString("per-file downloads finished; assets placed in %s", opts.Dest))

	return nil
}

// fetchRelease downloads the release archive to a scratch directory and
// unpacks it into the destination. The scratch directory is removed on every
// path, success or failure.
func fetchRelease(opts FetchOptions) error {
	scratch, err := os.MkdirTemp(opts.WorkDir, "supertonic-release-*")
	if err != nil {
		return fmt.Errorf("create scratch dir: %w", err)
	}

	defer func() { _ = os.RemoveAll(scratch) }()

	archivePath := filepath.Join(scratch, releaseArchiveName(opts.ReleaseURL))

	err = DownloadFile(DownloadOptions{
		URL:    opts.ReleaseURL,
		Dest:   archivePath,
		Token:  opts.Token,
		Force:  true,
		Client: opts.Client,
		Stdout: opts.Stdout,
	})
	if err != nil {
		return err
	}

	if err := Unpack(archivePath, opts.Dest, opts.Force); err != nil {
		return err
	}

	return hoistReleaseDir(opts.Dest, opts.Force)
}

// releaseArchiveName derives a local filename for the release blob, ignoring
// any query string. The extension must survive so Unpack can dispatch on it.
func releaseArchiveName(releaseURL string) string {
	name := releaseURL

	if u, err := url.Parse(releaseURL); err == nil && u.Path != "" {
		name = u.Path
	}

	name = path.Base(name)
	if name == "" || name == "." || name == "/" {
		name = "release.tar.gz"
	}

	return name
}

// hoistReleaseDir flattens the archive's fixed top-level directory so the
// destination ends up with onnx/ and voice_styles/ at its root, matching the
// per-file layout. Entries are merged into an already-populated destination
// one by one, honoring force for pre-existing files, and the nested directory
// is removed afterwards so a re-run never leaves a duplicate tree behind.
func hoistReleaseDir(dest string, force bool) error {
	nested := filepath.Join(dest, releaseTopDir)

	fi, err := os.Stat(nested)
	if err != nil || !fi.IsDir() {
		return nil
	}

	err = filepath.WalkDir(nested, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(nested, p)
		if err != nil {
			return err
		}

		if rel == "." {
			return nil
		}

		target := filepath.Join(dest, rel)

		if d.IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("create dir %s: %w", target, err)
			}

			return nil
		}

		if _, err := os.Stat(target); err == nil {
			if !force {
				return nil
			}

			if err := os.Remove(target); err != nil {
				return fmt.Errorf("replace %s: %w", target, err)
			}
		}

		if err := os.Rename(p, target); err != nil {
			return fmt.Errorf("move %s into place: %w", rel, err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("flatten extracted dir: %w", err)
	}

	return os.RemoveAll(nested)
}

// ResolveBaseURL normalizes a base-URL template and substitutes the revision.
// A template without a {revision} placeholder gets one appended; braces left
// over after substitution mean the template is malformed.
func ResolveBaseURL(tmpl, revision string) (string, error) {
	if tmpl == "" {
		tmpl = DefaultBaseURL
	}

	if !strings.Contains(tmpl, revisionPlaceholder) {
		if !strings.HasSuffix(tmpl, "/") {
			tmpl += "/"
		}

		tmpl += revisionPlaceholder + "/"
	}

	base := strings.ReplaceAll(tmpl, revisionPlaceholder, revision)
	if strings.ContainsAny(base, "{}") {
		return "", &ConfigError{Template: tmpl, Msg: "unresolved placeholder"}
	}

	if _, err := url.Parse(base); err != nil {
		return "", &ConfigError{Template: tmpl, Msg: err.Error()}
	}

	if !strings.HasSuffix(base, "/") {
		base += "/"
	}

	return base, nil
}

func fetchPerFile(opts FetchOptions, base string) error {
	for _, rel := range RequiredFiles() {
		err := DownloadFile(DownloadOptions{
			URL:    base + rel,
			Dest:   filepath.Join(opts.Dest, filepath.FromSlash(rel)),
			Token:  opts.Token,
			Force:  opts.Force,
			Client: opts.Client,
			Stdout: opts.Stdout,
		})
		if err != nil {
			return fmt.Errorf("required file %s: %w", rel, err)
		}
	}

	for _, style := range opts.Styles {
		rel := StyleFile(style)

		err := DownloadFile(DownloadOptions{
			URL:    base + rel,
			Dest:   filepath.Join(opts.Dest, filepath.FromSlash(rel)),
			Token:  opts.Token,
			Force:  opts.Force,
			Client: opts.Client,
			Stdout: opts.Stdout,
		})
		if err != nil {
			slog.Warn("could not download voice style", "style", style, "error", err)
			_, _ = fmt.Fprintln(opts.Stderr, color.YellowString("warning: could not download voice style %s: %v", style, err))
		}
	}

	return nil
}
