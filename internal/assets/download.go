package assets

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
)

// DownloadOptions control a single file transfer.
type DownloadOptions struct {
	URL    string
	Dest   string
	Token  string
	Force  bool
	Client *http.Client
	Stdout io.Writer
}

// DownloadFile retrieves one remote file to a local destination.
//
// When the destination already exists and Force is false the call is a no-op
// and no request is made. Otherwise the body is streamed to a sibling
// "<dest>.part" file and renamed into place only once the stream has been
// fully consumed, so the destination is either absent or complete. On any
// failure the partial file is removed and the error surfaced to the caller;
// there is no automatic retry.
func DownloadFile(opts DownloadOptions) error {
	if opts.Client == nil {
		opts.Client = &http.Client{Timeout: 0}
	}

	if opts.Stdout == nil {
		opts.Stdout = io.Discard
	}

	if fi, err := os.Stat(opts.Dest); err == nil && !fi.IsDir() && !opts.Force {
		_, _ = fmt.Fprintf(opts.Stdout, "skip %s (exists)\n", opts.Dest)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.Dest), 0o755); err != nil {
		return fmt.Errorf("create dest dir: %w", err)
	}

	req, err := http.NewRequest(http.MethodGet, opts.URL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	if opts.Token != "" {
		req.Header.Set("Authorization", "Bearer "+opts.Token)
	}

	resp, err := opts.Client.Do(req)
	if err != nil {
		return fmt.Errorf("download request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("download failed for %s: %s", opts.URL, resp.Status)
	}

	tmp := opts.Dest + ".part"

	fh, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	var written int64

	buf := make([]byte, 64*1024)
	total := resp.ContentLength
	lastPrint := time.Now()

	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if _, writeErr := fh.Write(buf[:n]); writeErr != nil {
				_ = fh.Close()
				_ = os.Remove(tmp)

				return fmt.Errorf("write temp file: %w", writeErr)
			}

			written += int64(n)
			if time.Since(lastPrint) > 700*time.Millisecond {
				if total > 0 {
					pct := float64(written) * 100 / float64(total)
					_, _ = fmt.Fprintf(opts.Stdout, "  progress: %.1f%% (%s / %s)\n",
						pct, humanize.Bytes(uint64(written)), humanize.Bytes(uint64(total)))
				} else {
					_, _ = fmt.Fprintf(opts.Stdout, "  progress: %s\n", humanize.Bytes(uint64(written)))
				}

				lastPrint = time.Now()
			}
		}

		if readErr == io.EOF {
			break
		}

		if readErr != nil {
			_ = fh.Close()
			_ = os.Remove(tmp)

			return fmt.Errorf("download read failed: %w", readErr)
		}
	}

	if err := fh.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp, opts.Dest); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("move temp file into place: %w", err)
	}

	_, _ = fmt.Fprintf(opts.Stdout, "downloaded %s -> %s (%s)\n",
		opts.URL, opts.Dest, humanize.Bytes(uint64(written)))

	return nil
}
