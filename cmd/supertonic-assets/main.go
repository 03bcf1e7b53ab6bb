package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/example/supertonic-assets/internal/assets"
)

// Exit codes, one per top-level failure category.
const (
	exitFetchFailed   = 1
	exitConfigInvalid = 2
	exitArchiveFailed = 3
)

func main() {
	err := NewRootCmd().Execute()
	if err == nil {
		return
	}

	_, _ = fmt.Fprintln(os.Stderr, err)

	os.Exit(exitCode(err))
}

func exitCode(err error) int {
	var cfgErr *assets.ConfigError
	if errors.As(err, &cfgErr) {
		return exitConfigInvalid
	}

	var archErr *assets.ArchiveError
	if errors.As(err, &archErr) {
		return exitArchiveFailed
	}

	return exitFetchFailed
}
