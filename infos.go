package main

import (
	"errors"
	"fmt"
	"io"
	"runtime"

	"golang.org/x/sync/errgroup"

	"sidplay/psid"
)

// infosMain parses all files concurrently and prints their infos in the
// order they were given. Files that fail to parse are reported and the
// returned error joins all failures.
func infosMain(paths []string, w io.Writer) error {
	hdrs := make([]*psid.Header, len(paths))
	errs := make([]error, len(paths))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		g.Go(func() error {
			hdrs[i], errs[i] = psid.Open(path)
			return nil
		})
	}
	g.Wait()

	for i, path := range paths {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s:\n", path)
		if errs[i] != nil {
			fmt.Fprintf(w, "Error     : %v\n", errs[i])
			errs[i] = fmt.Errorf("%s: %w", path, errs[i])
			continue
		}
		hdrs[i].PrintInfos(w)
	}
	return errors.Join(errs...)
}
