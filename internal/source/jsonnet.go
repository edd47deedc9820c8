package source

import (
	"context"

	"github.com/google/go-jsonnet"

	"github.com/AndreyAkinshin/regexoracle/internal/ctxlog"
	"github.com/AndreyAkinshin/regexoracle/internal/errors"
	"github.com/AndreyAkinshin/regexoracle/internal/oracle"
)

// Jsonnet evaluates the test document in-process instead of spawning the
// jsonnet binary. Output and failures are reported exactly like Exec.
type Jsonnet struct {
	Path  string   // Defaults to DefaultInput
	JPath []string // Extra library search directories
}

// Load implements oracle.Loader.
func (s *Jsonnet) Load(ctx context.Context) (oracle.Document, error) {
	path := s.Path
	if path == "" {
		path = DefaultInput
	}
	if err := ctx.Err(); err != nil {
		return oracle.Document{}, errors.Process("jsonnet", err, err.Error())
	}

	ctxlog.FromContext(ctx).Debug("Evaluating jsonnet in-process", "path", path, "jpath", s.JPath)

	vm := jsonnet.MakeVM()
	vm.Importer(&jsonnet.FileImporter{JPaths: s.JPath})

	// The VM cannot be interrupted, so a cancelled load abandons it.
	type result struct {
		out string
		err error
	}
	done := make(chan result, 1)
	go func() {
		out, err := vm.EvaluateFile(path)
		done <- result{out, err}
	}()

	select {
	case <-ctx.Done():
		err := ctx.Err()
		return oracle.Document{}, errors.Process("jsonnet", err, err.Error())
	case r := <-done:
		if r.err != nil {
			return oracle.Document{}, errors.Process("jsonnet", r.err, r.err.Error())
		}
		return Decode([]byte(r.out))
	}
}
