package oracle

import (
	"context"
	"time"

	"github.com/AndreyAkinshin/regexoracle/internal/ctxlog"
)

// Aggregate packages records into a Summary.
func Aggregate(records []Record) Summary {
	if records == nil {
		records = []Record{}
	}
	failed := 0
	for _, r := range records {
		if !r.Pass {
			failed++
		}
	}
	return Summary{
		Cases:  records,
		Total:  len(records),
		Passed: len(records) - failed,
		Failed: failed,
	}
}

// LoadFailure is the summary for a run whose document could not be loaded.
func LoadFailure(err error, label string) Summary {
	if label == "" {
		label = DefaultLabel
	}
	return Aggregate([]Record{{
		Name: caseName("load blocks", label),
		Pass: false,
		Got:  Rejection(err.Error()),
		Want: true,
	}})
}

// Run loads the document and verifies every case in it. The summary is always
// complete: a load error becomes a single failing record and is also
// returned so callers can classify it.
func Run(ctx context.Context, loader Loader, v *Verifier) (Summary, error) {
	logger := ctxlog.FromContext(ctx)

	start := time.Now()
	doc, err := loader.Load(ctx)
	if err != nil {
		logger.Error("Loading test blocks failed", "error", err)
		return LoadFailure(err, v.Label()), err
	}
	logger.Debug("Loaded test blocks",
		"validate", len(doc.Validate),
		"match", len(doc.Match),
		"elapsed", time.Since(start))

	summary := Aggregate(v.Verify(doc))
	logger.Debug("Verified test blocks",
		"engine", v.Engine().Name(),
		"total", summary.Total,
		"passed", summary.Passed,
		"failed", summary.Failed)
	return summary, nil
}
