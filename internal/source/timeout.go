package source

import (
	"context"
	"time"

	"github.com/AndreyAkinshin/regexoracle/internal/oracle"
)

// WithTimeout bounds every Load of l by d. A zero d returns l unchanged.
func WithTimeout(l oracle.Loader, d time.Duration) oracle.Loader {
	if d <= 0 {
		return l
	}
	return oracle.LoaderFunc(func(ctx context.Context) (oracle.Document, error) {
		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()
		return l.Load(ctx)
	})
}
