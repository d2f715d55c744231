package sim

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/san-kum/atom/internal/config"
)

// Ensemble traces several named configurations concurrently. Each run owns
// its scene and state, so nothing is shared between goroutines.
type Ensemble struct {
	names   []string
	configs []*config.Config
	log     *log.Logger
}

func NewEnsemble(logger *log.Logger) *Ensemble {
	return &Ensemble{log: logger}
}

func (e *Ensemble) Add(name string, cfg *config.Config) {
	e.names = append(e.names, name)
	e.configs = append(e.configs, cfg)
}

// Run returns results in the order configurations were added, or the first
// error by that order.
func (e *Ensemble) Run(ctx context.Context, rc Config) ([]*Result, error) {
	results := make([]*Result, len(e.configs))
	errs := make([]error, len(e.configs))

	var wg sync.WaitGroup
	for i := range e.configs {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			res, err := New(e.configs[idx], e.log).Run(ctx, rc)
			if res != nil {
				res.Name = e.names[idx]
			}
			results[idx], errs[idx] = res, err
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
