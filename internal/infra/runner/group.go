package runner

import (
	"context"
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"
)

// Service is a long-running part of the process.
type Service interface {
	Name() string
	Run(context.Context) error
}

// Group runs services side by side. The first failure cancels the rest;
// a service that returns nil does not.
type Group []Service

// Run blocks until ctx is cancelled or a service fails, waits for every
// service to return and joins their errors.
func (g Group) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	runCtx, cancelFn := context.WithCancel(ctx)
	defer cancelFn()

	var wg sync.WaitGroup
	errCh := make(chan error, len(g))
	wg.Add(len(g))
	for _, s := range g {
		go func(s Service) {
			defer wg.Done()
			defer func() {
				if rec := recover(); rec != nil {
					errCh <- fmt.Errorf("%s: panic: %v", s.Name(), rec)
					cancelFn()
				}
			}()
			if err := s.Run(runCtx); err != nil {
				errCh <- fmt.Errorf("%s: %w", s.Name(), err)
				cancelFn()
			}
		}(s)
	}

	<-runCtx.Done()
	wg.Wait()

	var err error
	close(errCh)
	for srvErr := range errCh {
		err = multierror.Append(err, srvErr)
	}
	return err
}
