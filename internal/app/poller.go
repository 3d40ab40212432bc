package app

import (
	"context"
	"log"
	"time"

	"github.com/five82/opentrivia/internal/opentdb"
	"github.com/five82/opentrivia/internal/state"
)

const (
	defaultPollInterval = 30 * time.Second
	maxBackoff          = 5 * time.Minute
)

// PollOptions configure a headless polling loop.
type PollOptions struct {
	Interval time.Duration
	Count    int // stop after this many fetches; zero polls until cancelled
	Query    func() opentdb.Query
	OnUpdate func(state.Snapshot)
}

// Poll fetches questions at a fixed cadence, backing off while fetches fail,
// and reports every outcome through OnUpdate. It returns when the context is
// cancelled or Count fetches have run.
func Poll(ctx context.Context, store *state.Store, fetcher opentdb.Fetcher, opts PollOptions) error {
	interval := opts.Interval
	if interval <= 0 {
		interval = defaultPollInterval
	}

	for n := 1; ; n++ {
		var query opentdb.Query
		if opts.Query != nil {
			query = opts.Query()
		}
		pollOnce(ctx, store, fetcher, query)

		snap := store.Snapshot()
		if opts.OnUpdate != nil {
			opts.OnUpdate(snap)
		}
		if opts.Count > 0 && n >= opts.Count {
			return nil
		}

		wait := calculateBackoff(snap.ConsecutiveFailures, interval)
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
		}
	}
}

func pollOnce(ctx context.Context, store *state.Store, fetcher opentdb.Fetcher, query opentdb.Query) {
	store.BeginLoading()
	query.RequestID = store.StartFetch()

	resp, err := fetcher.FetchQuestions(ctx, query)
	if err != nil {
		store.FailFetch(query.RequestID, opentdb.Reason(err))
		log.Printf("poll %s failed: %v", query.RequestID, err)
		return
	}
	if resp.ResponseCode != 0 {
		log.Printf("poll %s response_code=%d (%s)", query.RequestID, resp.ResponseCode, opentdb.ResponseCodeText(resp.ResponseCode))
	}
	store.CompleteFetch(query.RequestID, resp.Results)
}

// calculateBackoff doubles the interval per consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	wait := base
	for i := 0; i < failures; i++ {
		wait *= 2
		if wait >= maxBackoff {
			return maxBackoff
		}
	}
	return wait
}
