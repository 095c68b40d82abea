package watch

import (
	"context"
	"sort"
	"time"
)

// Debounce groups events into batches of distinct paths. A batch is emitted
// once no accepted event has arrived for quiet. Events rejected by keep are
// ignored; a nil keep accepts everything. The returned channel is closed when
// ctx is done or events is closed, after flushing any pending batch.
func Debounce(ctx context.Context, events <-chan Event, quiet time.Duration, keep func(Event) bool) <-chan []string {
	out := make(chan []string)

	go func() {
		defer close(out)

		pending := make(map[string]struct{})
		var timer *time.Timer
		var fire <-chan time.Time
		defer func() {
			if timer != nil {
				timer.Stop()
			}
		}()

		flush := func() bool {
			if len(pending) == 0 {
				return true
			}
			batch := make([]string, 0, len(pending))
			for path := range pending {
				batch = append(batch, path)
			}
			sort.Strings(batch)
			pending = make(map[string]struct{})

			select {
			case out <- batch:
				return true
			case <-ctx.Done():
				return false
			}
		}

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-events:
				if !ok {
					flush()
					return
				}
				if keep != nil && !keep(ev) {
					continue
				}
				pending[ev.Path] = struct{}{}

				if timer == nil {
					timer = time.NewTimer(quiet)
				} else {
					if !timer.Stop() {
						select {
						case <-timer.C:
						default:
						}
					}
					timer.Reset(quiet)
				}
				fire = timer.C
			case <-fire:
				fire = nil
				if !flush() {
					return
				}
			}
		}
	}()

	return out
}
