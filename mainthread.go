package lichen

import "context"

// runMain is the main-thread loop: it owns script execution, content
// mutation, and the layout pipeline. Each iteration drains one task, so
// stop checks interleave with work; with nothing queued it sleeps one
// tick rather than spinning.
//
// Within one animation frame the ordering is fixed by runAnimationFrame:
// callbacks, then sizing of all dirty roots, then global positioning,
// then display-list construction, then commit. A mutation arriving while
// a frame runs is queued behind it and shows up next frame.
func (b *Browser) runMain(ctx context.Context) error {
	for {
		if b.stopping(ctx) {
			return nil
		}
		if task, ok := b.mainQueue.Next(); ok {
			b.runTask("main", task)
			continue
		}
		b.sleep(ctx)
	}
}
