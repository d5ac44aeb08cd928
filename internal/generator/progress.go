package generator

// Progress checkpoints, in percent.
const (
	ProgressStart    = 5
	ProgressFetched  = 20
	ProgressRendered = 90
	ProgressDone     = 100

	renderSpan  = ProgressRendered - ProgressFetched
	reportEvery = 50
)

// ProgressFunc receives a percentage. Calls are batched and never decrease.
type ProgressFunc func(pct int)

type tracker struct {
	fn   ProgressFunc
	last int
}

func newTracker(fn ProgressFunc) *tracker {
	return &tracker{fn: fn, last: -1}
}

func (t *tracker) report(pct int) {
	if pct > ProgressDone {
		pct = ProgressDone
	}
	if t.fn == nil || pct <= t.last {
		return
	}
	t.last = pct
	t.fn(pct)
}

// file reports rendering progress after processed of total files, once
// every reportEvery files.
func (t *tracker) file(processed, total int) {
	if total == 0 || processed%reportEvery != 0 {
		return
	}
	t.report(ProgressFetched + processed*renderSpan/total)
}
