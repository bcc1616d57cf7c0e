package schedule

import (
	"sort"
	"time"
)

// Block is a half-open time interval [Start, End).
type Block struct {
	Start time.Time
	End   time.Time
}

func (b Block) empty() bool { return !b.End.After(b.Start) }

// PublicBlock is a calendar interval as exposed to clients.
type PublicBlock struct {
	Start  time.Time
	End    time.Time
	Status string
}

const (
	StatusAvailable = "available"
	StatusOccupied  = "occupied"
)

// Merge collapses overlapping and adjacent intervals into a sorted,
// non-overlapping set. Empty intervals are dropped.
func Merge(blocks []Block) []Block {
	in := make([]Block, 0, len(blocks))
	for _, b := range blocks {
		if !b.empty() {
			in = append(in, b)
		}
	}
	if len(in) == 0 {
		return nil
	}
	sort.Slice(in, func(i, j int) bool { return in[i].Start.Before(in[j].Start) })

	out := []Block{in[0]}
	for _, b := range in[1:] {
		last := &out[len(out)-1]
		if !b.Start.After(last.End) {
			if b.End.After(last.End) {
				last.End = b.End
			}
			continue
		}
		out = append(out, b)
	}
	return out
}

// Subtract removes the busy intervals from each work interval. Both inputs
// may overlap internally; the result is sorted and non-overlapping.
func Subtract(work, busy []Block) []Block {
	work = Merge(work)
	busy = Merge(busy)

	var out []Block
	for _, w := range work {
		cur := w.Start
		for _, b := range busy {
			if !b.End.After(cur) || !b.Start.Before(w.End) {
				continue
			}
			if b.Start.After(cur) {
				out = append(out, Block{Start: cur, End: b.Start})
			}
			if b.End.After(cur) {
				cur = b.End
			}
		}
		if cur.Before(w.End) {
			out = append(out, Block{Start: cur, End: w.End})
		}
	}
	return out
}

// PublicAvailability computes a provider's public calendar from declared
// working blocks and occupied time (block-outs plus accepted appointments).
// The result is sorted by start and contains no overlapping intervals:
// available time is the working blocks minus occupied time, and occupied
// intervals are reported merged.
func PublicAvailability(work, busy []Block) []PublicBlock {
	free := Subtract(work, busy)
	occupied := Merge(busy)

	out := make([]PublicBlock, 0, len(free)+len(occupied))
	for _, b := range free {
		out = append(out, PublicBlock{Start: b.Start, End: b.End, Status: StatusAvailable})
	}
	for _, b := range occupied {
		out = append(out, PublicBlock{Start: b.Start, End: b.End, Status: StatusOccupied})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Start.Equal(out[j].Start) {
			return out[i].End.Before(out[j].End)
		}
		return out[i].Start.Before(out[j].Start)
	})
	return out
}
