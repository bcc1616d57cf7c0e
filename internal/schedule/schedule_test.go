package schedule

import (
	"testing"
	"time"
)

var base = time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)

func at(minutes int) time.Time { return base.Add(time.Duration(minutes) * time.Minute) }

func block(startMin, endMin int) Block {
	return Block{Start: at(startMin), End: at(endMin)}
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name string
		in   []Block
		want []Block
	}{
		{"empty", nil, nil},
		{"single", []Block{block(0, 60)}, []Block{block(0, 60)}},
		{"overlapping", []Block{block(0, 60), block(30, 90)}, []Block{block(0, 90)}},
		{"adjacent", []Block{block(0, 60), block(60, 120)}, []Block{block(0, 120)}},
		{"disjoint", []Block{block(120, 180), block(0, 60)}, []Block{block(0, 60), block(120, 180)}},
		{"contained", []Block{block(0, 120), block(30, 60)}, []Block{block(0, 120)}},
		{"empty interval dropped", []Block{block(60, 60), block(0, 30)}, []Block{block(0, 30)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.in)
			assertBlocks(t, got, tt.want)
		})
	}
}

func TestSubtract(t *testing.T) {
	tests := []struct {
		name string
		work []Block
		busy []Block
		want []Block
	}{
		{"no busy", []Block{block(0, 120)}, nil, []Block{block(0, 120)}},
		{"middle hole", []Block{block(0, 120)}, []Block{block(30, 60)}, []Block{block(0, 30), block(60, 120)}},
		{"busy covers all", []Block{block(0, 60)}, []Block{block(0, 60)}, nil},
		{"busy overlaps head", []Block{block(30, 120)}, []Block{block(0, 60)}, []Block{block(60, 120)}},
		{"busy overlaps tail", []Block{block(0, 90)}, []Block{block(60, 120)}, []Block{block(0, 60)}},
		{"busy outside work", []Block{block(0, 60)}, []Block{block(120, 180)}, []Block{block(0, 60)}},
		{
			"two work blocks one busy",
			[]Block{block(0, 60), block(120, 240)},
			[]Block{block(150, 180)},
			[]Block{block(0, 60), block(120, 150), block(180, 240)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Subtract(tt.work, tt.busy)
			assertBlocks(t, got, tt.want)
		})
	}
}

func TestPublicAvailability(t *testing.T) {
	work := []Block{block(0, 240)}
	busy := []Block{block(60, 120), block(90, 150)} // overlapping, must come out merged

	got := PublicAvailability(work, busy)

	want := []PublicBlock{
		{Start: at(0), End: at(60), Status: StatusAvailable},
		{Start: at(60), End: at(150), Status: StatusOccupied},
		{Start: at(150), End: at(240), Status: StatusAvailable},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d blocks, got %d: %+v", len(want), len(got), got)
	}
	for i := range want {
		if !got[i].Start.Equal(want[i].Start) || !got[i].End.Equal(want[i].End) || got[i].Status != want[i].Status {
			t.Errorf("block %d: got %+v, want %+v", i, got[i], want[i])
		}
	}

	// no two blocks of the same status overlap, and available never
	// intersects occupied
	for i := range got {
		for j := i + 1; j < len(got); j++ {
			if got[i].End.After(got[j].Start) {
				t.Errorf("blocks %d and %d overlap: %+v %+v", i, j, got[i], got[j])
			}
		}
	}
}

// One accepted appointment [T, T+60) and nothing else: exactly that interval
// is reported occupied.
func TestPublicAvailabilitySingleAppointment(t *testing.T) {
	busy := []Block{block(0, 60)}

	got := PublicAvailability(nil, busy)
	if len(got) != 1 {
		t.Fatalf("expected 1 block, got %d: %+v", len(got), got)
	}
	if got[0].Status != StatusOccupied {
		t.Errorf("expected occupied, got %s", got[0].Status)
	}
	if !got[0].Start.Equal(at(0)) || !got[0].End.Equal(at(60)) {
		t.Errorf("wrong interval: %+v", got[0])
	}
}

func assertBlocks(t *testing.T, got, want []Block) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d blocks, got %d: %+v", len(want), len(got), got)
	}
	for i := range want {
		if !got[i].Start.Equal(want[i].Start) || !got[i].End.Equal(want[i].End) {
			t.Errorf("block %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}
