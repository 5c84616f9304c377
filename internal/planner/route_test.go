package planner

import (
	"errors"
	"fmt"
	"testing"

	"github.com/mini-rodalies-3d/metroplanner/internal/network"
)

func TestOutwardIndices(t *testing.T) {
	tests := []struct {
		flags string // circular:oneway
		count int
		entry int
		want  []int
	}{
		{"0:0", 5, 1, []int{2, 0, 3, 4}},
		{"0:0", 5, 4, []int{3, 2, 1, 0}},
		{"0:0", 5, 0, []int{1, 2, 3, 4}},
		{"1:0", 5, 0, []int{1, 4, 2, 3}},
		{"1:0", 4, 2, []int{3, 1, 0}},
		{"0:1", 4, 1, []int{2, 3}},
		{"1:1", 4, 2, []int{3, 0, 1}},
		{"1:0", 1, 0, nil},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/n=%d/entry=%d", tt.flags, tt.count, tt.entry), func(t *testing.T) {
			l := makeLine(t, tt.flags, tt.count)
			got := outwardIndices(l, tt.entry)
			if fmt.Sprint(got) != fmt.Sprint(tt.want) {
				t.Errorf("outwardIndices = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOrientation(t *testing.T) {
	tests := []struct {
		name         string
		flags        string
		count        int
		f, t         int
		wantTerminal string // "A" or "B"
		wantCircular bool
		wantHops     int
	}{
		{"linear forward", "0:0", 5, 1, 3, "B", false, 2},
		{"linear backward", "0:0", 5, 3, 1, "A", false, 2},
		{"one-way forward", "0:1", 5, 1, 3, "B", false, 2},
		{"one-way circular wrap", "1:1", 5, 3, 1, "B", true, 3},
		{"ring direct", "1:0", 6, 1, 3, "B", false, 2},
		{"ring direct backward", "1:0", 6, 3, 1, "A", false, 2},
		{"ring wrap ahead", "1:0", 6, 0, 5, "A", true, 1},
		{"ring wrap behind", "1:0", 6, 5, 0, "B", true, 1},
		{"ring tie keeps direct", "1:0", 6, 0, 3, "B", false, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := makeLine(t, tt.flags, tt.count)
			terminal, circular := orientation(l, tt.f, tt.t)
			want := l.TerminalA()
			if tt.wantTerminal == "B" {
				want = l.TerminalB()
			}
			if terminal != want || circular != tt.wantCircular {
				t.Errorf("orientation = %s/%v, want %s/%v", terminal.Code(), circular, want.Code(), tt.wantCircular)
			}
			if h := hops(l, tt.f, tt.t, circular); h != tt.wantHops {
				t.Errorf("hops = %d, want %d", h, tt.wantHops)
			}
		})
	}
}

func TestRouteAdd(t *testing.T) {
	l := makeLine(t, "0:0", 3)
	a, b, c := stopAt(l, 0), stopAt(l, 1), stopAt(l, 2)

	r := NewRoute()
	if !r.IsEmpty() || r.Transfers() != 0 || r.String() != "" {
		t.Fatal("new route should be empty")
	}
	if r.CanAdd(nil) {
		t.Error("nil segment should not be addable")
	}
	if err := r.Add(nil); !errors.Is(err, ErrNilSegment) {
		t.Errorf("expected ErrNilSegment, got %v", err)
	}

	first, err := NewSegment(l, a, b, c)
	if err != nil {
		t.Fatalf("NewSegment: %v", err)
	}
	if err := r.Add(first); err != nil {
		t.Fatalf("Add: %v", err)
	}
	same, _ := NewSegment(l, a, b, c)
	if err := r.Add(same); !errors.Is(err, ErrDuplicateSegment) {
		t.Errorf("expected ErrDuplicateSegment, got %v", err)
	}
	same.SetCircular(true)
	if !r.CanAdd(same) {
		t.Error("segments differing in circular flag should both be addable")
	}

	second, _ := NewSegment(l, b, c, c)
	if err := r.Add(second); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if r.Len() != 2 || r.Transfers() != 1 || r.Stops() != 2 {
		t.Errorf("len=%d transfers=%d stops=%d", r.Len(), r.Transfers(), r.Stops())
	}
	want := "Take L from s0 to s1, direction s2\nTake L from s1 to s2, direction s2"
	if r.String() != want {
		t.Errorf("String() = %q, want %q", r.String(), want)
	}
}

func TestSegmentSetters(t *testing.T) {
	l := makeLine(t, "0:0", 2)
	a, b := stopAt(l, 0), stopAt(l, 1)

	if _, err := NewSegment(nil, a, b, b); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("NewSegment with nil line: got %v", err)
	}
	s, _ := NewSegment(l, a, b, b)
	for name, err := range map[string]error{
		"line":      s.SetLine(nil),
		"from":      s.SetFrom(nil),
		"to":        s.SetTo(nil),
		"direction": s.SetDirection(nil),
	} {
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("Set%s(nil): expected ErrInvalidArgument, got %v", name, err)
		}
	}
	if s.Line() != l || s.From() != a || s.To() != b {
		t.Error("rejected setters must not change the segment")
	}
	if err := s.SetTo(a); err != nil || s.To() != a {
		t.Errorf("SetTo: %v", err)
	}
}

// makeLine builds a line s0..s(n-1) with flags "circular:oneway"
func makeLine(t *testing.T, flags string, count int) *network.Line {
	t.Helper()
	l, err := network.NewLine("L", flags[0] == '1', flags[2] == '1')
	if err != nil {
		t.Fatalf("NewLine: %v", err)
	}
	for i := 0; i < count; i++ {
		code := fmt.Sprintf("s%d", i)
		s, err := network.NewStation(code, code)
		if err != nil {
			t.Fatalf("NewStation: %v", err)
		}
		if err := l.Add(s); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	return l
}
