package placement

import (
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/manufosela/game-board/internal/domain"
)

func desc(pos, size, color string) domain.ChildDescriptor {
	return domain.ChildDescriptor{Pos: domain.StringPtr(pos), Size: domain.StringPtr(size), Color: color}
}

func grid(cols, rows int) domain.GridConfig {
	return domain.GridConfig{Columns: cols, Rows: rows}
}

func TestPlaceVerdicts(t *testing.T) {
	cases := []struct {
		name string
		cfg  domain.GridConfig
		d    domain.ChildDescriptor
		want domain.Reason
	}{
		{"full board", grid(12, 12), desc("1,1", "12,12", ""), domain.Accepted},
		{"span exceeds small grid", grid(3, 3), desc("1,1", "12,12", "red"), domain.ExtentOutOfBounds},
		{"negative origin", grid(12, 12), desc("-1,1", "2,2", ""), domain.NonPositive},
		{"origin past last column", grid(12, 12), desc("13,1", "1,1", ""), domain.OriginOutOfBounds},
		{"origin past last row", grid(12, 12), desc("1,13", "1,1", ""), domain.OriginOutOfBounds},
		{"zero width", grid(12, 12), desc("1,1", "0,1", ""), domain.NonPositive},
		{"word in pos", grid(12, 12), desc("a,1", "1,1", ""), domain.NonNumeric},
		{"word in size", grid(12, 12), desc("1,1", "1,b", ""), domain.NonNumeric},
		{"single component", grid(12, 12), desc("1", "1,1", ""), domain.NonNumeric},
		{"empty pos", grid(12, 12), desc("", "1,1", ""), domain.NonNumeric},
		{"extra components ignored", grid(12, 12), desc("2,2,9", "1,1,9", ""), domain.Accepted},
		{"last cell", grid(12, 12), desc("12,12", "1,1", ""), domain.Accepted},
		{"one past at edge", grid(12, 12), desc("11,1", "3,1", ""), domain.ExtentOutOfBounds},
		{"row extent", grid(5, 5), desc("1,4", "1,3", ""), domain.ExtentOutOfBounds},
		{"max int width", grid(12, 12), desc("1,1", "9223372036854775807,1", ""), domain.ExtentOutOfBounds},
		{"max int height", grid(12, 12), desc("3,3", "1,9223372036854775807", ""), domain.ExtentOutOfBounds},
		{"overflowing width", grid(12, 12), desc("1,1", "99999999999999999999,1", ""), domain.ExtentOutOfBounds},
		{"overflowing origin", grid(12, 12), desc("99999999999999999999,1", "1,1", ""), domain.OriginOutOfBounds},
		{"overflowing negative", grid(12, 12), desc("-99999999999999999999,1", "1,1", ""), domain.NonPositive},
		{"widest grid", grid(domain.MaxCells, domain.MaxCells), desc("2,2", "9223372036854775805,1", ""), domain.Accepted},
		{"widest grid one past", grid(domain.MaxCells, domain.MaxCells), desc("2,2", "9223372036854775806,1", ""), domain.ExtentOutOfBounds},
		{"missing pos", grid(12, 12), domain.ChildDescriptor{Size: domain.StringPtr("1,1")}, domain.MissingFields},
		{"missing size", grid(12, 12), domain.ChildDescriptor{Pos: domain.StringPtr("1,1")}, domain.MissingFields},
		{"missing both", grid(12, 12), domain.ChildDescriptor{Color: "red"}, domain.MissingFields},
	}
	e := New()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := e.Place(tc.cfg, tc.d)
			if got.Reason != tc.want {
				t.Fatalf("Place(%+v) reason = %v, want %v", tc.cfg, got.Reason, tc.want)
			}
			if diff := cmp.Diff(tc.d, got.Descriptor); diff != "" {
				t.Fatalf("descriptor not echoed (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPlaceFullBoardLines(t *testing.T) {
	got := New().Place(grid(12, 12), desc("1,1", "12,12", "red"))
	want := domain.Placement{ColStart: 1, ColEnd: 13, RowStart: 1, RowEnd: 13, Color: "red"}
	if diff := cmp.Diff(want, got.Placement); diff != "" {
		t.Fatalf("placement mismatch (-want +got):\n%s", diff)
	}
}

func TestPlaceWidestGridLines(t *testing.T) {
	got := New().Place(grid(domain.MaxCells, 3), desc("2,1", "9223372036854775805,3", ""))
	if !got.Accepted() {
		t.Fatalf("reason = %v, want Accepted", got.Reason)
	}
	if got.Placement.ColEnd != math.MaxInt || got.Placement.RowEnd != 4 {
		t.Fatalf("placement = %+v, want ColEnd=%d RowEnd=4", got.Placement, math.MaxInt)
	}
}

func TestPlaceRejectionHasNoLines(t *testing.T) {
	got := New().Place(grid(3, 3), desc("1,1", "12,12", "red"))
	if got.Placement != (domain.Placement{}) {
		t.Fatalf("rejected result carries placement %+v", got.Placement)
	}
}

func TestPlaceRoundTripAndContainment(t *testing.T) {
	e := New()
	for cols := 1; cols <= 6; cols++ {
		for rows := 1; rows <= 6; rows++ {
			cfg := grid(cols, rows)
			for x := 1; x <= 7; x++ {
				for w := 1; w <= 7; w++ {
					y, h := rows, 1
					d := desc(fmt.Sprintf("%d,%d", x, y), fmt.Sprintf("%d,%d", w, h), "")
					res := e.Place(cfg, d)
					fits := x <= cols && x+w-1 <= cols
					if res.Accepted() != fits {
						t.Fatalf("%dx%d pos=%d,%d size=%d,%d accepted=%v want %v (%v)",
							cols, rows, x, y, w, h, res.Accepted(), fits, res.Reason)
					}
					if !res.Accepted() {
						continue
					}
					p := res.Placement
					if p.ColEnd-p.ColStart != w || p.RowEnd-p.RowStart != h {
						t.Fatalf("span not preserved: %+v for size %d,%d", p, w, h)
					}
					if p.ColStart < 1 || p.ColEnd-1 > cols || p.RowStart < 1 || p.RowEnd-1 > rows {
						t.Fatalf("placement %+v escapes %dx%d grid", p, cols, rows)
					}
				}
			}
		}
	}
}

func TestPlaceDeterministic(t *testing.T) {
	e := New()
	cfg := grid(4, 4)
	d := desc("3,2", "2,3", "blue")
	first := e.Place(cfg, d)
	for i := 0; i < 20; i++ {
		if diff := cmp.Diff(first, e.Place(cfg, d)); diff != "" {
			t.Fatalf("pass %d differs (-first +got):\n%s", i, diff)
		}
	}
}

func TestCheckOrderIsolatesReasons(t *testing.T) {
	// Non-positive is reported before bounds even when the origin is also outside.
	if got := Check(grid(2, 2), Span{X: 5, Y: 1, Width: 0, Height: 1}); got != domain.NonPositive {
		t.Fatalf("Check = %v, want NonPositive", got)
	}
	if got := Check(grid(2, 2), Span{X: 3, Y: 1, Width: 9, Height: 1}); got != domain.OriginOutOfBounds {
		t.Fatalf("Check = %v, want OriginOutOfBounds", got)
	}
}
