package manager

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/boxlayout/pkg/box"
	"github.com/matzehuels/boxlayout/pkg/errors"
	"github.com/matzehuels/boxlayout/pkg/geom"
)

// fixture builds a root of the given size with one child per options value.
func fixture(t *testing.T, parent geom.Size, sizes []geom.Size, opts []box.Options) (*box.Box, []Entry) {
	t.Helper()
	a := box.NewArena()
	root, _ := a.Get(a.NewRoot(parent))
	entries := make([]Entry, len(sizes))
	for i, s := range sizes {
		id, err := a.New(root.ID(), s)
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		b, _ := a.Get(id)
		entries[i] = Entry{ID: id, Box: b, Options: opts[i]}
	}
	return root, entries
}

// place runs one placement pass and returns the new outer rectangles.
func place(t *testing.T, m Manager, inner geom.Rect) ([]geom.Rect, geom.Rect) {
	t.Helper()
	var out []geom.Rect
	for _, e := range m.Entries() {
		r, err := m.Update(e.Box.OuterRect(), &inner, e)
		if err != nil {
			t.Fatalf("Update(%d) error = %v", e.ID, err)
		}
		out = append(out, r)
	}
	return out, inner
}

func outerSize(e Entry) (geom.Size, error) { return e.Box.OuterRect().Size(), nil }

func TestPackLeft(t *testing.T) {
	left := PackOptions{Side: geom.SideLeft, Fill: geom.FillY}
	root, entries := fixture(t,
		geom.Size{W: 100, H: 50},
		[]geom.Size{{W: 10, H: 5}, {W: 20, H: 5}, {W: 30, H: 5}},
		[]box.Options{left, left, left},
	)
	m, err := New(box.Pack, root, entries)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	got, inner := place(t, m, root.InnerRect())
	want := []geom.Rect{geom.R(0, 0, 10, 50), geom.R(10, 0, 20, 50), geom.R(30, 0, 30, 50)}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("child %d outer = %v, want %v", i, got[i], want[i])
		}
	}
	if want := geom.R(60, 0, 40, 50); inner != want {
		t.Errorf("remaining inner = %v, want %v", inner, want)
	}
}

func TestPackSides(t *testing.T) {
	tests := []struct {
		side      geom.Side
		want      geom.Rect
		wantInner geom.Rect
	}{
		{geom.SideLeft, geom.R(0, 45, 10, 10), geom.R(10, 0, 90, 100)},
		{geom.SideRight, geom.R(90, 45, 10, 10), geom.R(0, 0, 90, 100)},
		{geom.SideTop, geom.R(45, 0, 10, 10), geom.R(0, 10, 100, 90)},
		{geom.SideBottom, geom.R(45, 90, 10, 10), geom.R(0, 0, 100, 90)},
	}

	for _, tt := range tests {
		t.Run(string(tt.side), func(t *testing.T) {
			root, entries := fixture(t,
				geom.Size{W: 100, H: 100},
				[]geom.Size{{W: 10, H: 10}},
				[]box.Options{PackOptions{Side: tt.side}},
			)
			m, err := New(box.Pack, root, entries)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			got, inner := place(t, m, root.InnerRect())
			if got[0] != tt.want {
				t.Errorf("outer = %v, want %v", got[0], tt.want)
			}
			if inner != tt.wantInner {
				t.Errorf("inner = %v, want %v", inner, tt.wantInner)
			}
		})
	}
}

func TestPackEstimate(t *testing.T) {
	root, entries := fixture(t,
		geom.Size{},
		[]geom.Size{{W: 10, H: 5}, {W: 20, H: 8}, {W: 30, H: 4}},
		[]box.Options{
			PackOptions{Side: geom.SideLeft},
			PackOptions{Side: geom.SideLeft},
			PackOptions{Side: geom.SideTop},
		},
	)
	m, err := New(box.Pack, root, entries)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	got, err := m.Estimate(outerSize)
	if err != nil {
		t.Fatalf("Estimate() error = %v", err)
	}
	if want := (geom.Size{W: 60, H: 8}); got != want {
		t.Errorf("Estimate() = %v, want %v", got, want)
	}
}

func TestPackPadding(t *testing.T) {
	root, entries := fixture(t,
		geom.Size{W: 100, H: 100},
		[]geom.Size{{W: 10, H: 10}},
		[]box.Options{PackOptions{Side: geom.SideLeft, Padding: Padding{PadX: []int{3}, PadY: []int{1, 2}}}},
	)
	if _, err := New(box.Pack, root, entries); err != nil {
		t.Fatalf("New() error = %v", err)
	}
	got := entries[0].Box.Outpad()
	if want := (geom.Pad{Left: 3, Right: 3, Top: 1, Bottom: 2}); got != want {
		t.Errorf("outpad = %v, want %v", got, want)
	}
	if w := entries[0].Box.OuterRect().W; w != 16 {
		t.Errorf("outer width = %d, want 16", w)
	}
}

func TestGridSpan(t *testing.T) {
	root, entries := fixture(t,
		geom.Size{W: 200, H: 200},
		[]geom.Size{{W: 40, H: 10}, {W: 10, H: 10}, {W: 15, H: 10}},
		[]box.Options{
			GridOptions{Column: 0, Row: 0, ColumnSpan: 2, Fill: geom.FillBoth},
			GridOptions{Column: 0, Row: 1, Fill: geom.FillBoth},
			GridOptions{Column: 1, Row: 1, Fill: geom.FillBoth},
		},
	)
	m, err := New(box.Grid, root, entries)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	g := m.(*gridManager)
	if cols := g.Columns(); cols[0] != 20 || cols[1] != 20 {
		t.Errorf("columns = %v, want both 20", cols)
	}

	got, inner := place(t, m, root.InnerRect())
	want := []geom.Rect{geom.R(0, 0, 40, 10), geom.R(0, 10, 20, 10), geom.R(20, 10, 20, 10)}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("child %d outer = %v, want %v", i, got[i], want[i])
		}
	}
	if inner != root.InnerRect() {
		t.Errorf("grid changed inner to %v", inner)
	}

	size, err := m.Estimate(outerSize)
	if err != nil {
		t.Fatalf("Estimate() error = %v", err)
	}
	if want := (geom.Size{W: 40, H: 20}); size != want {
		t.Errorf("Estimate() = %v, want %v", size, want)
	}
}

func TestGridOddSpanTruncates(t *testing.T) {
	root, entries := fixture(t,
		geom.Size{W: 200, H: 200},
		[]geom.Size{{W: 41, H: 11}, {W: 10, H: 10}, {W: 15, H: 10}},
		[]box.Options{
			GridOptions{Column: 0, Row: 0, ColumnSpan: 2, Fill: geom.FillBoth},
			GridOptions{Column: 0, Row: 1, Fill: geom.FillBoth},
			GridOptions{Column: 1, Row: 1, Fill: geom.FillBoth},
		},
	)
	m, err := New(box.Grid, root, entries)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	g := m.(*gridManager)
	if diff := cmp.Diff(map[int]int{0: 20, 1: 20}, g.Columns()); diff != "" {
		t.Errorf("columns mismatch (-want +got):\n%s", diff)
	}

	got, _ := place(t, m, root.InnerRect())
	want := []geom.Rect{geom.R(0, 0, 40, 11), geom.R(0, 11, 20, 10), geom.R(20, 11, 20, 10)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("outer rects mismatch (-want +got):\n%s", diff)
	}

	size, err := m.Estimate(outerSize)
	if err != nil {
		t.Fatalf("Estimate() error = %v", err)
	}
	if want := (geom.Size{W: 40, H: 21}); size != want {
		t.Errorf("Estimate() = %v, want %v", size, want)
	}
}

func TestGridSparseIndices(t *testing.T) {
	root, entries := fixture(t,
		geom.Size{W: 200, H: 200},
		[]geom.Size{{W: 10, H: 10}, {W: 30, H: 10}},
		[]box.Options{
			GridOptions{Column: 0, Anchor: geom.TopLeft},
			GridOptions{Column: 5, Anchor: geom.TopLeft},
		},
	)
	m, err := New(box.Grid, root, entries)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	got, _ := place(t, m, root.InnerRect())
	if got[1].X != 10 {
		t.Errorf("column 5 x = %d, want 10 (missing columns are empty)", got[1].X)
	}
}

func TestPlaceRelative(t *testing.T) {
	tests := []struct {
		name   string
		parent geom.Size
		opts   PlaceOptions
		want   geom.Rect
	}{
		{
			name:   "relwidth rounds half up",
			parent: geom.Size{W: 101, H: 100},
			opts:   PlaceOptions{X: Int(0), Y: Int(0), RelWidth: 0.5, Anchor: geom.TopLeft},
			want:   geom.R(0, 0, 51, 10),
		},
		{
			name:   "relx centered",
			parent: geom.Size{W: 100, H: 100},
			opts:   PlaceOptions{RelX: Float(0.5), RelY: Float(0.5)},
			want:   geom.R(45, 45, 10, 10),
		},
		{
			name:   "absolute size wins",
			parent: geom.Size{W: 100, H: 100},
			opts:   PlaceOptions{X: Int(5), Y: Int(5), Width: 30, RelWidth: 0.9, Height: 20, Anchor: geom.TopLeft},
			want:   geom.R(5, 5, 30, 20),
		},
		{
			name:   "x of zero is valid",
			parent: geom.Size{W: 100, H: 100},
			opts:   PlaceOptions{X: Int(0), RelY: Float(1), Anchor: geom.BottomLeft},
			want:   geom.R(0, 90, 10, 10),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, entries := fixture(t, tt.parent, []geom.Size{{W: 10, H: 10}}, []box.Options{tt.opts})
			m, err := New(box.Place, root, entries)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			got, _ := place(t, m, root.InnerRect())
			if got[0] != tt.want {
				t.Errorf("outer = %v, want %v", got[0], tt.want)
			}
		})
	}
}

func TestPlaceEstimateIsParentSize(t *testing.T) {
	root, entries := fixture(t,
		geom.Size{W: 70, H: 30},
		[]geom.Size{{W: 500, H: 500}},
		[]box.Options{PlaceOptions{X: Int(0), Y: Int(0)}},
	)
	m, err := New(box.Place, root, entries)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	calls := 0
	got, err := m.Estimate(func(e Entry) (geom.Size, error) {
		calls++
		return e.Box.OuterRect().Size(), nil
	})
	if err != nil {
		t.Fatalf("Estimate() error = %v", err)
	}
	if got != (geom.Size{W: 70, H: 30}) || calls != 1 {
		t.Errorf("Estimate() = %v after %d child calls, want 70x30 after 1", got, calls)
	}
}

func TestAdjustFillBothEqualsOccupied(t *testing.T) {
	occ := geom.R(10, 20, 60, 40)
	for _, a := range []geom.Anchor{geom.TopLeft, geom.Center, geom.BottomRight, geom.MidTop} {
		if got := Adjust(geom.R(0, 0, 5, 5), occ, a, geom.FillBoth); got != occ {
			t.Errorf("Adjust(anchor %s, fill both) = %v, want %v", a, got, occ)
		}
	}
	got := Adjust(geom.R(0, 0, 5, 5), occ, geom.TopRight, geom.FillX)
	if want := geom.R(10, 20, 60, 5); got != want {
		t.Errorf("Adjust(topright, fill x) = %v, want %v", got, want)
	}
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name string
		kind box.Kind
		opts box.Options
	}{
		{"place without x", box.Place, PlaceOptions{Y: Int(0)}},
		{"place without y", box.Place, PlaceOptions{RelX: Float(0.2)}},
		{"unknown side", box.Pack, PackOptions{Side: "middle"}},
		{"unknown anchor", box.Grid, GridOptions{Anchor: "north"}},
		{"negative span", box.Grid, GridOptions{ColumnSpan: -1}},
		{"bad pad length", box.Pack, PackOptions{Padding: Padding{PadX: []int{1, 2, 3}}}},
		{"negative pad", box.Pack, PackOptions{Padding: Padding{PadY: []int{-1}}}},
		{"options of another kind", box.Pack, GridOptions{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, entries := fixture(t, geom.Size{W: 10, H: 10}, []geom.Size{{}}, []box.Options{tt.opts})
			_, err := New(tt.kind, root, entries)
			if !errors.IsConfiguration(err) {
				t.Errorf("New() error = %v, want CONFIGURATION", err)
			}
		})
	}
}

func TestResolveDefaults(t *testing.T) {
	got, err := Resolve(box.Grid, GridOptions{Column: 2, Anchor: "left"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	g := got.(GridOptions)
	if g.ColumnSpan != 1 || g.RowSpan != 1 || g.Anchor != geom.MidLeft || g.Fill != geom.FillNone {
		t.Errorf("Resolve() = %+v", g)
	}

	p, err := Resolve(box.Pack, nil)
	if err != nil {
		t.Fatalf("Resolve(nil) error = %v", err)
	}
	if diff := cmp.Diff(DefaultPackOptions(), p); diff != "" {
		t.Errorf("Resolve(nil) mismatch (-want +got):\n%s", diff)
	}

	nilPointers := []struct {
		kind box.Kind
		opts box.Options
		want box.Options
	}{
		{box.Pack, (*PackOptions)(nil), DefaultPackOptions()},
		{box.Grid, (*GridOptions)(nil), DefaultGridOptions()},
		{box.Place, (*PlaceOptions)(nil), DefaultPlaceOptions()},
	}
	for _, tt := range nilPointers {
		got, err := Resolve(tt.kind, tt.opts)
		if err != nil {
			t.Fatalf("Resolve(%s, nil pointer) error = %v", tt.kind, err)
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Resolve(%s, nil pointer) mismatch (-want +got):\n%s", tt.kind, diff)
		}
	}
}
