package manager

import (
	"sort"

	"github.com/matzehuels/boxlayout/pkg/box"
	"github.com/matzehuels/boxlayout/pkg/geom"
)

// track collects, per column or row index, the share of each child's
// extent that falls into that index. A track's size is the largest share.
type track map[int][]int

func (t track) add(index, span, extent int) {
	share := extent / span
	for i := 0; i < span; i++ {
		t[index+i] = append(t[index+i], share)
	}
}

func (t track) size(index int) int {
	m := 0
	for _, v := range t[index] {
		m = max(m, v)
	}
	return m
}

// offset sums the sizes of all populated indices before index.
func (t track) offset(index int) int {
	sum := 0
	for k := range t {
		if k < index {
			sum += t.size(k)
		}
	}
	return sum
}

// span sums the sizes of index..index+n-1.
func (t track) span(index, n int) int {
	sum := 0
	for i := 0; i < n; i++ {
		sum += t.size(index + i)
	}
	return sum
}

func (t track) total() int {
	sum := 0
	for k := range t {
		sum += t.size(k)
	}
	return sum
}

// indices returns the populated indices in ascending order.
func (t track) indices() []int {
	out := make([]int, 0, len(t))
	for k := range t {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

// gridManager arranges children in columns and rows. Column widths and row
// heights are the maximum per-index share of the children occupying them.
type gridManager struct {
	entries    []Entry
	cols, rows track
}

func newGridManager(entries []Entry) *gridManager {
	m := &gridManager{entries: entries}
	m.cols, m.rows = buildTracks(entries, func(e Entry) (geom.Size, error) {
		return e.Box.OuterRect().Size(), nil
	})
	return m
}

func buildTracks(entries []Entry, size SizeFunc) (cols, rows track) {
	cols, rows = track{}, track{}
	for _, e := range entries {
		s, err := size(e)
		if err != nil {
			continue
		}
		opts := e.Options.(GridOptions)
		cols.add(opts.Column, opts.ColumnSpan, s.W)
		rows.add(opts.Row, opts.RowSpan, s.H)
	}
	return cols, rows
}

func (m *gridManager) Kind() box.Kind   { return box.Grid }
func (m *gridManager) Entries() []Entry { return m.entries }

// Columns returns the column widths keyed by column index.
func (m *gridManager) Columns() map[int]int { return sizes(m.cols) }

// Rows returns the row heights keyed by row index.
func (m *gridManager) Rows() map[int]int { return sizes(m.rows) }

func sizes(t track) map[int]int {
	out := make(map[int]int, len(t))
	for _, k := range t.indices() {
		out[k] = t.size(k)
	}
	return out
}

func (m *gridManager) Update(outer geom.Rect, inner *geom.Rect, e Entry) (geom.Rect, error) {
	opts := e.Options.(GridOptions)
	occ := geom.R(
		inner.X+m.cols.offset(opts.Column),
		inner.Y+m.rows.offset(opts.Row),
		m.cols.span(opts.Column, opts.ColumnSpan),
		m.rows.span(opts.Row, opts.RowSpan),
	)
	return Adjust(outer, occ, opts.Anchor, opts.Fill), nil
}

// Estimate rebuilds the tracks from estimated child sizes; the placement
// tables built from the children's current rectangles are left untouched.
func (m *gridManager) Estimate(size SizeFunc) (geom.Size, error) {
	var firstErr error
	cols, rows := buildTracks(m.entries, func(e Entry) (geom.Size, error) {
		s, err := size(e)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		return s, err
	})
	if firstErr != nil {
		return geom.Size{}, firstErr
	}
	return geom.Size{W: cols.total(), H: rows.total()}, nil
}
