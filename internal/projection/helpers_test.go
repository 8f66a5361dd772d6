package projection

import (
	"testing"
	"time"

	"github.com/pstuifzand/placestree/internal/model"
	"github.com/stretchr/testify/require"
)

type hostEvent struct {
	kind string
	a, b int
}

type recordingHost struct {
	events     []hostEvent
	depth      int
	column     ColumnType
	descending bool
}

func (h *recordingHost) RowCountChanged(row, delta int) {
	h.events = append(h.events, hostEvent{"count", row, delta})
}

func (h *recordingHost) InvalidateRow(row int) {
	h.events = append(h.events, hostEvent{"row", row, row})
}

func (h *recordingHost) InvalidateRange(start, end int) {
	h.events = append(h.events, hostEvent{"range", start, end})
}

func (h *recordingHost) BeginUpdateBatch() { h.depth++ }
func (h *recordingHost) EndUpdateBatch() { h.depth-- }

func (h *recordingHost) SetSortIndicator(column ColumnType, descending bool) {
	h.column = column
	h.descending = descending
}

func (h *recordingHost) counts() []hostEvent {
	var out []hostEvent
	for _, e := range h.events {
		if e.kind == "count" {
			out = append(out, e)
		}
	}
	return out
}

func (h *recordingHost) reset() {
	h.events = nil
}

type memoryOpenState map[string]bool

func (m memoryOpenState) IsOpen(uri string) bool { return m[uri] }

func (m memoryOpenState) SetOpen(uri string, open bool) error {
	m[uri] = open
	return nil
}

var epoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func at(seconds int) time.Time {
	return epoch.Add(time.Duration(seconds) * time.Second)
}

func newTree(t *testing.T, root *model.Item, opts model.QueryOptions) *model.ResultTree {
	t.Helper()
	tree, err := model.NewResultTree(root, opts)
	require.NoError(t, err)
	return tree
}

// attach builds a view over tree with a recording host
func attach(t *testing.T, tree *model.ResultTree, opts ...Option) (*TreeView, *recordingHost) {
	t.Helper()
	tv, err := New(opts...)
	require.NoError(t, err)
	host := &recordingHost{}
	tv.SetHost(host)
	tv.SetResult(tree)
	require.Zero(t, host.depth, "unbalanced update batches")
	return tv, host
}

func titles(tv *TreeView) []string {
	var out []string
	for _, n := range tv.Rows() {
		out = append(out, n.Title())
	}
	return out
}

func folderWith(title string, children ...*model.Item) *model.Item {
	f := model.NewFolder(title, 0)
	for _, c := range children {
		f.AddChild(c)
	}
	return f
}

func leaf(title string) *model.Item {
	return model.NewURI("http://example.com/"+title, title, 0)
}
