package projection

import "github.com/pstuifzand/placestree/internal/model"

// Property names shared by every row
const (
	propSessionStart    = "session-start"
	propSessionContinue = "session-continue"
	propSeparator       = "separator"
	propContainer       = "container"
	propQuery           = "query"
	propTagContainer    = "tagContainer"
	propLivemark        = "livemark"
)

// propertyCache belongs to one view. The title-cell properties of a node
// are computed once until the node changes.
type propertyCache struct {
	cells map[model.Node][]string
}

func newPropertyCache() *propertyCache {
	return &propertyCache{cells: make(map[model.Node][]string)}
}

func (c *propertyCache) forget(n model.Node) {
	delete(c.cells, n)
}

func (c *propertyCache) reset() {
	c.cells = make(map[model.Node][]string)
}

// RowProperties returns the style properties of a whole row
func (t *TreeView) RowProperties(row int) ([]string, error) {
	node, err := t.rows.At(row)
	if err != nil {
		return nil, err
	}
	var props []string
	if t.showSessions {
		switch ClassifySession(t.rows, row, true) {
		case SessionStart:
			props = append(props, propSessionStart)
		case SessionContinue:
			props = append(props, propSessionContinue)
		}
	}
	if node.Kind() == model.KindSeparator {
		props = append(props, propSeparator)
	}
	return props, nil
}

// CellProperties returns the style properties of one cell. Only the title
// cell carries node properties; they describe what kind of node the row is.
func (t *TreeView) CellProperties(row int, column ColumnType) ([]string, error) {
	node, err := t.rows.At(row)
	if err != nil {
		return nil, err
	}
	if column != ColumnTitle {
		return nil, nil
	}
	if props, ok := t.props.cells[node]; ok {
		return props, nil
	}

	props := []string{}
	if t.flatList && node.IsContainer() {
		props = append(props, propContainer)
	}
	details, _ := node.(model.Details)
	switch node.Kind() {
	case model.KindSeparator:
		props = append(props, propSeparator)
	case model.KindQuery:
		props = append(props, propQuery)
		if details != nil && details.TagContainer() {
			props = append(props, propTagContainer)
		}
	case model.KindFolder:
		if details != nil && details.Livemark() {
			props = append(props, propLivemark)
		}
	}
	t.props.cells[node] = props
	return props, nil
}
