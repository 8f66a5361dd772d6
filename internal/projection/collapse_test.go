package projection

import (
	"testing"

	"github.com/pstuifzand/placestree/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestCanCollapse(t *testing.T) {
	early := model.NewVisit("http://a", "a", at(100), 1)
	late := model.NewVisit("http://a", "a", at(200), 1)
	other := model.NewVisit("http://b", "b", at(150), 1)
	page := model.NewURI("http://a", "a", 3)

	tests := []struct {
		name            string
		a, b            model.Node
		enabled         bool
		wantCollapsible bool
		wantShowFirst   bool
	}{
		{"earlier first", early, late, true, true, true},
		{"later first", late, early, true, true, false},
		{"disabled", early, late, false, false, false},
		{"different uri", early, other, true, false, false},
		{"not a visit", page, late, true, false, false},
		{"missing node", early, nil, true, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			collapsible, showFirst := CanCollapse(tt.a, tt.b, tt.enabled)
			assert.Equal(t, tt.wantCollapsible, collapsible)
			assert.Equal(t, tt.wantShowFirst, showFirst)
		})
	}
}
