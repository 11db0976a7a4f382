package tagging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

func TestPlan_Defaults(t *testing.T) {
	p := NewPlanner(100, 1000)

	filter, page := p.Plan(DatasetQuery{})

	assert.Empty(t, filter.DatasetType)
	assert.Nil(t, filter.TagMatch)
	assert.Equal(t, 100, page.Limit, "zero limit must fall back to the default, never unbounded")
	assert.Equal(t, 0, page.Offset)
}

func TestPlan_TagNamesProduceElementMatch(t *testing.T) {
	p := NewPlanner(100, 1000)

	filter, _ := p.Plan(DatasetQuery{TagNames: []string{"peaks", "rings"}})

	require.NotNil(t, filter.TagMatch)
	assert.Equal(t, []string{"peaks", "rings"}, filter.TagMatch.Names)
	assert.Nil(t, filter.TagMatch.ConfidenceMin)
	assert.Nil(t, filter.TagMatch.ConfidenceMax)
}

func TestPlan_BoundsWithoutNames(t *testing.T) {
	p := NewPlanner(100, 1000)

	filter, _ := p.Plan(DatasetQuery{ConfidenceMin: floatPtr(0.5)})

	require.NotNil(t, filter.TagMatch, "bounds alone still filter across all tags")
	assert.Empty(t, filter.TagMatch.Names)
	assert.Equal(t, 0.5, *filter.TagMatch.ConfidenceMin)
}

func TestPlan_InvertedBoundsPassThrough(t *testing.T) {
	p := NewPlanner(100, 1000)

	// min > max is a valid empty query, not an error
	filter, _ := p.Plan(DatasetQuery{
		TagNames:      []string{"peaks"},
		ConfidenceMin: floatPtr(0.9),
		ConfidenceMax: floatPtr(0.1),
	})

	require.NotNil(t, filter.TagMatch)
	assert.Equal(t, 0.9, *filter.TagMatch.ConfidenceMin)
	assert.Equal(t, 0.1, *filter.TagMatch.ConfidenceMax)
}

func TestPlan_PageClamping(t *testing.T) {
	p := NewPlanner(100, 1000)

	_, page := p.Plan(DatasetQuery{Limit: 5000, Offset: -3})
	assert.Equal(t, 1000, page.Limit)
	assert.Equal(t, 0, page.Offset)

	_, page = p.Plan(DatasetQuery{Limit: 25, Offset: 50})
	assert.Equal(t, 25, page.Limit)
	assert.Equal(t, 50, page.Offset)
}

func TestNewPlanner_BadBounds(t *testing.T) {
	p := NewPlanner(0, 0)
	assert.Equal(t, 100, p.DefaultLimit)
	assert.Equal(t, 1000, p.MaxLimit)

	p = NewPlanner(500, 200)
	assert.Equal(t, 200, p.DefaultLimit, "default is capped by max")
}

func TestTagMatch_Matches(t *testing.T) {
	tag := Tag{Name: "peaks", Confidence: 0.8, EventID: "ev-1"}

	tests := []struct {
		name  string
		match TagMatch
		want  bool
	}{
		{"empty match accepts any tag", TagMatch{}, true},
		{"name in set", TagMatch{Names: []string{"rings", "peaks"}}, true},
		{"name not in set", TagMatch{Names: []string{"rings"}}, false},
		{"within bounds", TagMatch{ConfidenceMin: floatPtr(0.5), ConfidenceMax: floatPtr(0.9)}, true},
		{"below floor", TagMatch{ConfidenceMin: floatPtr(0.9)}, false},
		{"above ceiling", TagMatch{ConfidenceMax: floatPtr(0.5)}, false},
		{"boundary is inclusive", TagMatch{ConfidenceMin: floatPtr(0.8), ConfidenceMax: floatPtr(0.8)}, true},
		{"inverted bounds match nothing", TagMatch{ConfidenceMin: floatPtr(0.9), ConfidenceMax: floatPtr(0.1)}, false},
		{"name and bounds must hold together", TagMatch{Names: []string{"peaks"}, ConfidenceMin: floatPtr(0.9)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.match.Matches(&tag))
		})
	}
}
