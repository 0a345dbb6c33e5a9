package domain_test

import (
	"testing"

	"github.com/aretw0/bpmnpath/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestQueryValidate(t *testing.T) {
	tests := []struct {
		name    string
		query   domain.Query
		wantErr bool
	}{
		{"both present", domain.Query{Start: "a", End: "b"}, false},
		{"same node", domain.Query{Start: "a", End: "a"}, false},
		{"missing start", domain.Query{End: "b"}, true},
		{"missing end", domain.Query{Start: "a"}, true},
		{"blank start", domain.Query{Start: "  ", End: "b"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.query.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidQuery)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPath(t *testing.T) {
	found := domain.Path{Start: "a", End: "c", Nodes: []string{"a", "b", "c"}}
	assert.True(t, found.Found())
	assert.Equal(t, 2, found.Hops())
	assert.Equal(t, "[a, b, c]", found.String())

	missing := domain.Path{Start: "a", End: "z"}
	assert.False(t, missing.Found())
	assert.Equal(t, -1, missing.Hops())
}

func TestEdgeSetIncoming(t *testing.T) {
	edges := domain.NewEdgeSet("a", "c", "b", "c", "c", "d")

	idx := edges.Incoming()
	assert.Equal(t, []string{"a", "b"}, idx["c"])
	assert.Equal(t, []string{"c"}, idx["d"])
	assert.Empty(t, idx["a"])

	assert.True(t, edges.Has("a", "c"))
	assert.False(t, edges.Has("c", "a"))
}

func TestNodeType(t *testing.T) {
	assert.True(t, domain.NodeTypeExclusiveGateway.IsGateway())
	assert.False(t, domain.NodeTypeUserTask.IsGateway())
	assert.True(t, domain.NodeTypeStartEvent.IsEvent())
	assert.False(t, domain.NodeTypeSubProcess.IsEvent())
}
