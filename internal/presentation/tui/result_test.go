package tui_test

import (
	"bytes"
	"testing"

	"github.com/aretw0/bpmnpath/internal/presentation/tui"
	"github.com/aretw0/bpmnpath/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestFormatResult(t *testing.T) {
	tests := []struct {
		name string
		path *domain.Path
		want string
	}{
		{
			name: "found",
			path: &domain.Path{Start: "A", End: "C", Nodes: []string{"A", "B", "C"}},
			want: "The path from A to C is: [A, B, C]",
		},
		{
			name: "same node",
			path: &domain.Path{Start: "A", End: "A", Nodes: []string{"A"}},
			want: "The path from A to A is: [A]",
		},
		{
			name: "not found",
			path: &domain.Path{Start: "A", End: "Z"},
			want: tui.MsgNotFound,
		},
		{
			name: "nil",
			want: tui.MsgNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tui.FormatResult(tt.path))
		})
	}
}

func TestFormatReport(t *testing.T) {
	g := &domain.Graph{Nodes: []domain.Node{
		{ID: "A", Name: "Begin", Type: domain.NodeTypeStartEvent},
		{ID: "B", Type: domain.NodeTypeUserTask},
	}}

	t.Run("found", func(t *testing.T) {
		out := tui.FormatReport(&domain.Path{Start: "A", End: "B", Nodes: []string{"A", "B"}}, g)
		assert.Contains(t, out, "**1 hops**")
		assert.Contains(t, out, "1. `A` Begin _(startEvent)_")
		assert.Contains(t, out, "2. `B` _(userTask)_")
	})

	t.Run("not found", func(t *testing.T) {
		out := tui.FormatReport(&domain.Path{Start: "B", End: "A"}, g)
		assert.Contains(t, out, tui.MsgNotFound)
		assert.NotContains(t, out, "hops")
	})
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf)
	assert.Contains(t, buf.String(), "|_|")
}
