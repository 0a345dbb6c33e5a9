package domain

// NodeType names the BPMN element kind of a flow node.
// It is the XML local name, e.g. "startEvent", "userTask", "exclusiveGateway".
type NodeType string

const (
	NodeTypeStartEvent        NodeType = "startEvent"
	NodeTypeEndEvent          NodeType = "endEvent"
	NodeTypeTask              NodeType = "task"
	NodeTypeUserTask          NodeType = "userTask"
	NodeTypeServiceTask       NodeType = "serviceTask"
	NodeTypeExclusiveGateway  NodeType = "exclusiveGateway"
	NodeTypeParallelGateway   NodeType = "parallelGateway"
	NodeTypeInclusiveGateway  NodeType = "inclusiveGateway"
	NodeTypeEventBasedGateway NodeType = "eventBasedGateway"
	NodeTypeSubProcess        NodeType = "subProcess"
)

// IsGateway reports whether the node type routes flow instead of doing work.
func (t NodeType) IsGateway() bool {
	switch t {
	case NodeTypeExclusiveGateway, NodeTypeParallelGateway, NodeTypeInclusiveGateway,
		NodeTypeEventBasedGateway, "complexGateway":
		return true
	}
	return false
}

// IsEvent reports whether the node type is a start, end, intermediate or boundary event.
func (t NodeType) IsEvent() bool {
	switch t {
	case NodeTypeStartEvent, NodeTypeEndEvent, "intermediateCatchEvent",
		"intermediateThrowEvent", "boundaryEvent":
		return true
	}
	return false
}

// Node is a flow node of a process definition.
type Node struct {
	ID   string   `json:"id" yaml:"id"`
	Name string   `json:"name,omitempty" yaml:"name,omitempty"`
	Type NodeType `json:"type" yaml:"type"`
}
