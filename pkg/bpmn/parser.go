package bpmn

import (
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/bpmnpath/pkg/domain"
)

// flowNodeTypes are the BPMN elements that take part in sequence flows.
var flowNodeTypes = map[string]bool{
	"startEvent":             true,
	"endEvent":               true,
	"intermediateCatchEvent": true,
	"intermediateThrowEvent": true,
	"boundaryEvent":          true,
	"task":                   true,
	"userTask":               true,
	"serviceTask":            true,
	"scriptTask":             true,
	"sendTask":               true,
	"receiveTask":            true,
	"manualTask":             true,
	"businessRuleTask":       true,
	"callActivity":           true,
	"subProcess":             true,
	"transaction":            true,
	"adHocSubProcess":        true,
	"exclusiveGateway":       true,
	"inclusiveGateway":       true,
	"parallelGateway":        true,
	"eventBasedGateway":      true,
	"complexGateway":         true,
}

type sequenceFlow struct {
	ID                  string `xml:"id,attr"`
	Name                string `xml:"name,attr"`
	SourceRef           string `xml:"sourceRef,attr"`
	TargetRef           string `xml:"targetRef,attr"`
	ConditionExpression string `xml:"conditionExpression"`
}

// Parse reads a BPMN document and returns its flow graph.
// Errors wrap domain.ErrMalformedDefinition.
func Parse(r io.Reader) (*domain.Graph, error) {
	dec := xml.NewDecoder(r)
	g := &domain.Graph{}
	sawRoot := false

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrMalformedDefinition, err)
		}

		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		if !sawRoot {
			if se.Name.Local != "definitions" {
				return nil, fmt.Errorf("%w: root element is %q, want definitions", domain.ErrMalformedDefinition, se.Name.Local)
			}
			sawRoot = true
			continue
		}

		switch {
		case se.Name.Local == "process":
			if g.ProcessID == "" {
				g.ProcessID = attr(se, "id")
			}
		case se.Name.Local == "sequenceFlow":
			var flow sequenceFlow
			if err := dec.DecodeElement(&flow, &se); err != nil {
				return nil, fmt.Errorf("%w: sequence flow: %v", domain.ErrMalformedDefinition, err)
			}
			if flow.SourceRef == "" || flow.TargetRef == "" {
				return nil, fmt.Errorf("%w: sequence flow %q has no sourceRef or targetRef", domain.ErrMalformedDefinition, flow.ID)
			}
			g.Edges = append(g.Edges, domain.Edge{
				ID:        flow.ID,
				Source:    flow.SourceRef,
				Target:    flow.TargetRef,
				Name:      flow.Name,
				Condition: strings.TrimSpace(flow.ConditionExpression),
			})
		case flowNodeTypes[se.Name.Local]:
			g.Nodes = append(g.Nodes, domain.Node{
				ID:   attr(se, "id"),
				Name: attr(se, "name"),
				Type: domain.NodeType(se.Name.Local),
			})
		}
	}

	if !sawRoot {
		return nil, fmt.Errorf("%w: empty document", domain.ErrMalformedDefinition)
	}
	return g, nil
}

// ParseDefinition parses the XML carried by a definition envelope.
func ParseDefinition(def *domain.Definition) (*domain.Graph, error) {
	if def == nil || strings.TrimSpace(def.XML) == "" {
		return nil, fmt.Errorf("%w: definition has no bpmn20Xml", domain.ErrMalformedDefinition)
	}
	return Parse(strings.NewReader(def.XML))
}

// DecodeEnvelope decodes the JSON envelope {"id": ..., "bpmn20Xml": ...}
// returned by the Camunda REST API.
func DecodeEnvelope(r io.Reader) (*domain.Definition, error) {
	var def domain.Definition
	if err := json.NewDecoder(r).Decode(&def); err != nil {
		return nil, fmt.Errorf("%w: envelope: %v", domain.ErrMalformedDefinition, err)
	}
	if strings.TrimSpace(def.XML) == "" {
		return nil, fmt.Errorf("%w: envelope has no bpmn20Xml", domain.ErrMalformedDefinition)
	}
	return &def, nil
}

func attr(se xml.StartElement, name string) string {
	for _, a := range se.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}
