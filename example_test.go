package bpmnpath_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/bpmnpath"
	"github.com/aretw0/bpmnpath/pkg/adapters/memory"
	"github.com/aretw0/bpmnpath/pkg/domain"
)

const orderProcess = `<?xml version="1.0" encoding="UTF-8"?>
<bpmn:definitions xmlns:bpmn="http://www.omg.org/spec/BPMN/20100524/MODEL" id="defs">
  <bpmn:process id="order" isExecutable="true">
    <bpmn:startEvent id="received" />
    <bpmn:userTask id="check" name="Check stock" />
    <bpmn:exclusiveGateway id="inStock" />
    <bpmn:serviceTask id="ship" name="Ship order" />
    <bpmn:userTask id="reorder" name="Reorder items" />
    <bpmn:endEvent id="done" />
    <bpmn:sequenceFlow id="f1" sourceRef="received" targetRef="check" />
    <bpmn:sequenceFlow id="f2" sourceRef="check" targetRef="inStock" />
    <bpmn:sequenceFlow id="f3" sourceRef="inStock" targetRef="ship" />
    <bpmn:sequenceFlow id="f4" sourceRef="inStock" targetRef="reorder" />
    <bpmn:sequenceFlow id="f5" sourceRef="reorder" targetRef="check" />
    <bpmn:sequenceFlow id="f6" sourceRef="ship" targetRef="done" />
  </bpmn:process>
</bpmn:definitions>`

// ExampleNew_memory searches a process held in memory.
// Any ports.DefinitionSource works the same way, e.g. the Camunda REST client.
func ExampleNew_memory() {
	engine, err := bpmnpath.New(
		bpmnpath.WithSource(memory.NewSource(map[string]string{"order": orderProcess})),
		bpmnpath.WithDefaultKey("order"),
	)
	if err != nil {
		log.Fatal(err)
	}

	path, err := engine.FindPath(context.Background(), "", domain.Query{Start: "reorder", End: "done"})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(path.Nodes, path.Hops())

	// Flows only run forward.
	back, _ := engine.FindPath(context.Background(), "", domain.Query{Start: "done", End: "received"})
	fmt.Println(back.Found())

	// Output:
	// [reorder check inStock ship done] 4
	// false
}
