/*
Package bpmnpath finds a path between two flow nodes of a BPMN process definition.

It fetches a process definition from a source (a Camunda engine REST API, a
directory of .bpmn files, or memory), extracts its sequence flows, and runs a
breadth-first search from the end node back to the start node. The path is
reported head-to-tail and uses the fewest sequence flows possible.

# Concept

A process definition is a directed graph: events, activities and gateways are
nodes, sequence flows are edges. bpmnpath treats the definition as read-only
data. The Engine loads it through a DefinitionSource, optionally keeps it in a
DefinitionCache, and answers Queries. "No path" is a normal answer (a Path
with no nodes), never an error; errors mean the definition could not be loaded
or the query was malformed.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/bpmnpath"
		"github.com/aretw0/bpmnpath/pkg/adapters/camunda"
		"github.com/aretw0/bpmnpath/pkg/domain"
	)

	func main() {
		eng, err := bpmnpath.New(
			bpmnpath.WithSource(camunda.New("http://localhost:8080/engine-rest")),
		)
		if err != nil {
			log.Fatal(err)
		}

		path, err := eng.FindPath(context.Background(), "invoice", domain.Query{
			Start: "approveInvoice",
			End:   "invoiceProcessed",
		})
		if err != nil {
			log.Fatal(err)
		}

		if !path.Found() {
			fmt.Println("Path not found")
			return
		}
		fmt.Println(path)
	}
*/
package bpmnpath
