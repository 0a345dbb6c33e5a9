/*
Package bpmn builds a domain.Graph from a BPMN 2.0 XML document.

Only the structure relevant to path finding is extracted: flow nodes (events,
activities, gateways, sub-processes) and every sequence flow, including those
nested in sub-processes. Elements are matched by local name, so documents using
any namespace prefix (bpmn:, bpmn2:, or a default namespace) are accepted.
*/
package bpmn
