package domain

// Definition is a deployed process definition as served by Camunda's
// "process-definition/key/{key}/xml" resource.
type Definition struct {
	ID string `json:"id"`

	// Key is the process definition key it was fetched by. It is not part of the
	// Camunda envelope and is filled by the source.
	Key string `json:"key,omitempty"`

	XML string `json:"bpmn20Xml"`
}
