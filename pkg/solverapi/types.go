// Package solverapi defines the JSON wire contract between the envelope
// engine and a structural-solver sidecar. Both the bridge client and the
// localdev mock solver depend on these shapes.
package solverapi

// ElementsResponse lists every element id in the current model.
type ElementsResponse struct {
	ElementIDs []int `json:"element_ids"`
}

// NodeRequest asks for one node's coordinates.
type NodeRequest struct {
	NodeID int `json:"node_id"`
}

// NodeResponse carries real-valued coordinates in consistent length units.
type NodeResponse struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// ElementRequest addresses one element by id.
type ElementRequest struct {
	ElementID int `json:"element_id"`
}

// EndpointsResponse names an element's end nodes.
type EndpointsResponse struct {
	NodeI int `json:"node_i"`
	NodeJ int `json:"node_j"`
}

// ForcesResponse carries the twelve end-force scalars of an element. Fewer
// than twelve values is the insufficient-data signal.
type ForcesResponse struct {
	Forces []float64 `json:"forces"`
}

// SolveRequest applies a factored load set to the shared model and runs the
// static analysis. The solve overwrites the model's internal state.
type SolveRequest struct {
	Factors map[string]float64 `json:"factors"`
}

// SolveResponse reports the solver's own success/failure signal.
type SolveResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}
