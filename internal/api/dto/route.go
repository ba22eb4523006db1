package dto

type TargetRequest struct {
	System     string `json:"system"`
	Annotation string `json:"annotation"`
}

type RouteRequest struct {
	Start   string          `json:"start"`
	Targets []TargetRequest `json:"targets"`
}

type HopResponse struct {
	Step       int     `json:"step"`
	From       string  `json:"from"`
	To         string  `json:"to"`
	Annotation string  `json:"annotation"`
	DistanceLY float64 `json:"distance_ly"`
}

type RouteResponse struct {
	Start           string        `json:"start"`
	TotalTargets    int           `json:"total_targets"`
	IncludedSystems int           `json:"included_systems"`
	TotalDistanceLY float64       `json:"total_distance_ly"`
	Exhausted       bool          `json:"exhausted"`
	Discarded       []string      `json:"discarded"`
	Hops            []HopResponse `json:"hops"`
}
