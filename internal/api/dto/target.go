package dto

type TargetResponse struct {
	System     string `json:"system"`
	Annotation string `json:"annotation"`
}

type ListTargetsResponse struct {
	Targets []TargetResponse `json:"targets"`
}
