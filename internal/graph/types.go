package graph

import "fmt"

type NodeType string

const (
	TypeGene       NodeType = "gene"
	TypePathway    NodeType = "pathway"
	TypeMethod     NodeType = "method"
	TypeResearcher NodeType = "researcher"
	TypeHypothesis NodeType = "hypothesis"
)

func ParseNodeType(s string) (NodeType, error) {
	switch NodeType(s) {
	case TypeGene, TypePathway, TypeMethod, TypeResearcher, TypeHypothesis:
		return NodeType(s), nil
	}
	return "", fmt.Errorf("unknown node type: %q", s)
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func ParsePriority(s string) (Priority, error) {
	switch Priority(s) {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return Priority(s), nil
	}
	return "", fmt.Errorf("unknown priority: %q", s)
}

// Node is an entity in the knowledge graph. Positions are precomputed at
// dataset build time; nothing recalculates them at runtime.
type Node struct {
	ID          string   `json:"id"`
	Type        NodeType `json:"type"`
	Name        string   `json:"name"`
	X           float64  `json:"x"`
	Y           float64  `json:"y"`
	Connections int      `json:"connections"`
	Priority    Priority `json:"priority"`
}

// Edge is a directed, labeled relation between two nodes. Strength drives
// visual line weight only.
type Edge struct {
	Source   string  `json:"source"`
	Target   string  `json:"target"`
	Relation string  `json:"relation"`
	Strength float64 `json:"strength"`
}
