package classifier

import (
	"encoding/json"
	"fmt"
	"os"
)

// Node is one decision point in a tree. Leaf nodes carry the class label the
// tree votes for; interior nodes route on a feature/threshold comparison.
type Node struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Leaf      bool    `json:"leaf"`
	Label     int     `json:"label"`
}

// Tree is a flat node array; node 0 is the root.
type Tree struct {
	Nodes []Node `json:"nodes"`
}

// Model is a serialized random forest. The label domain is whatever the
// model was trained with (-1/1 or 0/1); the verdict mapper resolves it.
type Model struct {
	FeatureCount int    `json:"feature_count"`
	Trees        []Tree `json:"trees"`
}

// LoadModel reads a JSON forest from disk and validates its shape.
func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read model file: %w", err)
	}

	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("could not decode model file %s: %w", path, err)
	}
	if len(m.Trees) == 0 {
		return nil, fmt.Errorf("model file %s contains no trees", path)
	}
	for i, tree := range m.Trees {
		if len(tree.Nodes) == 0 {
			return nil, fmt.Errorf("model tree %d is empty", i)
		}
	}
	return &m, nil
}

// vote walks one tree to its leaf for the given sample.
func (t *Tree) vote(sample []float64) int {
	idx := 0
	for {
		node := t.Nodes[idx]
		if node.Leaf {
			return node.Label
		}
		if node.Feature >= 0 && node.Feature < len(sample) && sample[node.Feature] <= node.Threshold {
			idx = node.Left
		} else {
			idx = node.Right
		}
	}
}

// predict returns the majority label across all trees. Majority voting
// works for any label domain, which keeps the forest agnostic to how the
// training side encoded its classes.
func (m *Model) predict(sample []float64) int {
	votes := make(map[int]int)
	for i := range m.Trees {
		votes[m.Trees[i].vote(sample)]++
	}

	best, bestCount := 0, -1
	for label, count := range votes {
		if count > bestCount || (count == bestCount && label > best) {
			best, bestCount = label, count
		}
	}
	return best
}
