package domain

import "fmt"

// NodeBudget counts the nodes a full tree of width and depth holds, plus the final hop.
// Saturates at ceiling+1 so large inputs cannot overflow.
func NodeBudget(width, depth, ceiling int) int {
	total, level := 0, 1
	for d := 0; d <= depth; d++ {
		total += level
		if total > ceiling {
			return ceiling + 1
		}
		level *= width
	}
	return total + 1
}

type BuildSpec struct {
	Width    int
	Depth    int
	MaxNodes int
}

func (s BuildSpec) Budget() int {
	return NodeBudget(s.Width, s.Depth, s.MaxNodes)
}

func (s BuildSpec) Validate() error {
	if s.Width < 1 {
		return fmt.Errorf("width must be at least 1, got %d", s.Width)
	}
	if s.Depth < 0 {
		return fmt.Errorf("depth must not be negative, got %d", s.Depth)
	}
	if s.MaxNodes < 1 {
		return fmt.Errorf("node ceiling must be positive, got %d", s.MaxNodes)
	}
	return nil
}

// WithinBudget reports false when the configuration implies more nodes than the ceiling.
func (s BuildSpec) WithinBudget() bool {
	return s.Budget() <= s.MaxNodes
}
