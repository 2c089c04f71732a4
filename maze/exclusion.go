package maze

import "fmt"

// ExclusionPolicy selects which root moves the walker refuses.
type ExclusionPolicy uint8

const (
	// ExclusionNone only applies the grid bounds check.
	ExclusionNone ExclusionPolicy = iota
	// ExclusionViewDistance refuses to move the root within view distance of the observer.
	ExclusionViewDistance
)

// ParseExclusionPolicy maps a config name to a policy.
func ParseExclusionPolicy(name string) (ExclusionPolicy, error) {
	switch name {
	case "", "none":
		return ExclusionNone, nil
	case "view_distance":
		return ExclusionViewDistance, nil
	}
	return ExclusionNone, fmt.Errorf("unknown exclusion policy %q", name)
}

func (p ExclusionPolicy) String() string {
	if p == ExclusionViewDistance {
		return "view_distance"
	}
	return "none"
}

// ObserverExclusion rejects nodes whose centre lies within viewDistance of observer.
func ObserverExclusion(grid *Grid, observer Vec2, viewDistance float32) Exclusion {
	limitSq := viewDistance * viewDistance
	return func(candidate NodeID) bool {
		return grid.Node(candidate).Position.Sub(observer).LenSq() <= limitSq
	}
}
