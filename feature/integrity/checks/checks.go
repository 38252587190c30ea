package checks

import "nuscenes-devkit/core/nusc"

// Check inspects a loaded dataset.
type Check func(t *nusc.Tables) Result

// All lists the checks in the order they are reported.
func All() []Check {
	return []Check{SceneChains, InstanceChains, SampleDataChains, References, Duplicates}
}

// Run executes every check against t.
func Run(t *nusc.Tables) []Result {
	checks := All()
	out := make([]Result, 0, len(checks))
	for _, check := range checks {
		out = append(out, check(t))
	}
	return out
}
