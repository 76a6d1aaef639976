package command

import "context"

// Step is one entry of an externally translated assistant plan. The
// engine only interprets Command; Description and Explanation are
// opaque pass-through text for display.
type Step struct {
	Description string `json:"description"`
	Command     string `json:"command"`
	Explanation string `json:"explanation"`
}

// StepResult pairs a step with the output its command produced.
type StepResult struct {
	Step
	Output string `json:"output"`
}

// RunSteps executes a plan in order. Steps with blank commands are
// carried through with empty output instead of failing the plan.
func (i *Interpreter) RunSteps(ctx context.Context, steps []Step) []StepResult {
	results := make([]StepResult, 0, len(steps))

	for _, step := range steps {
		results = append(results, StepResult{
			Step:   step,
			Output: i.Execute(ctx, step.Command),
		})
	}

	return results
}
