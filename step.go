package explorer

import "context"

// StepKind is the exit condition of one DFSExplorer/BFSExplorer step
// call, per spec §6.
type StepKind int

const (
	StepContinue StepKind = iota
	StepBacktracked
	StepPaused
	StepFinished
)

func (k StepKind) String() string {
	switch k {
	case StepContinue:
		return "continue"
	case StepBacktracked:
		return "backtracked"
	case StepPaused:
		return "paused"
	case StepFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// StepResult is returned by every Step call; Detail is a human-readable
// description as required by §6/§7 ("paused carries the reason").
type StepResult struct {
	Kind   StepKind
	Detail string
}

// continueStep, backtrackedStep and finishedStep log their detail via
// Infof as routine step progress; pausedStep logs through Warnf instead
// since a pause carries a failure (a describer/actuator error, or the
// graph failing to start in dfs.go/bfs.go), not routine progress.
func continueStep(detail string) StepResult {
	Infof("step: %s", detail)
	return StepResult{Kind: StepContinue, Detail: detail}
}

func pausedStep(detail string) StepResult {
	Warnf("step paused: %s", detail)
	return StepResult{Kind: StepPaused, Detail: detail}
}

func finishedStep(detail string) StepResult {
	Infof("step: %s", detail)
	return StepResult{Kind: StepFinished, Detail: detail}
}

func backtrackedStep(detail string) StepResult {
	Infof("step: %s", detail)
	return StepResult{Kind: StepBacktracked, Detail: detail}
}

// frameContext is convenience scaffolding shared by DFSExplorer and
// BFSExplorer for plumbing a background context into Describer/
// InputActuator calls when the caller doesn't provide one.
func frameContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
