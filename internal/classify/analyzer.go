package classify

import (
	"go.uber.org/zap"

	"trajlens/internal/audit"
	"trajlens/internal/instance"
	"trajlens/internal/trajectory"
)

// Analyzer runs the classifiers against instances resolved on disk and
// records every result in the audit logs. Each call resolves and loads
// the trajectory afresh; there is no caching between calls.
type Analyzer struct {
	resolver *instance.Resolver
	audit    *audit.Writer
	logger   *zap.Logger
}

// NewAnalyzer wires an Analyzer. A nil audit writer disables audit
// logging; a nil logger is replaced with a no-op.
func NewAnalyzer(resolver *instance.Resolver, auditWriter *audit.Writer, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{resolver: resolver, audit: auditWriter, logger: logger}
}

// Steps resolves and loads the full step sequence for an instance.
func (a *Analyzer) Steps(instanceID string) ([]trajectory.Step, error) {
	path, err := a.resolver.TrajectoryPath(instanceID)
	if err != nil {
		return nil, err
	}
	return trajectory.Load(path)
}

// ReproductionSteps returns the 1-based indices of steps creating
// reproduction or test code, logging the result to the reproduction
// audit log.
func (a *Analyzer) ReproductionSteps(instanceID string) (StepIndices, error) {
	steps, err := a.Steps(instanceID)
	if err != nil {
		return nil, err
	}
	result := Reproduction(steps)
	a.record(audit.ReproductionLog, instanceID, result.String())
	return result, nil
}

// SearchSteps returns the 1-based indices of search/navigation steps,
// logging the result to the search audit log.
func (a *Analyzer) SearchSteps(instanceID string) (StepIndices, error) {
	steps, err := a.Steps(instanceID)
	if err != nil {
		return nil, err
	}
	result := Search(steps)
	a.record(audit.SearchLog, instanceID, result.String())
	return result, nil
}

// ToolUsage returns the per-tool invocation counts, logging the result to
// the tool-use audit log.
func (a *Analyzer) ToolUsage(instanceID string) (ToolCounts, error) {
	steps, err := a.Steps(instanceID)
	if err != nil {
		return nil, err
	}
	result := CountTools(steps)
	a.record(audit.ToolUseLog, instanceID, result.String())
	return result, nil
}

// record appends an audit line. Failures are logged and swallowed: the
// result has already been computed and must still reach the caller.
func (a *Analyzer) record(logName, instanceID, result string) {
	if a.audit == nil {
		return
	}
	if err := a.audit.Append(logName, instanceID, result); err != nil {
		a.logger.Warn("failed to write audit log",
			zap.String("log", logName),
			zap.String("instance", instanceID),
			zap.Error(err))
	}
}
