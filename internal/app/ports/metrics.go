package ports

import "voidwake/internal/domain/ship"

type SimMetrics interface {
	RecordDay(verdict ship.Verdict)
	RecordTurn(tool string, success bool)
	RecordDegradedDecision()
	RecordSaveConflict()
}
