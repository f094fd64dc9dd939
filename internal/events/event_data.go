package events

// EventType identifies a class of events on the bus.
type EventType string

const (
	AnalysisCompleted EventType = "analysis_complete"
	AnalysisFailed    EventType = "analysis_failed"
	BackupCompleted   EventType = "backup_complete"
)

// EventData is the interface that all event data types must implement.
// This allows for type-safe event data while maintaining flexibility.
type EventData interface {
	// EventType returns the event type this data is associated with
	EventType() EventType
}

// AnalysisCompletedData contains data for AnalysisCompleted events.
type AnalysisCompletedData struct {
	Symbol        string  `json:"symbol"`
	Environmental float64 `json:"environmental"`
	Social        float64 `json:"social"`
	Governance    float64 `json:"governance"`
	Overall       float64 `json:"overall"`
	RiskRating    string  `json:"risk_rating"`
	Articles      int     `json:"articles"`
}

// EventType returns the event type for AnalysisCompletedData
func (d *AnalysisCompletedData) EventType() EventType {
	return AnalysisCompleted
}

// AnalysisFailedData contains data for AnalysisFailed events.
type AnalysisFailedData struct {
	Symbol string `json:"symbol"`
	Reason string `json:"reason"`
}

// EventType returns the event type for AnalysisFailedData
func (d *AnalysisFailedData) EventType() EventType {
	return AnalysisFailed
}

// BackupCompletedData contains data for BackupCompleted events.
type BackupCompletedData struct {
	Archive   string `json:"archive"`
	SizeBytes int64  `json:"size_bytes"`
}

// EventType returns the event type for BackupCompletedData
func (d *BackupCompletedData) EventType() EventType {
	return BackupCompleted
}
