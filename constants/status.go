package constants

// AnalysisStatus is the canonical status for an analysis run.
type AnalysisStatus string

// Stable values (serialized as-is in API responses).
const (
	AnalysisQueued   AnalysisStatus = "QUEUED"   // waiting to be processed
	AnalysisRunning  AnalysisStatus = "RUNNING"  // in progress
	AnalysisTextOK   AnalysisStatus = "TEXT_OK"  // stage 1 completed (text extracted)
	AnalysisComplete AnalysisStatus = "ANALYZED" // all stages completed
	AnalysisFailed   AnalysisStatus = "FAILED"   // terminal failure
)
