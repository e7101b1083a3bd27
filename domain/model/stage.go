package model

// Stage is a step of the playlist calculation pipeline
type Stage string

const (
	StageIdle             Stage = "Idle"
	StageValidating       Stage = "Validating"
	StageResolvingID      Stage = "ResolvingId"
	StageFetchingMetadata Stage = "FetchingMetadata"
	StagePaginating       Stage = "Paginating"
	StageAggregating      Stage = "Aggregating"
	StageDone             Stage = "Done"
	StageFailed           Stage = "Failed"
)

// Terminal reports whether no further transition can follow s
func (s Stage) Terminal() bool {
	return s == StageDone || s == StageFailed
}
