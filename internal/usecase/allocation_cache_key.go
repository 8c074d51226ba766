package usecase

import "github.com/google/uuid"

const (
	allocationStudentKeyPrefix = "allocation:student:"
	allocationCurrentRunKey    = "allocation:current_run"
	allocationLockKey          = "allocation:lock"
)

// AllocationStudentCacheKey scopes a cached read to the run that produced
// it, so entries written for an older run are never served once a newer
// run is current.
func AllocationStudentCacheKey(runID, studentID uuid.UUID) string {
	return allocationStudentKeyPrefix + runID.String() + ":" + studentID.String()
}

func AllocationStudentCachePattern() string {
	return allocationStudentKeyPrefix + "*"
}
