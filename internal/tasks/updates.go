package tasks

import (
	"fmt"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	ReadPartition Phase = iota
	ExportPartition
	WriteManifest
)

func (p Phase) String() string {
	switch p {
	case ReadPartition:
		return "read_partition"
	case ExportPartition:
		return "export_partition"
	case WriteManifest:
		return "write_manifest"
	default:
		return ""
	}
}

func readingPartitionUpdate(step, total int, owner string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ReadPartition,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Reading: %s...", step, total, owner),
	}
}

func exportCompletedUpdate(step, total int, owner string, filesCount int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportPartition,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d files)", step, total, owner, filesCount),
	}
}

func exportFailedUpdate(step, total int, owner string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportPartition,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, owner, err),
	}
}

func manifestUpdate(path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteManifest,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Manifest written to %s", path),
		Data:    path,
	}
}
