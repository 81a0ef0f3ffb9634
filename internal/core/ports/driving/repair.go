package driving

import "context"

// RepairService rejoins broken rows of tab-delimited exports.
type RepairService interface {
	// Repair reconstructs the input and writes a comma-delimited copy.
	// A physical/logical mismatch in the written file is reported through
	// the result, not as an error.
	Repair(ctx context.Context, req RepairRequest) (*RepairResult, error)
}

// RepairRequest names the files of one repair.
type RepairRequest struct {
	InputPath  string
	OutputPath string
}

// RepairResult summarises a repair and its verification.
type RepairResult struct {
	InputPath  string
	OutputPath string

	// InputLines is the physical line count of the input.
	InputLines int

	// Merged counts orphaned ids joined with their continuation.
	Merged int

	// Rows and Columns describe the reconstructed table.
	Rows    int
	Columns int

	// PhysicalLines and LogicalRows are read back from the written file.
	PhysicalLines int
	LogicalRows   int
}

// Consistent reports whether every written row sits on one physical line.
func (r RepairResult) Consistent() bool {
	return r.PhysicalLines == r.LogicalRows
}
