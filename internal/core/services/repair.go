package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/storycsv/internal/core/domain"
	"github.com/custodia-labs/storycsv/internal/core/ports/driven"
	"github.com/custodia-labs/storycsv/internal/core/ports/driving"
	"github.com/custodia-labs/storycsv/internal/logger"
	"github.com/custodia-labs/storycsv/internal/rowrepair"
)

// Ensure RepairService implements the interface.
var _ driving.RepairService = (*RepairService)(nil)

// RepairService rejoins rows split by unescaped line breaks.
type RepairService struct {
	codec driven.TableCodec
}

// NewRepairService creates a new repair service.
func NewRepairService(codec driven.TableCodec) *RepairService {
	return &RepairService{codec: codec}
}

// Repair reconstructs the input lines, parses them as tab-delimited rows,
// writes them comma-delimited and reads the output back to verify that
// each row occupies exactly one physical line.
func (s *RepairService) Repair(ctx context.Context, req driving.RepairRequest) (*driving.RepairResult, error) {
	if s.codec == nil {
		return nil, domain.ErrNotImplemented
	}
	if req.InputPath == "" || req.OutputPath == "" {
		return nil, fmt.Errorf("input and output paths are required: %w", domain.ErrInvalidInput)
	}

	defer logger.Track("repair " + req.InputPath)()

	lines, err := s.codec.ReadLines(ctx, req.InputPath)
	if err != nil {
		return nil, err
	}

	repaired := rowrepair.Reconstruct(lines)
	logger.Debug("repair: %d lines in, %d lines out, %d merged",
		len(lines), len(repaired.Lines), repaired.Merged)

	table, err := s.codec.Decode(strings.NewReader(strings.Join(repaired.Lines, "\n")), domain.TabDialect)
	if err != nil {
		return nil, fmt.Errorf("parsing reconstructed %s: %w", req.InputPath, err)
	}
	if table.Empty() {
		return nil, fmt.Errorf("%s: %w", req.InputPath, domain.ErrEmptyFile)
	}

	normalised := table.Normalised()
	if err := s.codec.WriteFile(ctx, req.OutputPath, normalised, domain.SpreadsheetDialect); err != nil {
		return nil, err
	}

	physical, err := s.codec.ReadLines(ctx, req.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("verifying: %w", err)
	}
	written, err := s.codec.ReadFile(ctx, req.OutputPath, domain.SpreadsheetDialect)
	if err != nil {
		return nil, fmt.Errorf("verifying: %w", err)
	}

	result := &driving.RepairResult{
		InputPath:     req.InputPath,
		OutputPath:    req.OutputPath,
		InputLines:    len(lines),
		Merged:        repaired.Merged,
		Rows:          len(normalised.Rows),
		Columns:       normalised.Width(),
		PhysicalLines: len(physical),
		LogicalRows:   len(written.Rows),
	}
	if !result.Consistent() {
		logger.Warn("repair: %s has %d physical lines for %d rows",
			req.OutputPath, result.PhysicalLines, result.LogicalRows)
	}
	return result, nil
}
