package styleguide

import (
	"styleguide/internal/analyzer"
	"styleguide/internal/enrichment"
	"styleguide/internal/guidelines"
)

// Sentinel errors callers can match with errors.Is.
var (
	ErrEmptyInput            = analyzer.ErrEmptyInput
	ErrUnknownAnalysisType   = analyzer.ErrUnknownAnalysisType
	ErrUnknownCategory       = guidelines.ErrUnknownCategory
	ErrEnrichmentUnavailable = enrichment.ErrEnrichmentUnavailable
	ErrEmptyQuery            = enrichment.ErrEmptyQuery
)
