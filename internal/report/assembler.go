// Package report assembles analysis results into the payload sent to
// the external analysis backend.
package report

import (
	"errors"

	"stacklens/internal/model"
)

// Assembly errors signal caller-contract violations, not runtime
// conditions to recover from.
var (
	ErrNilModel = errors.New("report: feature model is required")
	ErrNilFiles = errors.New("report: classified files are required")
)

// Assemble combines a feature model and classified files into a single
// AnalysisPayload. No business logic beyond structural composition:
// the payload stays valid and reusable whether or not transmission to
// the backend ever succeeds.
func Assemble(fm *model.FeatureModel, files []model.ClassifiedFile, rawTrace string) (*model.AnalysisPayload, error) {
	if fm == nil {
		return nil, ErrNilModel
	}
	if files == nil {
		return nil, ErrNilFiles
	}

	return &model.AnalysisPayload{
		FeatureModel:    fm,
		ClassifiedFiles: files,
		RawStackTrace:   rawTrace,
	}, nil
}
