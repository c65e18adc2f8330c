package services

import (
	"fmt"

	"timecard-report/internal/models"
	"timecard-report/internal/utils"
)

// ReportFormatter renders a period report into a downloadable artifact.
// Implementations read the report and never modify it.
type ReportFormatter interface {
	Format() models.ExportFormat
	ContentType() string
	Render(report *models.PeriodReport, meta models.ExportMeta) ([]byte, error)
}

// RenderArtifact runs a formatter and names the result
// relatorio-ponto-<start>-<end>.<ext>
func RenderArtifact(formatter ReportFormatter, report *models.PeriodReport, meta models.ExportMeta) (*models.Artifact, error) {
	data, err := formatter.Render(report, meta)
	if err != nil {
		return nil, fmt.Errorf("failed to render %s export: %w", formatter.Format(), err)
	}
	return &models.Artifact{
		Filename:    utils.ExportFilename(meta.StartDate, meta.EndDate, string(formatter.Format())),
		ContentType: formatter.ContentType(),
		Data:        data,
	}, nil
}
