package report

import (
	"fmt"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// PDFGenerator renders a device snapshot as a printable parameter table.
type PDFGenerator struct{}

func NewPDF() *PDFGenerator {
	return &PDFGenerator{}
}

func (g *PDFGenerator) GenerateReport(outputPath, deviceID string, takenAt time.Time, entries []Entry) error {
	m := maroto.New(config.NewBuilder().Build())

	m.AddRow(12,
		text.NewCol(12, fmt.Sprintf("Device %s configuration snapshot", deviceID), props.Text{
			Size:  14,
			Style: fontstyle.Bold,
		}),
	)

	m.AddRow(8,
		text.NewCol(12, "Taken at "+takenAt.UTC().Format(time.RFC3339), props.Text{
			Size: 9,
		}),
	)

	m.AddRow(7,
		text.NewCol(8, "Parameter", props.Text{Size: 9, Style: fontstyle.Bold}),
		text.NewCol(3, "Value", props.Text{Size: 9, Style: fontstyle.Bold}),
		text.NewCol(1, "Type", props.Text{Size: 9, Style: fontstyle.Bold}),
	)

	for _, entry := range entries {
		m.AddRow(5,
			text.NewCol(8, entry.Name, props.Text{Size: 7}),
			text.NewCol(3, entry.Value, props.Text{Size: 7}),
			text.NewCol(1, entry.Type, props.Text{Size: 7}),
		)
	}

	document, err := m.Generate()
	if err != nil {
		return fmt.Errorf("failed to generate pdf: %w", err)
	}

	if err := document.Save(outputPath); err != nil {
		return fmt.Errorf("failed to save pdf to %q: %w", outputPath, err)
	}

	return nil
}
