package export

import (
	"fmt"
	"time"

	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"

	"tito/internal/timer"
)

var tableAlternateBackground = color.Color{Red: 240, Green: 240, Blue: 240}

// GeneratePDF writes a time report to path. When start and end are non-zero
// the covered date range is printed under the title.
func GeneratePDF(path, title string, rows []Row, start, end time.Time) error {
	m := pdf.NewMaroto(consts.Portrait, consts.A4)
	m.SetPageMargins(20, 10, 20)

	m.RegisterHeader(func() {
		m.Row(10, func() {
			m.Col(12, func() {
				m.Text(title, props.Text{
					Top:   3,
					Style: consts.Bold,
					Align: consts.Center,
					Size:  16,
				})
			})
		})
		if !start.IsZero() && !end.IsZero() {
			m.Row(10, func() {
				m.Col(12, func() {
					dateRange := fmt.Sprintf("%s - %s", start.Format("2006-01-02"), end.Format("2006-01-02"))
					m.Text(dateRange, props.Text{
						Top:   3,
						Style: consts.Normal,
						Align: consts.Center,
						Size:  12,
					})
				})
			})
		}
	})

	headers := []string{"Project", "Description", "Date", "Duration"}

	var totalMS int64
	tableRows := make([][]string, 0, len(rows))
	for _, row := range rows {
		totalMS += row.Entry.DurationMS
		tableRows = append(tableRows, []string{
			row.Project,
			row.Entry.Description,
			row.Entry.Start.Format("2006-01-02"),
			timer.FormatElapsedMS(row.Entry.DurationMS),
		})
	}

	m.Row(10, func() {
		m.Col(12, func() {
			m.Text("Time Entries", props.Text{
				Top:   5,
				Style: consts.Bold,
				Size:  14,
			})
		})
	})

	m.TableList(headers, tableRows, props.TableList{
		HeaderProp: props.TableListContent{
			Size:      10,
			GridSizes: []uint{3, 4, 3, 2},
		},
		ContentProp: props.TableListContent{
			Size:      10,
			GridSizes: []uint{3, 4, 3, 2},
		},
		Align:                consts.Center,
		AlternatedBackground: &tableAlternateBackground,
		HeaderContentSpace:   1,
		Line:                 false,
	})

	m.Row(20, func() {
		m.Col(12, func() {
			m.Text(fmt.Sprintf("Total: %s", timer.FormatElapsedMS(totalMS)), props.Text{
				Top:   10,
				Style: consts.Bold,
				Align: consts.Right,
				Size:  12,
			})
		})
	})

	return m.OutputFileAndClose(path)
}
