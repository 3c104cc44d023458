package view

import (
	"time"

	"github.com/pageza/healthtracker/backend/internal/models"
	"github.com/pageza/healthtracker/backend/internal/types"
)

const displayDateLayout = "Jan 2, 2006"

// VitalsRow is a stored entry plus its human-readable date.
type VitalsRow struct {
	models.VitalsEntry
	DisplayDate string `json:"display_date"`
}

// VitalsChart holds one point per row, labelled with the row's display date.
// Missing values are null.
type VitalsChart struct {
	Labels            []string   `json:"labels"`
	Weight            []*float64 `json:"weight"`
	BodyFatPercentage []*float64 `json:"body_fat_percentage"`
	MuscleMass        []*float64 `json:"muscle_mass"`
}

// VitalsHistory replaces the dashboard's vitals table and chart wholesale.
type VitalsHistory struct {
	Rows  []VitalsRow `json:"rows"`
	Chart VitalsChart `json:"chart"`
}

// History expects entries ordered by date then creation time.
func History(entries []models.VitalsEntry) VitalsHistory {
	h := VitalsHistory{
		Rows: make([]VitalsRow, 0, len(entries)),
		Chart: VitalsChart{
			Labels:            []string{},
			Weight:            []*float64{},
			BodyFatPercentage: []*float64{},
			MuscleMass:        []*float64{},
		},
	}

	for _, e := range entries {
		row := VitalsRow{VitalsEntry: e, DisplayDate: displayDate(e.Date)}
		h.Rows = append(h.Rows, row)

		c := &h.Chart
		c.Labels = append(c.Labels, row.DisplayDate)
		c.Weight = append(c.Weight, e.Weight)
		c.BodyFatPercentage = append(c.BodyFatPercentage, e.BodyFatPercentage)
		c.MuscleMass = append(c.MuscleMass, e.MuscleMass)
	}
	return h
}

func displayDate(date string) string {
	d, err := time.Parse(types.DateLayout, date)
	if err != nil {
		return date
	}
	return d.Format(displayDateLayout)
}
