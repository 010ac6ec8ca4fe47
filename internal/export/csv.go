// Package export renders the aggregated envelope and its companion tables
// into CSV artifacts. Pure formatting; all decision logic lives upstream.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/framestack/envelope-engine/internal/models"
	"github.com/framestack/envelope-engine/internal/stats"
	"github.com/framestack/envelope-engine/internal/utils"
)

// Exporter writes the run artifacts with a fixed numeric precision.
type Exporter struct {
	decimals int
}

// NewExporter constructs an Exporter; decimals defaults to 4 when out of
// range, sufficient for design use.
func NewExporter(decimals int) *Exporter {
	if decimals <= 0 || decimals > 12 {
		decimals = 4
	}
	return &Exporter{decimals: decimals}
}

// WriteEnvelope renders the design envelope table: one row per element,
// with max/min and governing combination for each of the twelve components.
func (e *Exporter) WriteEnvelope(w io.Writer, rows []models.EnvelopeRow) error {
	cw := csv.NewWriter(w)

	header := []string{"Element", "Type", "NodeI", "NodeJ", "XI", "YI", "ZI", "XJ", "YJ", "ZJ"}
	for _, name := range models.ForceComponentNames {
		header = append(header,
			name+"_max", name+"_max_combo",
			name+"_min", name+"_min_combo")
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, row := range rows {
		record := []string{
			strconv.Itoa(row.ElementID),
			string(row.Orientation),
			strconv.Itoa(row.NodeI),
			strconv.Itoa(row.NodeJ),
			e.num(row.CoordI.X), e.num(row.CoordI.Y), e.num(row.CoordI.Z),
			e.num(row.CoordJ.X), e.num(row.CoordJ.Y), e.num(row.CoordJ.Z),
		}
		for _, ext := range row.Extremes {
			record = append(record,
				e.num(ext.Max), ext.MaxCombo,
				e.num(ext.Min), ext.MinCombo)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteComparison renders the raw per-combination force table.
func (e *Exporter) WriteComparison(w io.Writer, rows []stats.ComparisonRow) error {
	cw := csv.NewWriter(w)

	header := []string{"Combination", "Element", "Type", "NodeI", "NodeJ"}
	for _, name := range models.ForceComponentNames {
		header = append(header, name)
	}
	header = append(header, "N_abs_max", "V_abs_max", "M_abs_max")
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, row := range rows {
		record := []string{
			row.CombinationID,
			strconv.Itoa(row.ElementID),
			string(row.Orientation),
			strconv.Itoa(row.NodeI),
			strconv.Itoa(row.NodeJ),
		}
		for _, v := range row.Forces {
			record = append(record, e.num(v))
		}
		record = append(record, e.num(row.AxialAbsMax), e.num(row.ShearAbsMax), e.num(row.MomentAbsMax))
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteStatistics renders the per-combination aggregate table.
func (e *Exporter) WriteStatistics(w io.Writer, summaries []stats.Summary) error {
	cw := csv.NewWriter(w)

	header := []string{
		"Combination", "Elements",
		"N_max", "N_min", "N_mean",
		"V_max", "V_min", "V_mean",
		"M_max", "M_min", "M_mean",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, s := range summaries {
		record := []string{
			s.CombinationID,
			strconv.Itoa(s.Elements),
			e.num(s.AxialMax), e.num(s.AxialMin), e.num(s.AxialMean),
			e.num(s.ShearMax), e.num(s.ShearMin), e.num(s.ShearMean),
			e.num(s.MomentMax), e.num(s.MomentMin), e.num(s.MomentMean),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteFile renders one artifact into path using the supplied writer func.
func WriteFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (e *Exporter) num(v float64) string {
	return utils.FormatFixed(v, e.decimals)
}
