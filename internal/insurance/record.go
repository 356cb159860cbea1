// Package insurance defines the fixed-shape vehicle-insurance record and the
// feature engineering that turns raw records into a model-ready numeric
// representation.
package insurance

import (
	"fmt"
	"strconv"

	"github.com/mohityadav09/vehicle-insurance-mlops/internal/dataset"
)

// Record is one vehicle-insurance policy holder. Field names mirror the
// source collection; the internal "_id"/"id" identifier is dropped at the
// decoding boundary and never reaches a Record.
type Record struct {
	Gender             string  `bson:"Gender" json:"Gender"`
	Age                int     `bson:"Age" json:"Age"`
	DrivingLicense     int     `bson:"Driving_License" json:"Driving_License"`
	RegionCode         float64 `bson:"Region_Code" json:"Region_Code"`
	PreviouslyInsured  int     `bson:"Previously_Insured" json:"Previously_Insured"`
	VehicleAge         string  `bson:"Vehicle_Age" json:"Vehicle_Age"`
	VehicleDamage      string  `bson:"Vehicle_Damage" json:"Vehicle_Damage"`
	AnnualPremium      float64 `bson:"Annual_Premium" json:"Annual_Premium"`
	PolicySalesChannel float64 `bson:"Policy_Sales_Channel" json:"Policy_Sales_Channel"`
	Vintage            int     `bson:"Vintage" json:"Vintage"`

	// Response is the target label: 1 if the customer bought vehicle
	// insurance, 0 otherwise.
	Response int `bson:"Response" json:"Response"`
}

// Columns is the canonical column order for persisted record frames.
var Columns = []string{
	"Gender", "Age", "Driving_License", "Region_Code", "Previously_Insured",
	"Vehicle_Age", "Vehicle_Damage", "Annual_Premium", "Policy_Sales_Channel",
	"Vintage", "Response",
}

// ToFrame converts records to a tabular frame in canonical column order.
func ToFrame(records []Record) *dataset.Frame {
	f := dataset.New(Columns)
	for _, r := range records {
		f.Rows = append(f.Rows, []string{
			r.Gender,
			strconv.Itoa(r.Age),
			strconv.Itoa(r.DrivingLicense),
			formatFloat(r.RegionCode),
			strconv.Itoa(r.PreviouslyInsured),
			r.VehicleAge,
			r.VehicleDamage,
			formatFloat(r.AnnualPremium),
			formatFloat(r.PolicySalesChannel),
			strconv.Itoa(r.Vintage),
			strconv.Itoa(r.Response),
		})
	}
	return f
}

// FromFrame decodes a frame into records, checking every expected column is
// present. Placeholder cells ("na", empty) are rejected rather than silently
// coerced.
func FromFrame(f *dataset.Frame) ([]Record, error) {
	idx := make(map[string]int, len(Columns))
	for _, name := range Columns {
		i, ok := f.ColumnIndex(name)
		if !ok {
			return nil, fmt.Errorf("column %q is missing from the data", name)
		}
		idx[name] = i
	}

	records := make([]Record, 0, len(f.Rows))
	for rowNum, row := range f.Rows {
		p := rowParser{}
		r := Record{
			Gender:             row[idx["Gender"]],
			Age:                p.intCell(row[idx["Age"]], "Age"),
			DrivingLicense:     p.intCell(row[idx["Driving_License"]], "Driving_License"),
			RegionCode:         p.floatCell(row[idx["Region_Code"]], "Region_Code"),
			PreviouslyInsured:  p.intCell(row[idx["Previously_Insured"]], "Previously_Insured"),
			VehicleAge:         row[idx["Vehicle_Age"]],
			VehicleDamage:      row[idx["Vehicle_Damage"]],
			AnnualPremium:      p.floatCell(row[idx["Annual_Premium"]], "Annual_Premium"),
			PolicySalesChannel: p.floatCell(row[idx["Policy_Sales_Channel"]], "Policy_Sales_Channel"),
			Vintage:            p.intCell(row[idx["Vintage"]], "Vintage"),
			Response:           p.intCell(row[idx["Response"]], "Response"),
		}
		if p.err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, p.err)
		}
		records = append(records, r)
	}
	return records, nil
}

// rowParser decodes one row's cells, remembering the first error.
type rowParser struct {
	err error
}

func (p *rowParser) intCell(s, column string) int {
	if p.err != nil {
		return 0
	}
	v, err := parseInt(s)
	if err != nil {
		p.err = fmt.Errorf("column %q: %w", column, err)
	}
	return v
}

func (p *rowParser) floatCell(s, column string) float64 {
	if p.err != nil {
		return 0
	}
	v, err := parseFloat(s)
	if err != nil {
		p.err = fmt.Errorf("column %q: %w", column, err)
	}
	return v
}

// Labels extracts the target column.
func Labels(records []Record) []int {
	y := make([]int, len(records))
	for i, r := range records {
		y[i] = r.Response
	}
	return y
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func parseInt(s string) (int, error) {
	if isPlaceholder(s) {
		return 0, fmt.Errorf("placeholder value %q", s)
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		// Integer columns exported through floats (e.g. "1.0").
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return 0, err
		}
		return int(f), nil
	}
	return v, nil
}

func parseFloat(s string) (float64, error) {
	if isPlaceholder(s) {
		return 0, fmt.Errorf("placeholder value %q", s)
	}
	return strconv.ParseFloat(s, 64)
}

func isPlaceholder(s string) bool {
	return s == "" || s == "na" || s == "NA"
}
