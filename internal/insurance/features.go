package insurance

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Vehicle_Age categories as they appear in the source data. The middle
// category ("1-2 Year") is the dropped baseline of the one-hot encoding.
const (
	vehicleAgeUnderOne = "< 1 Year"
	vehicleAgeOneToTwo = "1-2 Year"
	vehicleAgeOverTwo  = "> 2 Years"
)

// featureColumns is the engineered feature order every matrix in the pipeline
// uses: raw numerics first, then the derived indicator columns.
var featureColumns = []string{
	"Gender",
	"Age",
	"Driving_License",
	"Region_Code",
	"Previously_Insured",
	"Annual_Premium",
	"Policy_Sales_Channel",
	"Vintage",
	"Vehicle_Age_lt_1_Year",
	"Vehicle_Age_gt_2_Years",
	"Vehicle_Damage_Yes",
}

// FeatureColumns returns the engineered feature column names in matrix order.
func FeatureColumns() []string {
	return append([]string(nil), featureColumns...)
}

// Features engineers the numeric feature vector for one record: binary gender
// mapping, one-hot vehicle age with the baseline category dropped, and a
// vehicle-damage indicator.
func (r Record) Features() ([]float64, error) {
	var gender float64
	switch r.Gender {
	case "Female":
		gender = 0
	case "Male":
		gender = 1
	default:
		return nil, fmt.Errorf("unknown Gender value %q", r.Gender)
	}

	var ageLtOne, ageGtTwo float64
	switch r.VehicleAge {
	case vehicleAgeUnderOne:
		ageLtOne = 1
	case vehicleAgeOneToTwo:
	case vehicleAgeOverTwo:
		ageGtTwo = 1
	default:
		return nil, fmt.Errorf("unknown Vehicle_Age value %q", r.VehicleAge)
	}

	var damage float64
	switch r.VehicleDamage {
	case "Yes":
		damage = 1
	case "No":
	default:
		return nil, fmt.Errorf("unknown Vehicle_Damage value %q", r.VehicleDamage)
	}

	return []float64{
		gender,
		float64(r.Age),
		float64(r.DrivingLicense),
		r.RegionCode,
		float64(r.PreviouslyInsured),
		r.AnnualPremium,
		r.PolicySalesChannel,
		float64(r.Vintage),
		ageLtOne,
		ageGtTwo,
		damage,
	}, nil
}

// Featurize engineers the feature matrix for a batch of records.
func Featurize(records []Record) (*mat.Dense, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("no records to featurize")
	}

	x := mat.NewDense(len(records), len(featureColumns), nil)
	for i, r := range records {
		row, err := r.Features()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		x.SetRow(i, row)
	}
	return x, nil
}
