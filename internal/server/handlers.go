package server

import (
	"html/template"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mohityadav09/vehicle-insurance-mlops/internal/insurance"
)

var formTemplate = template.Must(template.New("form").Parse(`<!DOCTYPE html>
<html>
<head><title>Vehicle Insurance Prediction</title></head>
<body>
<h1>Vehicle Insurance Interest Prediction</h1>
{{if .HasResult}}<p><strong>Prediction: {{.ResultText}}</strong></p>{{end}}
{{if .Error}}<p><strong>{{.Error}}</strong></p>{{end}}
<form action="/predict" method="post">
  <label>Gender <select name="Gender"><option>Male</option><option>Female</option></select></label><br>
  <label>Age <input name="Age" type="number" required></label><br>
  <label>Driving License <select name="Driving_License"><option value="1">Yes</option><option value="0">No</option></select></label><br>
  <label>Region Code <input name="Region_Code" type="number" step="any" required></label><br>
  <label>Previously Insured <select name="Previously_Insured"><option value="0">No</option><option value="1">Yes</option></select></label><br>
  <label>Vehicle Age <select name="Vehicle_Age"><option>&lt; 1 Year</option><option>1-2 Year</option><option>&gt; 2 Years</option></select></label><br>
  <label>Vehicle Damage <select name="Vehicle_Damage"><option>Yes</option><option>No</option></select></label><br>
  <label>Annual Premium <input name="Annual_Premium" type="number" step="any" required></label><br>
  <label>Policy Sales Channel <input name="Policy_Sales_Channel" type="number" step="any" required></label><br>
  <label>Vintage <input name="Vintage" type="number" required></label><br>
  <button type="submit">Predict</button>
</form>
<form action="/train" method="post"><button type="submit">Train Model</button></form>
</body>
</html>`))

type formData struct {
	HasResult  bool
	ResultText string
	Error      string
}

// predictRequest carries the raw record fields from the form or a JSON body.
type predictRequest struct {
	Gender             string  `form:"Gender" json:"Gender"`
	Age                int     `form:"Age" json:"Age"`
	DrivingLicense     int     `form:"Driving_License" json:"Driving_License"`
	RegionCode         float64 `form:"Region_Code" json:"Region_Code"`
	PreviouslyInsured  int     `form:"Previously_Insured" json:"Previously_Insured"`
	VehicleAge         string  `form:"Vehicle_Age" json:"Vehicle_Age"`
	VehicleDamage      string  `form:"Vehicle_Damage" json:"Vehicle_Damage"`
	AnnualPremium      float64 `form:"Annual_Premium" json:"Annual_Premium"`
	PolicySalesChannel float64 `form:"Policy_Sales_Channel" json:"Policy_Sales_Channel"`
	Vintage            int     `form:"Vintage" json:"Vintage"`
}

func (r predictRequest) record() insurance.Record {
	return insurance.Record{
		Gender:             r.Gender,
		Age:                r.Age,
		DrivingLicense:     r.DrivingLicense,
		RegionCode:         r.RegionCode,
		PreviouslyInsured:  r.PreviouslyInsured,
		VehicleAge:         r.VehicleAge,
		VehicleDamage:      r.VehicleDamage,
		AnnualPremium:      r.AnnualPremium,
		PolicySalesChannel: r.PolicySalesChannel,
		Vintage:            r.Vintage,
	}
}

func (s *Server) handleForm(c echo.Context) error {
	return s.renderForm(c, formData{})
}

func (s *Server) handlePredict(c echo.Context) error {
	var req predictRequest
	if err := c.Bind(&req); err != nil {
		return s.renderForm(c, formData{Error: "invalid input"})
	}

	label, err := s.predictor.Predict(c.Request().Context(), req.record())
	if err != nil {
		// Internal detail stays in the log; the client gets a generic message.
		s.logger.Error("prediction request failed", "error", err)
		return s.renderForm(c, formData{Error: "prediction is unavailable"})
	}

	text := "Customer is not interested in vehicle insurance"
	if label == 1 {
		text = "Customer is interested in vehicle insurance"
	}
	return s.renderForm(c, formData{HasResult: true, ResultText: text})
}

func (s *Server) handleTrain(c echo.Context) error {
	result, err := s.training.Run(c.Request().Context())
	if err != nil {
		s.logger.Error("training run failed", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"status": "failed",
		})
	}
	return c.JSON(http.StatusOK, result)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) renderForm(c echo.Context, data formData) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	return formTemplate.Execute(c.Response(), data)
}
