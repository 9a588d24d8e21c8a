// Package handlers is a small rex application used to try the checker on
// real handler code.
package handlers

import (
	"fmt"

	"github.com/abiiranathan/rex"
)

// Visit represents a patient visit
type Visit struct {
	ID        uint
	PatientID uint
	Patient   Patient
	Doctor    Doctor
}

// Patient represents a patient
type Patient struct {
	Name string // Patient Full name
	ID   uint   // Patient ID
}

// Doctor represents a doctor
type Doctor struct {
	DisplayName string
	ID          uint
}

// Drug represents a drug
type Drug struct {
	Name     string // Drug Name
	Quantity int
	Price    float64
}

// String implements fmt.Stringer.
func (d Drug) String() string {
	return fmt.Sprintf("%s x%d", d.Name, d.Quantity)
}

// Handler holds service dependencies
type Handler struct {
	tr *Translator
}

// NewHandler returns a Handler translating into lang.
func NewHandler(lang string, catalog map[string]string) *Handler {
	return &Handler{tr: NewTranslator(lang, catalog)}
}

const chartTitle = "Treatment chart for %name"

// RenderTreatmentChart renders the treatment chart
func (h *Handler) RenderTreatmentChart(inpatient bool) rex.HandlerFunc {
	return func(c *rex.Context) error {
		visitID := c.ParamUint("visit_id")
		visit := &Visit{ID: visitID}

		label := h.tr.T("Inpatient")
		if !inpatient {
			label = h.tr.T("OPD")
		}

		title := h.tr.T(chartTitle, rex.Map{"name": visit.Patient.Name})

		// Magic happens here. Try removing the doctor argument!
		subtitle := h.tr.T("Visit %1 with %2", visit.ID, visit.Doctor.DisplayName)

		return c.Render("views/inpatient/treatment-chart.html", rex.Map{
			"Title":    title,
			"Subtitle": subtitle,
			"Label":    label,
			"visit":    visit,
		})
	}
}

// RenderDrug renders a single drug.
func (h *Handler) RenderDrug() rex.HandlerFunc {
	return func(c *rex.Context) error {
		drug := Drug{Name: "Paracetamol", Quantity: 2}

		params := rex.Map{"drug": drug}
		params["price"] = drug.Price

		return c.Render("views/drug.html", rex.Map{
			"Title":   h.tr.T("Prescribed %drug at %price", params),
			"Summary": h.tr.T("%1 in stock", drug),
		})
	}
}

// RenderDashboard has translation mistakes the checker reports.
func (h *Handler) RenderDashboard() rex.HandlerFunc {
	return func(c *rex.Context) error {
		visitID := c.ParamUint("visit_id")
		visit := &Visit{ID: visitID}

		return c.Render("views/dashboard.html", rex.Map{
			"Welcome": h.tr.T("Welcome back %name", visit.Patient.Name),
			"Visit":   h.tr.T("Visit %1", visit),
			"Doctor":  h.tr.T("Seen by %doctor", rex.Map{"name": visit.Doctor.DisplayName}),
		})
	}
}
