// File: /controllers/export_controller.go
package controllers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"garagehub-api/export"
	"garagehub-api/models"
)

// pdfWriter matches export.WritePDF; swappable so tests can force failures.
type pdfWriter func(w io.Writer, title string, cols []export.Column, rows []export.Row) error

type ExportController struct {
	db  *gorm.DB
	pdf pdfWriter
}

func NewExportController(db *gorm.DB) *ExportController {
	return &ExportController{db: db, pdf: export.WritePDF}
}

func (ec *ExportController) CustomersCSV(c *gin.Context) {
	rows, err := ec.customerRows(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customers"})
		return
	}
	ec.writeCSV(c, exportFilename("customers", "csv"), rows)
}

func (ec *ExportController) CustomersPDF(c *gin.Context) {
	rows, err := ec.customerRows(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customers"})
		return
	}
	ec.writePDF(c, "Customers Report", exportFilename("customers", "pdf"), rows)
}

func (ec *ExportController) VehiclesCSV(c *gin.Context) {
	rows, err := ec.vehicleRows(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch vehicles"})
		return
	}
	ec.writeCSV(c, exportFilename("vehicles", "csv"), rows)
}

func (ec *ExportController) VehiclesPDF(c *gin.Context) {
	rows, err := ec.vehicleRows(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch vehicles"})
		return
	}
	ec.writePDF(c, "Vehicles Report", exportFilename("vehicles", "pdf"), rows)
}

func (ec *ExportController) ServicesCSV(c *gin.Context) {
	rows, err := ec.serviceRows(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch services"})
		return
	}
	ec.writeCSV(c, exportFilename("services", "csv"), rows)
}

func (ec *ExportController) ServicesPDF(c *gin.Context) {
	rows, err := ec.serviceRows(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch services"})
		return
	}
	ec.writePDF(c, "Service Report", exportFilename("services", "pdf"), rows)
}

// writeCSV runs the formatter/encoder pipeline and delivers the result as
// an attachment. An empty row set is a logged no-op, not an error.
func (ec *ExportController) writeCSV(c *gin.Context, filename string, rows []export.Row) {
	formatted := export.FormatRows(rows)
	cols := export.DeriveColumns(formatted)

	var buf bytes.Buffer
	if err := export.EncodeCSV(&buf, cols, formatted); err != nil {
		if errors.Is(err, export.ErrNoData) {
			log.Printf("Warning: no data to export for %s", filename)
			c.Status(http.StatusNoContent)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate CSV"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// writePDF renders the table document. If construction fails for any
// reason the same rows are delivered as CSV instead, with the extension
// swapped, so the export never silently loses data.
func (ec *ExportController) writePDF(c *gin.Context, title, filename string, rows []export.Row) {
	formatted := export.FormatRows(rows)
	cols := export.DeriveColumns(formatted)

	var buf bytes.Buffer
	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("pdf renderer panic: %v", r)
			}
		}()
		return ec.pdf(&buf, title, cols, formatted)
	}()
	if err != nil {
		log.Printf("Error generating PDF: %v, falling back to CSV export", err)
		ec.writeCSV(c, strings.TrimSuffix(filename, ".pdf")+".csv", rows)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

func (ec *ExportController) customerRows(userID string) ([]export.Row, error) {
	var customers []models.Customer
	if err := ec.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&customers).Error; err != nil {
		return nil, err
	}

	rows := make([]export.Row, 0, len(customers))
	for _, customer := range customers {
		rows = append(rows, export.Row{
			{Key: "name", Value: customer.Name},
			{Key: "email", Value: strValue(customer.Email)},
			{Key: "phone", Value: strValue(customer.Phone)},
			{Key: "created_at", Value: customer.CreatedAt},
		})
	}
	return rows, nil
}

func (ec *ExportController) vehicleRows(userID string) ([]export.Row, error) {
	var vehicles []models.Vehicle
	if err := ec.db.Preload("Customer").Where("user_id = ?", userID).Order("created_at DESC").Find(&vehicles).Error; err != nil {
		return nil, err
	}

	rows := make([]export.Row, 0, len(vehicles))
	for _, vehicle := range vehicles {
		customerName := interface{}(nil)
		if vehicle.Customer != nil {
			customerName = vehicle.Customer.Name
		}
		rows = append(rows, export.Row{
			{Key: "model", Value: vehicle.Model},
			{Key: "plate_number", Value: vehicle.PlateNumber},
			{Key: "customer", Value: customerName},
			{Key: "created_at", Value: vehicle.CreatedAt},
		})
	}
	return rows, nil
}

func (ec *ExportController) serviceRows(userID string) ([]export.Row, error) {
	var serviceRecords []models.Service
	err := ec.db.Preload("Customer").Preload("Vehicle").
		Where("user_id = ?", userID).
		Order("submission_date DESC").
		Find(&serviceRecords).Error
	if err != nil {
		return nil, err
	}

	rows := make([]export.Row, 0, len(serviceRecords))
	for _, service := range serviceRecords {
		customerName := interface{}(nil)
		if service.Customer != nil {
			customerName = service.Customer.Name
		}
		vehicleLabel := interface{}(nil)
		if service.Vehicle != nil {
			vehicleLabel = fmt.Sprintf("%s (%s)", service.Vehicle.Model, service.Vehicle.PlateNumber)
		}
		rows = append(rows, export.Row{
			{Key: "customer", Value: customerName},
			{Key: "vehicle", Value: vehicleLabel},
			{Key: "description", Value: strValue(service.Description)},
			{Key: "submission_date", Value: service.SubmissionDate},
			{Key: "collection_date", Value: timeValue(service.CollectionDate)},
			{Key: "amount_paid", Value: floatValue(service.AmountPaid)},
			{Key: "status", Value: service.Status},
		})
	}
	return rows, nil
}

// exportFilename embeds the current date in ISO form: customers_2026-08-31.csv
func exportFilename(entity, ext string) string {
	return fmt.Sprintf("%s_%s.%s", entity, time.Now().Format("2006-01-02"), ext)
}

// Pointer fields are unwrapped so that absent values reach the encoders as
// untyped nils.
func strValue(p *string) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

func floatValue(p *float64) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

func timeValue(p *time.Time) interface{} {
	if p == nil {
		return nil
	}
	return *p
}
