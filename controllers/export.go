// controllers/export.go
package controllers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Lakshay1509/carheroz-tracker/models"
	"github.com/Lakshay1509/carheroz-tracker/utils"

	"github.com/gin-gonic/gin"
)

var exportHeader = []string{
	"Employee Name",
	"Service Type",
	"Service Date",
	"Payment Amount",
	"Payment Mode",
	"Payment Accepted By",
}

// ExportRecords serves the caller's records as a CSV attachment. An empty
// record set returns an informational notice instead of a file.
func ExportRecords(c *gin.Context) {
	userUUID, ok := currentUserUUID(c)
	if !ok {
		return
	}

	records, err := recordStore.List(c.Request.Context(), userUUID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve service records")
		return
	}

	if len(records) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "No data to export."})
		return
	}

	body, err := recordsToCSV(records)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to build CSV export")
		return
	}

	filename := fmt.Sprintf("service_records_%s.csv", time.Now().Format(utils.DateLayout))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/csv", body)
}

func recordsToCSV(records []models.ServiceRecord) ([]byte, error) {
	b := new(bytes.Buffer)
	w := csv.NewWriter(b)

	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	for _, r := range records {
		row := []string{
			r.EmployeeName,
			r.ServiceType,
			r.ServiceDate.Format(utils.DateLayout),
			strconv.FormatFloat(r.PaymentAmount, 'f', 2, 64),
			r.PaymentMode,
			r.PaymentAcceptedBy,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}
