package models

import (
	"encoding/json"
	"time"

	"github.com/Lakshay1509/carheroz-tracker/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment mode options
const (
	PaymentModeOnline = "Online"
	PaymentModeCash   = "Cash"
)

// Payment accepted-by options
const (
	AcceptedByAccount  = "Car Heroz Account"
	AcceptedByEmployee = "Employee"
)

// ServiceRecord is one logged service transaction, visible only to the user
// that created it.
type ServiceRecord struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`

	EmployeeName      string    `gorm:"not null" json:"employeeName"`
	ServiceType       string    `gorm:"not null" json:"serviceType"`
	ServiceDate       time.Time `gorm:"index;not null" json:"serviceDate"`
	PaymentAmount     float64   `gorm:"type:decimal(10,2);not null" json:"paymentAmount"`
	PaymentMode       string    `gorm:"type:varchar(10);not null" json:"paymentMode"`
	PaymentAcceptedBy string    `gorm:"type:varchar(30);not null" json:"paymentAcceptedBy"`

	CreatedAt time.Time `json:"createdAt"`
}

func (r *ServiceRecord) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}

// MarshalJSON renders the service date as a plain YYYY-MM-DD calendar date so
// clients never see the storage timestamp.
func (r ServiceRecord) MarshalJSON() ([]byte, error) {
	type alias ServiceRecord
	return json.Marshal(struct {
		alias
		ServiceDate string `json:"serviceDate"`
	}{
		alias:       alias(r),
		ServiceDate: r.ServiceDate.Format(utils.DateLayout),
	})
}

// ValidPaymentMode reports whether v is one of the accepted payment modes.
func ValidPaymentMode(v string) bool {
	return v == PaymentModeOnline || v == PaymentModeCash
}

// ValidPaymentAcceptedBy reports whether v is one of the accepted-by options.
func ValidPaymentAcceptedBy(v string) bool {
	return v == AcceptedByAccount || v == AcceptedByEmployee
}
