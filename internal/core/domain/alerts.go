package domain

import "time"

// ExpirationSnapshotID is the key of the single "current alerts" document.
const ExpirationSnapshotID = "expirations"

// AlertKind classifies how close a document is to expiry.
type AlertKind string

const (
	AlertExpiring AlertKind = "EXPIRING"
	AlertExpired  AlertKind = "EXPIRED"
)

// DocumentKind names which identity document an alert refers to.
type DocumentKind string

const (
	DocumentQID      DocumentKind = "QID"
	DocumentPassport DocumentKind = "PASSPORT"
)

// ExpirationAlert flags a QID or passport that is expiring soon or has expired.
type ExpirationAlert struct {
	EmployeeID     string       `json:"employeeID"`
	EmployeeName   string       `json:"employeeName"`
	Document       DocumentKind `json:"document"`
	DocumentNumber string       `json:"documentNumber"`
	ExpiryDate     time.Time    `json:"expiryDate"`
	Kind           AlertKind    `json:"kind"`
	DaysLeft       int          `json:"daysLeft"`
	Days           int          `json:"days"` // |DaysLeft|, what is displayed
}

// ExpirationSnapshot replaces the previous alert list wholesale on each scan.
type ExpirationSnapshot struct {
	Alerts      []ExpirationAlert `json:"alerts"`
	Count       int               `json:"count"`
	LastChecked time.Time         `json:"lastChecked"`
}
