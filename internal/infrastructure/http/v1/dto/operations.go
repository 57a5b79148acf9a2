package dto

import (
	"tutorcenter/internal/core/id"
	"tutorcenter/internal/domain/documents/attendance"
	"tutorcenter/internal/domain/documents/enrollment"
	"tutorcenter/internal/domain/documents/sheetupdate"
	"tutorcenter/internal/domain/registers/sheetstock"
)

// --- Attendance ---

// SubmitAttendanceRequest carries a whole class for one date. A missing
// date means today.
type SubmitAttendanceRequest struct {
	ClassID id.ID             `json:"classId" binding:"required"`
	Date    Date              `json:"date"`
	Items   []attendance.Item `json:"items"`
}

// --- Sheet updates ---

// SaveSheetUpdatesRequest carries the grid of one date.
type SaveSheetUpdatesRequest struct {
	Date  Date               `json:"date"`
	Items []sheetupdate.Item `json:"items"`
}

// SheetUpdatesResponse is the grid for a date.
type SheetUpdatesResponse struct {
	Date string            `json:"date"`
	Rows []sheetupdate.Row `json:"rows"`
}

// SavedResponse reports how many rows a bulk save wrote.
type SavedResponse struct {
	Date  string `json:"date"`
	Saved int    `json:"saved"`
}

// --- Inventory ---

// InventoryActionRequest adjusts one sheet's stock. Amount is ignored by
// finish and unfinish.
type InventoryActionRequest struct {
	Action sheetstock.Action `json:"action" binding:"required"`
	Amount int               `json:"amount"`
}

// --- Alerts ---

// MarkNotifiedRequest records how the parent was told. An empty method
// clears the flag.
type MarkNotifiedRequest struct {
	Method enrollment.NotifyMethod `json:"method"`
}

// AlertsResponse lists near-complete enrollments with the rule used.
type AlertsResponse struct {
	Rule  string `json:"rule"`
	Items any    `json:"items"`
}

// --- Portal ---

// PortalLoginRequest is the parent's credentials.
type PortalLoginRequest struct {
	Code  string `json:"code"`
	Phone string `json:"phone"`
}

// PortalHomeRequest adds the selected course to the credentials.
type PortalHomeRequest struct {
	PortalLoginRequest
	EnrollmentID *id.ID `json:"enrollmentId"`
}
