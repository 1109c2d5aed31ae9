package desktop

import (
	"context"
	"errors"
	"fmt"

	"github.com/iamJABASTIN/attendance-tracker/internal/record"
)

// ErrNoSelection signals an update or delete without a selected row.
var ErrNoSelection = errors.New("no record selected")

// Controller is the desktop form adapter: it owns the table rows, the
// currently selected record id and the status line, and maps UI events onto
// the attendance service. Everything runs synchronously on the UI thread;
// the dataset is small and local, so blocking calls are acceptable.
type Controller struct {
	records *record.Service

	rows       []record.Record
	selectedID int64
	status     string
}

// NewController creates a controller over the shared attendance service.
func NewController(records *record.Service) *Controller {
	return &Controller{records: records, status: "Ready"}
}

// Rows returns the records currently shown in the table.
func (c *Controller) Rows() []record.Record { return c.rows }

// SelectedID returns the selected record id, 0 when nothing is selected.
func (c *Controller) SelectedID() int64 { return c.selectedID }

// Status returns the status-bar text.
func (c *Controller) Status() string { return c.status }

// Load refreshes the table with every record.
func (c *Controller) Load() error {
	rows, err := c.records.ListAll(context.Background())
	if err != nil {
		c.status = "Error loading records"
		return err
	}
	c.rows = rows
	c.status = fmt.Sprintf("Loaded %d records", len(rows))
	return nil
}

// Search refreshes the table with records matching term. An empty term
// behaves like Load.
func (c *Controller) Search(term string) error {
	rows, err := c.records.Search(context.Background(), term)
	if err != nil {
		c.status = "Error searching records"
		return err
	}
	c.rows = rows
	c.status = fmt.Sprintf("Found %d matching records", len(rows))
	return nil
}

// Select marks the table row at index as the edit target and returns it so
// the form can be populated.
func (c *Controller) Select(index int) (record.Record, bool) {
	if index < 0 || index >= len(c.rows) {
		return record.Record{}, false
	}
	rec := c.rows[index]
	c.selectedID = rec.ID
	c.status = fmt.Sprintf("Selected record ID: %d", rec.ID)
	return rec, true
}

// Add creates a new record and reloads the table. The selection is cleared
// whether or not one existed.
func (c *Controller) Add(studentID, name, className, date string) error {
	if _, err := c.records.Create(context.Background(), studentID, name, className, date); err != nil {
		c.status = "Failed to add record"
		return err
	}
	c.selectedID = 0
	if err := c.Load(); err != nil {
		return err
	}
	c.status = "Record added successfully"
	return nil
}

// Update overwrites the selected record with the form values.
func (c *Controller) Update(studentID, name, className, date string) error {
	if c.selectedID == 0 {
		c.status = "No record selected for update"
		return ErrNoSelection
	}
	if _, err := c.records.Update(context.Background(), c.selectedID, studentID, name, className, date); err != nil {
		c.status = "Failed to update record"
		return err
	}
	c.selectedID = 0
	if err := c.Load(); err != nil {
		return err
	}
	c.status = "Record updated successfully"
	return nil
}

// Delete removes the selected record.
func (c *Controller) Delete() error {
	if c.selectedID == 0 {
		c.status = "No record selected for deletion"
		return ErrNoSelection
	}
	if err := c.records.Delete(context.Background(), c.selectedID); err != nil {
		c.status = "Failed to delete record"
		return err
	}
	c.selectedID = 0
	if err := c.Load(); err != nil {
		return err
	}
	c.status = "Record deleted successfully"
	return nil
}

// Clear drops the selection without touching the store.
func (c *Controller) Clear() {
	c.selectedID = 0
	c.status = "Form cleared"
}
