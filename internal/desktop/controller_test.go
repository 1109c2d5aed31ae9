package desktop

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamJABASTIN/attendance-tracker/internal/record"
	"github.com/iamJABASTIN/attendance-tracker/internal/store"
)

func newTestController(t *testing.T) *Controller {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate())
	return NewController(record.NewService(record.NewRepository(db.Client)))
}

func TestAddLoadSelect(t *testing.T) {
	ctrl := newTestController(t)
	assert.Equal(t, "Ready", ctrl.Status())

	require.NoError(t, ctrl.Add("S1", "Alice", "Class 1", "2024-01-05"))
	require.NoError(t, ctrl.Add("S2", "Bob", "Class 2", "2024-01-06"))
	assert.Equal(t, "Record added successfully", ctrl.Status())

	require.NoError(t, ctrl.Load())
	require.Len(t, ctrl.Rows(), 2)
	assert.Equal(t, "Bob", ctrl.Rows()[0].Name, "newest first")
	assert.Equal(t, "Loaded 2 records", ctrl.Status())

	rec, ok := ctrl.Select(1)
	require.True(t, ok)
	assert.Equal(t, "Alice", rec.Name)
	assert.Equal(t, rec.ID, ctrl.SelectedID())

	_, ok = ctrl.Select(5)
	assert.False(t, ok)
}

func TestAddInvalidKeepsTable(t *testing.T) {
	ctrl := newTestController(t)
	require.NoError(t, ctrl.Add("S1", "Alice", "Class 1", "2024-01-05"))
	require.NoError(t, ctrl.Load())

	err := ctrl.Add("", "Bob", "Class 2", "2024-01-06")
	assert.ErrorIs(t, err, record.ErrValidation)
	assert.Equal(t, "Failed to add record", ctrl.Status())

	require.NoError(t, ctrl.Load())
	assert.Len(t, ctrl.Rows(), 1)
}

func TestUpdateRequiresSelection(t *testing.T) {
	ctrl := newTestController(t)
	require.NoError(t, ctrl.Add("S1", "Alice", "Class 1", "2024-01-05"))
	require.NoError(t, ctrl.Load())

	assert.ErrorIs(t, ctrl.Update("S1", "Alicia", "Class 1", "2024-01-05"), ErrNoSelection)
	assert.Equal(t, "No record selected for update", ctrl.Status())

	_, ok := ctrl.Select(0)
	require.True(t, ok)
	require.NoError(t, ctrl.Update("S1", "Alicia", "Class 2", "2024-01-06"))
	assert.Equal(t, "Record updated successfully", ctrl.Status())
	assert.Zero(t, ctrl.SelectedID(), "selection clears after update")

	require.Len(t, ctrl.Rows(), 1)
	assert.Equal(t, "Alicia", ctrl.Rows()[0].Name)
	assert.Equal(t, "Class 2", ctrl.Rows()[0].ClassName)
}

func TestDeleteRequiresSelection(t *testing.T) {
	ctrl := newTestController(t)
	require.NoError(t, ctrl.Add("S1", "Alice", "Class 1", "2024-01-05"))
	require.NoError(t, ctrl.Load())

	assert.ErrorIs(t, ctrl.Delete(), ErrNoSelection)

	_, ok := ctrl.Select(0)
	require.True(t, ok)
	require.NoError(t, ctrl.Delete())
	assert.Equal(t, "Record deleted successfully", ctrl.Status())
	assert.Zero(t, ctrl.SelectedID())
	assert.Empty(t, ctrl.Rows())
}

func TestSearchDrivesTable(t *testing.T) {
	ctrl := newTestController(t)
	require.NoError(t, ctrl.Add("S1", "Alice", "Class 1", "2024-01-05"))
	require.NoError(t, ctrl.Add("S2", "Bob", "Class 2", "2024-01-06"))

	require.NoError(t, ctrl.Search("Ali"))
	require.Len(t, ctrl.Rows(), 1)
	assert.Equal(t, "Alice", ctrl.Rows()[0].Name)
	assert.Equal(t, "Found 1 matching records", ctrl.Status())

	require.NoError(t, ctrl.Search(""))
	assert.Len(t, ctrl.Rows(), 2)
}

func TestClear(t *testing.T) {
	ctrl := newTestController(t)
	require.NoError(t, ctrl.Add("S1", "Alice", "Class 1", "2024-01-05"))
	require.NoError(t, ctrl.Load())
	_, ok := ctrl.Select(0)
	require.True(t, ok)

	ctrl.Clear()
	assert.Zero(t, ctrl.SelectedID())
	assert.Equal(t, "Form cleared", ctrl.Status())
	assert.Len(t, ctrl.Rows(), 1, "clear leaves the table alone")
}
