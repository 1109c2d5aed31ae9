package main

import (
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/iamJABASTIN/attendance-tracker/internal/config"
	"github.com/iamJABASTIN/attendance-tracker/internal/desktop"
	"github.com/iamJABASTIN/attendance-tracker/internal/logger"
	"github.com/iamJABASTIN/attendance-tracker/internal/record"
	"github.com/iamJABASTIN/attendance-tracker/internal/store"
)

var tableHeaders = []string{"ID", "Student ID", "Name", "Class", "Date"}

func main() {
	cfg := config.Load()
	log := logger.New("warn", true)

	db, err := store.Open(cfg.SQLitePath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.SQLitePath).Msg("open database failed")
	}
	defer db.Close()
	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}

	ctrl := desktop.NewController(record.NewService(record.NewRepository(db.Client)))
	if err := ctrl.Load(); err != nil {
		log.Fatal().Err(err).Msg("load records failed")
	}

	a := app.New()
	mainWindow := a.NewWindow("Student Attendance Tracker")
	mainWindow.Resize(fyne.NewSize(900, 600))

	studentIDEntry := widget.NewEntry()
	nameEntry := widget.NewEntry()
	classSelect := widget.NewSelect(record.Classes, func(string) {})
	dateEntry := widget.NewEntry()
	dateEntry.SetPlaceHolder("yyyy-mm-dd")
	dateEntry.SetText(time.Now().Format("2006-01-02"))

	searchEntry := widget.NewEntry()
	searchEntry.SetPlaceHolder("Search by student ID, name or date")

	statusLabel := widget.NewLabel(ctrl.Status())

	var table *widget.Table
	table = widget.NewTable(
		func() (int, int) { return len(ctrl.Rows()) + 1, len(tableHeaders) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.TableCellID, o fyne.CanvasObject) {
			l := o.(*widget.Label)
			if id.Row == 0 {
				l.TextStyle.Bold = true
				l.SetText(tableHeaders[id.Col])
				return
			}
			l.TextStyle.Bold = false
			rec := ctrl.Rows()[id.Row-1]
			switch id.Col {
			case 0:
				l.SetText(itoa(rec.ID))
			case 1:
				l.SetText(rec.StudentID)
			case 2:
				l.SetText(rec.Name)
			case 3:
				l.SetText(rec.ClassName)
			case 4:
				l.SetText(rec.Date)
			}
		},
	)
	table.SetColumnWidth(0, 50)
	table.SetColumnWidth(1, 120)
	table.SetColumnWidth(2, 240)
	table.SetColumnWidth(3, 120)
	table.SetColumnWidth(4, 120)

	refresh := func() {
		table.Refresh()
		statusLabel.SetText(ctrl.Status())
	}

	clearForm := func() {
		studentIDEntry.SetText("")
		nameEntry.SetText("")
		classSelect.ClearSelected()
		dateEntry.SetText(time.Now().Format("2006-01-02"))
		table.UnselectAll()
	}

	table.OnSelected = func(id widget.TableCellID) {
		if id.Row == 0 {
			return
		}
		rec, ok := ctrl.Select(id.Row - 1)
		if !ok {
			return
		}
		studentIDEntry.SetText(rec.StudentID)
		nameEntry.SetText(rec.Name)
		classSelect.SetSelected(rec.ClassName)
		dateEntry.SetText(rec.Date)
		statusLabel.SetText(ctrl.Status())
	}

	searchButton := widget.NewButton("Search", func() {
		if err := ctrl.Search(searchEntry.Text); err != nil {
			dialog.ShowError(err, mainWindow)
		}
		refresh()
	})
	showAllButton := widget.NewButton("Show All", func() {
		searchEntry.SetText("")
		if err := ctrl.Load(); err != nil {
			dialog.ShowError(err, mainWindow)
		}
		refresh()
	})

	addButton := widget.NewButton("Add Record", func() {
		err := ctrl.Add(studentIDEntry.Text, nameEntry.Text, classSelect.Selected, dateEntry.Text)
		if err != nil {
			dialog.ShowError(err, mainWindow)
			refresh()
			return
		}
		clearForm()
		refresh()
		dialog.ShowInformation("Success", "Attendance record added successfully", mainWindow)
	})

	updateButton := widget.NewButton("Update", func() {
		err := ctrl.Update(studentIDEntry.Text, nameEntry.Text, classSelect.Selected, dateEntry.Text)
		if err != nil {
			dialog.ShowError(err, mainWindow)
			refresh()
			return
		}
		clearForm()
		refresh()
		dialog.ShowInformation("Success", "Attendance record updated successfully", mainWindow)
	})

	deleteButton := widget.NewButton("Delete", func() {
		if ctrl.SelectedID() == 0 {
			dialog.ShowError(desktop.ErrNoSelection, mainWindow)
			return
		}
		dialog.ShowConfirm("Confirm Delete", "Are you sure you want to delete this record?",
			func(confirmed bool) {
				if !confirmed {
					return
				}
				if err := ctrl.Delete(); err != nil {
					dialog.ShowError(err, mainWindow)
					refresh()
					return
				}
				clearForm()
				refresh()
			}, mainWindow)
	})

	clearButton := widget.NewButton("Clear", func() {
		ctrl.Clear()
		clearForm()
		refresh()
	})

	exit := func() {
		dialog.ShowConfirm("Confirm Exit", "Are you sure you want to exit?",
			func(confirmed bool) {
				if confirmed {
					a.Quit()
				}
			}, mainWindow)
	}
	exitButton := widget.NewButton("Exit", exit)

	mainWindow.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu("File", fyne.NewMenuItem("Exit", exit)),
		fyne.NewMenu("Help", fyne.NewMenuItem("About", func() {
			dialog.ShowInformation("About",
				"Student Attendance Tracker\n\nAdd, update, delete and search attendance records.",
				mainWindow)
		})),
	))

	form := widget.NewForm(
		widget.NewFormItem("Student ID", studentIDEntry),
		widget.NewFormItem("Name", nameEntry),
		widget.NewFormItem("Class", classSelect),
		widget.NewFormItem("Date", dateEntry),
	)
	searchRow := container.NewBorder(nil, nil, nil, container.NewHBox(searchButton, showAllButton), searchEntry)
	buttonRow := container.NewHBox(addButton, updateButton, deleteButton, clearButton, exitButton)
	top := container.NewVBox(
		widget.NewLabelWithStyle("Attendance Details", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		form,
		searchRow,
		buttonRow,
	)

	mainWindow.SetContent(container.NewBorder(top, statusLabel, nil, nil, container.NewScroll(table)))
	mainWindow.SetMaster()
	mainWindow.ShowAndRun()
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
