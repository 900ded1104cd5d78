package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"motorent/internal/domain"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

// Exporter renders rental reports as Excel files for the back office.
type Exporter struct {
	rentals domain.RentalService
	cars    domain.CarService
	users   domain.UserService
	path    string
	logger  *zerolog.Logger
}

func NewExporter(rentals domain.RentalService, cars domain.CarService, users domain.UserService, path string, logger *zerolog.Logger) *Exporter {
	return &Exporter{rentals: rentals, cars: cars, users: users, path: path, logger: logger}
}

// RentalsReport writes one row per rental overlapping the period and
// returns the saved file path.
func (e *Exporter) RentalsReport(ctx context.Context, startDate, endDate time.Time) (string, error) {
	if err := os.MkdirAll(e.path, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory: %v", err)
	}

	rentals, err := e.rentals.ListByDateRange(ctx, startDate, endDate)
	if err != nil {
		return "", fmt.Errorf("error getting rentals: %v", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Rentals"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	_ = f.SetCellValue(sheetName, "A1", fmt.Sprintf("Period: %s - %s",
		startDate.Format("02.01.2006"), endDate.Format("02.01.2006")))

	headers := []string{
		"ID", "Customer", "Email", "Car", "Plate", "Start", "End",
		"Days", "Total", "Status", "Pickup", "Dropoff", "Notes",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		_ = f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	lastHeader, _ := excelize.CoordinatesToCellName(len(headers), 2)
	_ = f.SetCellStyle(sheetName, "A2", lastHeader, headerStyle)

	for i, rental := range rentals {
		row := i + 3

		customerName, customerEmail := "", ""
		if user, err := e.users.Get(ctx, rental.UserID); err == nil {
			customerName, customerEmail = user.Name, user.Email
		} else {
			e.logger.Error().Err(err).Int64("user_id", rental.UserID).Msg("Error loading user for export")
		}

		carName, plate := "", ""
		if car, err := e.cars.Get(ctx, rental.CarID); err == nil {
			carName = fmt.Sprintf("%s %s (%d)", car.Make, car.Model, car.Year)
			plate = car.LicensePlate
		} else {
			e.logger.Error().Err(err).Int64("car_id", rental.CarID).Msg("Error loading car for export")
		}

		_ = f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), rental.ID)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), customerName)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), customerEmail)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), carName)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), plate)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), rental.StartDate.Format("02.01.2006"))
		_ = f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), rental.EndDate.Format("02.01.2006"))
		_ = f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), rental.Days())
		_ = f.SetCellValue(sheetName, fmt.Sprintf("I%d", row), rental.TotalCost.String())
		_ = f.SetCellValue(sheetName, fmt.Sprintf("J%d", row), rental.Status)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("K%d", row), rental.PickupLocation)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("L%d", row), rental.DropoffLocation)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("M%d", row), rental.Notes)
	}

	_ = f.SetColWidth(sheetName, "A", "A", 8)
	_ = f.SetColWidth(sheetName, "B", "E", 22)
	_ = f.SetColWidth(sheetName, "F", "H", 12)
	_ = f.SetColWidth(sheetName, "I", "J", 12)
	_ = f.SetColWidth(sheetName, "K", "M", 20)

	lastCol, _ := excelize.CoordinatesToCellName(len(headers), 1)
	_ = f.MergeCell(sheetName, "A1", lastCol)

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetCellStyle(sheetName, "A1", "A1", titleStyle)

	_ = f.DeleteSheet("Sheet1")

	fileName := fmt.Sprintf("rentals_%s_to_%s.xlsx",
		startDate.Format("2006-01-02"),
		endDate.Format("2006-01-02"))
	filePath := filepath.Join(e.path, fileName)

	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("error saving file: %v", err)
	}

	e.logger.Info().Str("file_path", filePath).Msg("Excel file created")
	return filePath, nil
}
