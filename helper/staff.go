package helper

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"restaurant_manager/constants"
	"restaurant_manager/model"
	"restaurant_manager/realtime"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func CreateStaff(db *gorm.DB, restaurantID uint, input model.StaffInput, now time.Time) (*model.Staff, error) {
	var count int64
	err := db.Model(&model.Staff{}).
		Where("restaurant_id = ? AND employee_id = ?", restaurantID, input.EmployeeID).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmployeeIDTaken
	}

	staff := model.Staff{
		RestaurantID: restaurantID,
		EmployeeID:   strings.TrimSpace(input.EmployeeID),
		Name:         strings.TrimSpace(input.Name),
		Email:        strings.ToLower(input.Email),
		Phone:        input.Phone,
		Role:         input.Role,
		Department:   input.Department,
		HourlyRate:   input.HourlyRate,
		Status:       constants.STAFF_ACTIVE,
		HireDate:     now,
		Permissions:  input.Permissions,
		Schedule:     datatypes.NewJSONType(input.Schedule),
	}
	if input.HireDate != nil {
		staff.HireDate = *input.HireDate
	}

	if err := db.Create(&staff).Error; err != nil {
		return nil, fmt.Errorf("create staff: %w", err)
	}
	return &staff, nil
}

func GetStaff(db *gorm.DB, restaurantID, id uint) (*model.Staff, error) {
	var staff model.Staff
	if err := db.Where("id = ? AND restaurant_id = ?", id, restaurantID).First(&staff).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, err
	}
	return &staff, nil
}

func ListStaff(db *gorm.DB, restaurantID uint, filter model.StaffFilter) ([]model.Staff, error) {
	query := db.Where("restaurant_id = ?", restaurantID)
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.Department != "" {
		query = query.Where("department = ?", filter.Department)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	} else {
		query = query.Where("status <> ?", constants.STAFF_TERMINATED)
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		query = query.Where("(LOWER(name) LIKE ? OR LOWER(employee_id) LIKE ?)", like, like)
	}
	var staff []model.Staff
	err := query.Order("name ASC").Find(&staff).Error
	return staff, err
}

func UpdateStaff(db *gorm.DB, restaurantID, id uint, input model.UpdateStaffInput) (*model.Staff, error) {
	staff, err := GetStaff(db, restaurantID, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		staff.Name = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil {
		staff.Email = strings.ToLower(*input.Email)
	}
	if input.Phone != nil {
		staff.Phone = *input.Phone
	}
	if input.Role != nil {
		staff.Role = *input.Role
	}
	if input.Department != nil {
		staff.Department = *input.Department
	}
	if input.HourlyRate != nil {
		staff.HourlyRate = *input.HourlyRate
	}
	if input.Status != nil {
		staff.Status = *input.Status
	}
	if input.Permissions != nil {
		staff.Permissions = *input.Permissions
	}
	if input.Schedule != nil {
		staff.Schedule = datatypes.NewJSONType(input.Schedule)
	}
	if err := db.Save(staff).Error; err != nil {
		return nil, err
	}
	return staff, nil
}

// TerminateStaff is the delete operation: the row stays for timesheet history.
func TerminateStaff(db *gorm.DB, restaurantID, id uint) error {
	res := db.Model(&model.Staff{}).
		Where("id = ? AND restaurant_id = ?", id, restaurantID).
		Update("status", constants.STAFF_TERMINATED)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaffNotFound
	}
	return nil
}

func openTimesheet(tx *gorm.DB, restaurantID, staffID uint) (*model.Timesheet, error) {
	var ts model.Timesheet
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Breaks").
		Where("restaurant_id = ? AND staff_id = ? AND clock_out IS NULL", restaurantID, staffID).
		Order("clock_in DESC").
		First(&ts).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ts, nil
}

func ClockIn(db *gorm.DB, restaurantID, staffID uint, input model.ClockInput, now time.Time) (*model.Timesheet, error) {
	var ts model.Timesheet
	var staff *model.Staff
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		staff, err = GetStaff(tx, restaurantID, staffID)
		if err != nil {
			return err
		}
		if staff.Status != constants.STAFF_ACTIVE {
			return ErrStaffInactive
		}
		open, err := openTimesheet(tx, restaurantID, staffID)
		if err != nil {
			return err
		}
		if open != nil {
			return ErrAlreadyClockedIn
		}

		method := input.Method
		if method == "" {
			method = "manual"
		}
		ts = model.Timesheet{
			RestaurantID:  restaurantID,
			StaffID:       staffID,
			Date:          time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()),
			ClockIn:       now,
			ClockInMethod: method,
			Status:        constants.TIMESHEET_DRAFT,
			Notes:         input.Notes,
		}
		return tx.Create(&ts).Error
	})
	if err != nil {
		return nil, err
	}
	realtime.Emit(restaurantID, constants.EVENT_STAFF_CLOCK_IN, map[string]any{
		"staffId":     staffID,
		"name":        staff.Name,
		"timesheetId": ts.ID,
		"clockIn":     ts.ClockIn,
	})
	return &ts, nil
}

// ClockOut closes the open timesheet; an unfinished break ends at the clock-out time.
func ClockOut(db *gorm.DB, restaurantID, staffID uint, input model.ClockInput, now time.Time) (*model.Timesheet, error) {
	var ts *model.Timesheet
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		ts, err = openTimesheet(tx, restaurantID, staffID)
		if err != nil {
			return err
		}
		if ts == nil {
			return ErrNoActiveClockIn
		}
		if b := ts.OpenBreak(); b != nil {
			if err := endBreak(tx, b, now); err != nil {
				return err
			}
		}

		method := input.Method
		if method == "" {
			method = "manual"
		}
		ts.ClockOut = &now
		ts.ClockOutMethod = method
		ts.Status = constants.TIMESHEET_SUBMITTED
		if input.Notes != "" {
			ts.Notes = input.Notes
		}
		return tx.Omit(clause.Associations).Save(ts).Error
	})
	if err != nil {
		return nil, err
	}
	realtime.Emit(restaurantID, constants.EVENT_STAFF_CLOCK_OUT, map[string]any{
		"staffId":     staffID,
		"timesheetId": ts.ID,
		"clockOut":    ts.ClockOut,
		"totalHours":  ts.TotalHours,
	})
	return ts, nil
}

func endBreak(tx *gorm.DB, b *model.TimesheetBreak, now time.Time) error {
	b.EndTime = &now
	b.Duration = roundMinutes(now.Sub(b.StartTime))
	return tx.Save(b).Error
}

func roundMinutes(d time.Duration) float64 {
	return float64(d.Round(time.Second)) / float64(time.Minute)
}

func StartBreak(db *gorm.DB, restaurantID, staffID uint, input model.BreakInput, now time.Time) (*model.Timesheet, error) {
	var ts *model.Timesheet
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		ts, err = openTimesheet(tx, restaurantID, staffID)
		if err != nil {
			return err
		}
		if ts == nil {
			return ErrNoActiveClockIn
		}
		if ts.OpenBreak() != nil {
			return ErrBreakAlreadyStarted
		}
		kind := input.Type
		if kind == "" {
			kind = "break"
		}
		b := model.TimesheetBreak{TimesheetID: ts.ID, Type: kind, StartTime: now}
		if err := tx.Create(&b).Error; err != nil {
			return err
		}
		ts.Breaks = append(ts.Breaks, b)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ts, nil
}

func EndBreak(db *gorm.DB, restaurantID, staffID uint, now time.Time) (*model.Timesheet, error) {
	var ts *model.Timesheet
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		ts, err = openTimesheet(tx, restaurantID, staffID)
		if err != nil {
			return err
		}
		if ts == nil {
			return ErrNoActiveClockIn
		}
		b := ts.OpenBreak()
		if b == nil {
			return ErrNoActiveBreak
		}
		return endBreak(tx, b, now)
	})
	if err != nil {
		return nil, err
	}
	return ts, nil
}

// ListTimesheets returns timesheets whose date falls in [from, to], optionally for one staff member.
func ListTimesheets(db *gorm.DB, restaurantID uint, staffID uint, from, to time.Time) ([]model.Timesheet, error) {
	query := db.Preload("Breaks").
		Where("restaurant_id = ? AND date >= ? AND date <= ?", restaurantID, from, to)
	if staffID != 0 {
		query = query.Where("staff_id = ?", staffID)
	}
	var sheets []model.Timesheet
	err := query.Order("clock_in DESC").Find(&sheets).Error
	return sheets, err
}

// CountOnShift counts staff with an open timesheet.
func CountOnShift(db *gorm.DB, restaurantID uint) (int64, error) {
	var n int64
	err := db.Model(&model.Timesheet{}).
		Where("restaurant_id = ? AND clock_out IS NULL", restaurantID).
		Distinct("staff_id").Count(&n).Error
	return n, err
}
