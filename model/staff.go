package model

import (
	"math"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type StaffPermissions struct {
	CanManageOrders    bool `json:"canManageOrders"`
	CanManageMenu      bool `json:"canManageMenu"`
	CanManageStaff     bool `json:"canManageStaff"`
	CanViewReports     bool `json:"canViewReports"`
	CanManageInventory bool `json:"canManageInventory"`
	CanProcessPayments bool `json:"canProcessPayments"`
}

type Shift struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	IsWorking bool   `json:"isWorking"`
}

// WeeklySchedule is keyed by lowercase weekday name.
type WeeklySchedule map[string]Shift

type Staff struct {
	DTO
	RestaurantID uint                               `gorm:"uniqueIndex:idx_staff_employee" json:"restaurantId"`
	EmployeeID   string                             `gorm:"uniqueIndex:idx_staff_employee;size:40" json:"employeeId"`
	Name         string                             `json:"name"`
	Email        string                             `json:"email"`
	Phone        string                             `json:"phone"`
	Role         string                             `json:"role"`
	Department   string                             `json:"department"`
	HourlyRate   float64                            `json:"hourlyRate"`
	Status       string                             `gorm:"index" json:"status"`
	HireDate     time.Time                          `json:"hireDate"`
	Permissions  StaffPermissions                   `gorm:"embedded;embeddedPrefix:perm_" json:"permissions"`
	Schedule     datatypes.JSONType[WeeklySchedule] `json:"schedule"`
}

type TimesheetBreak struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	TimesheetID uint       `gorm:"index" json:"timesheetId"`
	Type        string     `json:"type"`
	StartTime   time.Time  `json:"startTime"`
	EndTime     *time.Time `json:"endTime"`
	Duration    float64    `json:"duration"` // minutes
}

type Timesheet struct {
	DTO
	RestaurantID   uint             `gorm:"index" json:"restaurantId"`
	StaffID        uint             `gorm:"index" json:"staffId"`
	Date           time.Time        `gorm:"index" json:"date"`
	ClockIn        time.Time        `json:"clockIn"`
	ClockInMethod  string           `json:"clockInMethod"`
	ClockOut       *time.Time       `json:"clockOut"`
	ClockOutMethod string           `json:"clockOutMethod"`
	Breaks         []TimesheetBreak `gorm:"foreignKey:TimesheetID" json:"breaks"`
	TotalHours     float64          `json:"totalHours"`
	RegularHours   float64          `json:"regularHours"`
	OvertimeHours  float64          `json:"overtimeHours"`
	Status         string           `json:"status"`
	Notes          string           `json:"notes"`
}

// ComputeHours derives total, regular and overtime hours from the clock and closed breaks.
// Open timesheets have zero hours.
func (t *Timesheet) ComputeHours() {
	if t.ClockOut == nil {
		t.TotalHours, t.RegularHours, t.OvertimeHours = 0, 0, 0
		return
	}
	worked := t.ClockOut.Sub(t.ClockIn)
	for _, b := range t.Breaks {
		if b.EndTime != nil {
			worked -= b.EndTime.Sub(b.StartTime)
		}
	}
	total := worked.Hours()
	if total < 0 {
		total = 0
	}
	t.TotalHours = roundHours(total)
	t.RegularHours = roundHours(min(total, 8))
	t.OvertimeHours = roundHours(max(total-8, 0))
}

func (t *Timesheet) BeforeSave(tx *gorm.DB) error {
	t.ComputeHours()
	return nil
}

// OpenBreak returns the break that has not ended yet, if any.
func (t *Timesheet) OpenBreak() *TimesheetBreak {
	for i := range t.Breaks {
		if t.Breaks[i].EndTime == nil {
			return &t.Breaks[i]
		}
	}
	return nil
}

func roundHours(h float64) float64 {
	return math.Round(h*100) / 100
}

type StaffInput struct {
	EmployeeID  string           `json:"employeeId" validate:"required,max=40"`
	Name        string           `json:"name" validate:"required,max=100"`
	Email       string           `json:"email" validate:"omitempty,email"`
	Phone       string           `json:"phone" validate:"omitempty,min=6,max=20"`
	Role        string           `json:"role" validate:"required,oneof=manager chef server cashier cleaner delivery"`
	Department  string           `json:"department" validate:"required,oneof=kitchen front-of-house management delivery"`
	HourlyRate  float64          `json:"hourlyRate" validate:"gte=0"`
	HireDate    *time.Time       `json:"hireDate"`
	Permissions StaffPermissions `json:"permissions"`
	Schedule    WeeklySchedule   `json:"schedule"`
}

type UpdateStaffInput struct {
	Name        *string           `json:"name" validate:"omitempty,max=100"`
	Email       *string           `json:"email" validate:"omitempty,email"`
	Phone       *string           `json:"phone" validate:"omitempty,min=6,max=20"`
	Role        *string           `json:"role" validate:"omitempty,oneof=manager chef server cashier cleaner delivery"`
	Department  *string           `json:"department" validate:"omitempty,oneof=kitchen front-of-house management delivery"`
	HourlyRate  *float64          `json:"hourlyRate" validate:"omitempty,gte=0"`
	Status      *string           `json:"status" validate:"omitempty,oneof=active inactive on_leave terminated"`
	Permissions *StaffPermissions `json:"permissions"`
	Schedule    WeeklySchedule    `json:"schedule"`
}

type ClockInput struct {
	Method string `json:"method" validate:"omitempty,oneof=manual mobile biometric"`
	Notes  string `json:"notes" validate:"max=500"`
}

type BreakInput struct {
	Type string `json:"type" validate:"omitempty,oneof=lunch break personal"`
}

type StaffFilter struct {
	Role       string `query:"role"`
	Department string `query:"department"`
	Status     string `query:"status"`
	Search     string `query:"search"`
}
