package helper

import (
	"testing"
	"time"

	"restaurant_manager/constants"
	"restaurant_manager/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStaff(t *testing.T, f *fixture, employeeID string) *model.Staff {
	t.Helper()
	s, err := CreateStaff(f.db, f.restaurant.ID, model.StaffInput{
		EmployeeID: employeeID,
		Name:       "Marco",
		Role:       "chef",
		Department: "kitchen",
		HourlyRate: 20,
	}, testNow)
	require.NoError(t, err)
	return s
}

func TestCreateStaffUniqueEmployeeID(t *testing.T) {
	f := newFixture(t)
	s := newStaff(t, f, "E-01")
	assert.Equal(t, constants.STAFF_ACTIVE, s.Status)
	assert.Equal(t, testNow, s.HireDate)

	_, err := CreateStaff(f.db, f.restaurant.ID, model.StaffInput{EmployeeID: "E-01", Name: "Copy", Role: "server", Department: "front-of-house"}, testNow)
	assert.ErrorIs(t, err, ErrEmployeeIDTaken)

	other := f.otherRestaurant(t)
	_, err = CreateStaff(f.db, other.ID, model.StaffInput{EmployeeID: "E-01", Name: "Elsewhere", Role: "server", Department: "front-of-house"}, testNow)
	assert.NoError(t, err)
}

func TestShiftWithBreakAndOvertime(t *testing.T) {
	f := newFixture(t)
	s := newStaff(t, f, "E-01")
	start := time.Date(2026, time.March, 14, 9, 0, 0, 0, time.UTC)

	ts, err := ClockIn(f.db, f.restaurant.ID, s.ID, model.ClockInput{}, start)
	require.NoError(t, err)
	assert.Equal(t, "manual", ts.ClockInMethod)
	assert.Equal(t, constants.TIMESHEET_DRAFT, ts.Status)

	_, err = ClockIn(f.db, f.restaurant.ID, s.ID, model.ClockInput{}, start.Add(time.Minute))
	assert.ErrorIs(t, err, ErrAlreadyClockedIn)

	onShift, err := CountOnShift(f.db, f.restaurant.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, onShift)

	_, err = StartBreak(f.db, f.restaurant.ID, s.ID, model.BreakInput{Type: "lunch"}, start.Add(3*time.Hour))
	require.NoError(t, err)
	_, err = StartBreak(f.db, f.restaurant.ID, s.ID, model.BreakInput{}, start.Add(3*time.Hour+time.Minute))
	assert.ErrorIs(t, err, ErrBreakAlreadyStarted)

	ts, err = EndBreak(f.db, f.restaurant.ID, s.ID, start.Add(3*time.Hour+30*time.Minute))
	require.NoError(t, err)
	require.Len(t, ts.Breaks, 1)
	assert.Equal(t, 30.0, ts.Breaks[0].Duration)

	_, err = EndBreak(f.db, f.restaurant.ID, s.ID, start.Add(4*time.Hour))
	assert.ErrorIs(t, err, ErrNoActiveBreak)

	ts, err = ClockOut(f.db, f.restaurant.ID, s.ID, model.ClockInput{Method: "mobile"}, start.Add(10*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 9.5, ts.TotalHours)
	assert.Equal(t, 8.0, ts.RegularHours)
	assert.Equal(t, 1.5, ts.OvertimeHours)
	assert.Equal(t, constants.TIMESHEET_SUBMITTED, ts.Status)

	_, err = ClockOut(f.db, f.restaurant.ID, s.ID, model.ClockInput{}, start.Add(11*time.Hour))
	assert.ErrorIs(t, err, ErrNoActiveClockIn)
}

func TestClockOutEndsOpenBreak(t *testing.T) {
	f := newFixture(t)
	s := newStaff(t, f, "E-01")
	start := time.Date(2026, time.March, 14, 9, 0, 0, 0, time.UTC)

	_, err := ClockIn(f.db, f.restaurant.ID, s.ID, model.ClockInput{}, start)
	require.NoError(t, err)
	_, err = StartBreak(f.db, f.restaurant.ID, s.ID, model.BreakInput{}, start.Add(3*time.Hour))
	require.NoError(t, err)

	ts, err := ClockOut(f.db, f.restaurant.ID, s.ID, model.ClockInput{}, start.Add(4*time.Hour))
	require.NoError(t, err)
	require.NotNil(t, ts.Breaks[0].EndTime)
	assert.Equal(t, 3.0, ts.TotalHours)
	assert.Zero(t, ts.OvertimeHours)
}

func TestTerminatedStaffCannotClockIn(t *testing.T) {
	f := newFixture(t)
	s := newStaff(t, f, "E-01")

	require.NoError(t, TerminateStaff(f.db, f.restaurant.ID, s.ID))
	_, err := ClockIn(f.db, f.restaurant.ID, s.ID, model.ClockInput{}, testNow)
	assert.ErrorIs(t, err, ErrStaffInactive)

	listed, err := ListStaff(f.db, f.restaurant.ID, model.StaffFilter{})
	require.NoError(t, err)
	assert.Empty(t, listed)

	terminated, err := ListStaff(f.db, f.restaurant.ID, model.StaffFilter{Status: constants.STAFF_TERMINATED})
	require.NoError(t, err)
	assert.Len(t, terminated, 1)
}

func TestStaffHoursReportLaborCost(t *testing.T) {
	f := newFixture(t)
	s := newStaff(t, f, "E-01")
	start := time.Date(2026, time.March, 14, 8, 0, 0, 0, time.UTC)

	_, err := ClockIn(f.db, f.restaurant.ID, s.ID, model.ClockInput{}, start)
	require.NoError(t, err)
	_, err = ClockOut(f.db, f.restaurant.ID, s.ID, model.ClockInput{}, start.Add(10*time.Hour))
	require.NoError(t, err)

	rows, err := StaffHoursReport(f.db, f.restaurant.ID, start.AddDate(0, 0, -1), start.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 10.0, rows[0].TotalHours)
	assert.Equal(t, 2.0, rows[0].OvertimeHours)
	// 8h * 20 + 2h * 20 * 1.5
	assert.Equal(t, 220.0, rows[0].LaborCost)
}
