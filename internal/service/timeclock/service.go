package timeclock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/didacticiel/Gpresence/internal/domain/employee"
	"github.com/didacticiel/Gpresence/internal/domain/presence"
	"github.com/didacticiel/Gpresence/internal/domain/user"
	"github.com/didacticiel/Gpresence/internal/pkg/database"
	"github.com/didacticiel/Gpresence/internal/pkg/dateonly"
)

// TimeLayout is the wire format of heure_arrivee and heure_sortie.
const TimeLayout = "15:04:05"

type TimeClockServiceImpl struct {
	tx database.Transactor
	presence.Repository
	employee.EmployeeRepository
	now func() time.Time
}

func NewTimeClockService(tx database.Transactor, presenceRepository presence.Repository, employeeRepository employee.EmployeeRepository, now func() time.Time) presence.TimeClock {
	if now == nil {
		now = time.Now
	}
	return &TimeClockServiceImpl{
		tx:                 tx,
		Repository:         presenceRepository,
		EmployeeRepository: employeeRepository,
		now:                now,
	}
}

func (s *TimeClockServiceImpl) today() dateonly.Date {
	return dateonly.NewDate(s.now())
}

// List implements presence.TimeClock. Callers without presence.view_all only
// see their own records.
func (s *TimeClockServiceImpl) List(ctx context.Context, caller user.Identity, filter presence.Filter) ([]presence.Record, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	listFilter := presence.ListFilter{Filter: filter}
	switch {
	case caller.Can(user.PermissionPresenceViewAll):
	case caller.Can(user.PermissionPresenceViewOwn):
		listFilter.OwnerUserID = &caller.ID
	default:
		return nil, user.ErrInsufficientPermissions
	}

	records, err := s.Repository.List(ctx, listFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list presences: %w", err)
	}
	return records, nil
}

func (s *TimeClockServiceImpl) ownEmployee(ctx context.Context, caller user.Identity) (employee.Employee, error) {
	if !caller.Can(user.PermissionPresenceSelfService) {
		return employee.Employee{}, presence.ErrSelfServiceStaffOnly
	}
	emp, err := s.EmployeeRepository.GetByUserID(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.Employee{}, presence.ErrNoEmployeeProfile
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee profile: %w", err)
	}
	return emp, nil
}

// GetOwn implements presence.TimeClock.
func (s *TimeClockServiceImpl) GetOwn(ctx context.Context, caller user.Identity) (presence.Record, error) {
	emp, err := s.ownEmployee(ctx, caller)
	if err != nil {
		return presence.Record{}, err
	}
	return s.Repository.GetByEmployeeAndDate(ctx, emp.ID, s.today())
}

// CreateOwn implements presence.TimeClock.
func (s *TimeClockServiceImpl) CreateOwn(ctx context.Context, caller user.Identity) (presence.Record, error) {
	emp, err := s.ownEmployee(ctx, caller)
	if err != nil {
		return presence.Record{}, err
	}
	return s.Repository.Create(ctx, presence.Record{
		Employee: presence.EmployeeRef{ID: emp.ID},
		Date:     s.today(),
		Status:   presence.StatusAbsent,
	})
}

// Perform implements presence.TimeClock for the administrative endpoints.
func (s *TimeClockServiceImpl) Perform(ctx context.Context, caller user.Identity, recordID int64, action presence.Action) (presence.Record, error) {
	if !caller.Can(user.PermissionPresenceManage) {
		return presence.Record{}, user.ErrInsufficientPermissions
	}

	var result presence.Record
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		record, err := s.Repository.GetByID(ctx, recordID)
		if err != nil {
			return err
		}
		result, err = s.apply(ctx, record, action)
		return err
	})
	return result, err
}

// PerformOwn implements presence.TimeClock for the self-service endpoints.
// A check-in opens the day's record when there is none yet.
func (s *TimeClockServiceImpl) PerformOwn(ctx context.Context, caller user.Identity, action presence.Action) (presence.Record, error) {
	emp, err := s.ownEmployee(ctx, caller)
	if err != nil {
		return presence.Record{}, err
	}

	var result presence.Record
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		record, err := s.Repository.GetByEmployeeAndDate(ctx, emp.ID, s.today())
		if errors.Is(err, presence.ErrPresenceNotFound) {
			if action != presence.ActionCheckIn {
				return presence.ErrNotCheckedIn
			}
			record, err = s.Repository.Create(ctx, presence.Record{
				Employee: presence.EmployeeRef{ID: emp.ID},
				Date:     s.today(),
				Status:   presence.StatusAbsent,
			})
		}
		if err != nil {
			return err
		}
		if record.OwnerUserID() != caller.ID {
			return presence.ErrNotOwner
		}
		result, err = s.apply(ctx, record, action)
		return err
	})
	return result, err
}

// apply moves a record along absent -> arrive -> parti.
func (s *TimeClockServiceImpl) apply(ctx context.Context, record presence.Record, action presence.Action) (presence.Record, error) {
	stamp := s.now().Format(TimeLayout)

	switch action {
	case presence.ActionCheckIn:
		if record.HasCheckedIn() {
			return presence.Record{}, presence.ErrAlreadyCheckedIn
		}
		record.CheckInTime = &stamp
		record.Status = presence.StatusArrived
	case presence.ActionCheckOut:
		if !record.HasCheckedIn() {
			return presence.Record{}, presence.ErrNotCheckedIn
		}
		if record.HasCheckedOut() {
			return presence.Record{}, presence.ErrAlreadyCheckedOut
		}
		record.CheckOutTime = &stamp
		record.Status = presence.StatusLeft
	default:
		return presence.Record{}, presence.ErrActionNotPermitted
	}

	if err := s.Repository.Update(ctx, record); err != nil {
		return presence.Record{}, fmt.Errorf("failed to update presence: %w", err)
	}
	return record, nil
}

// OpenDay implements presence.TimeClock.
func (s *TimeClockServiceImpl) OpenDay(ctx context.Context, day dateonly.Date) (int, error) {
	employees, err := s.EmployeeRepository.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list employees: %w", err)
	}

	created := 0
	for _, emp := range employees {
		_, err := s.Repository.Create(ctx, presence.Record{
			Employee: presence.EmployeeRef{ID: emp.ID},
			Date:     day,
			Status:   presence.StatusAbsent,
		})
		switch {
		case err == nil:
			created++
		case errors.Is(err, presence.ErrPresenceExists):
		default:
			slog.Error("failed to open presence", "employee_id", emp.ID, "date", day.String(), "error", err)
		}
	}
	return created, nil
}
