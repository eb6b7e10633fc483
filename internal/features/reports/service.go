package reports

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/crimewatch/crimewatch-api/internal/features/auth"
	"github.com/crimewatch/crimewatch-api/internal/features/departments"
	"github.com/crimewatch/crimewatch-api/internal/features/notifications"
	"github.com/crimewatch/crimewatch-api/internal/pkg/logger"
	apperrors "github.com/crimewatch/crimewatch-api/pkg/errors"
)

// Notifier is the slice of the notifications service the report
// lifecycle needs. Fan-out failures never fail the report operation
// itself, they are logged and the response goes out regardless.
type Notifier interface {
	NotifyDepartment(ctx context.Context, departmentID *primitive.ObjectID, reportID primitive.ObjectID, message string, exclude *primitive.ObjectID) error
	NotifyReporter(ctx context.Context, reporterID *primitive.ObjectID, reportID *primitive.ObjectID, notifType, title, message string) error
}

// DepartmentLookup resolves department names for assignment messages.
type DepartmentLookup interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*departments.Department, error)
}

// store is the slice of the repository the lifecycle methods touch.
type store interface {
	Create(ctx context.Context, report *CrimeReport) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*CrimeReport, error)
	Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (*CrimeReport, error)
}

// Service owns the report lifecycle: creation, status changes and
// department reassignment, with the notification fan-out each of those
// triggers.
type Service struct {
	repo     *Repository
	store    store
	depts    DepartmentLookup
	notifier Notifier
}

func NewService(repo *Repository, depts DepartmentLookup, notifier Notifier) *Service {
	return &Service{repo: repo, store: repo, depts: depts, notifier: notifier}
}

// Create files a new report for the actor. Officers always file into
// their own department; any department in the payload is ignored for
// them. Citizens may optionally target a department.
func (s *Service) Create(ctx context.Context, actor *auth.User, req *CreateReportRequest) (*CrimeReport, error) {
	if !IsValidIncidentType(req.IncidentType) {
		return nil, fmt.Errorf("unknown incident type %q: %w", req.IncidentType, apperrors.ErrValidation)
	}

	priority := req.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	if !IsValidPriority(priority) {
		return nil, fmt.Errorf("unknown priority %q: %w", priority, apperrors.ErrValidation)
	}

	var departmentID *primitive.ObjectID
	if actor.IsOfficer() {
		departmentID = actor.DepartmentID
	} else if req.DepartmentID != "" {
		id, err := primitive.ObjectIDFromHex(req.DepartmentID)
		if err != nil {
			return nil, fmt.Errorf("invalid department id: %w", apperrors.ErrValidation)
		}
		if _, err := s.depts.FindByID(ctx, id); err != nil {
			return nil, err
		}
		departmentID = &id
	}

	report := &CrimeReport{
		ReporterID:   &actor.ID,
		DepartmentID: departmentID,
		Title:        strings.TrimSpace(req.Title),
		Description:  strings.TrimSpace(req.Description),
		Location:     strings.TrimSpace(req.Location),
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		IncidentType: req.IncidentType,
		Priority:     priority,
		Status:       StatusPending,
		Image:        evidenceFromInput(req.Image),
		Video:        evidenceFromInput(req.Video),
		Audio:        evidenceFromInput(req.Audio),
	}

	if err := s.store.Create(ctx, report); err != nil {
		return nil, err
	}

	var exclude *primitive.ObjectID
	if actor.IsOfficer() {
		exclude = &actor.ID
	}
	if err := s.notifier.NotifyDepartment(ctx, report.DepartmentID, report.ID, "New crime reported: "+report.ReportCode, exclude); err != nil {
		logger.Warn("Fan-out for new report %s failed: %v", report.ReportCode, err)
	}

	return report, nil
}

// ChangeStatus moves a report to a new status. Admins may change any
// report; officers only reports assigned to their own department. A
// change to the current status succeeds without writing or notifying.
func (s *Service) ChangeStatus(ctx context.Context, actor *auth.User, reportID primitive.ObjectID, newStatus string) (*CrimeReport, error) {
	newStatus = strings.TrimSpace(newStatus)
	if newStatus == "" {
		return nil, fmt.Errorf("status is required: %w", apperrors.ErrValidation)
	}
	if !IsValidStatus(newStatus) {
		return nil, fmt.Errorf("unknown status %q: %w", newStatus, apperrors.ErrValidation)
	}

	report, err := s.store.FindByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeManage(actor, report); err != nil {
		return nil, err
	}

	if report.Status == newStatus {
		// No-op change: report back success, notify nobody.
		return report, nil
	}

	updated, err := s.store.Update(ctx, reportID, bson.M{"status": newStatus})
	if err != nil {
		return nil, err
	}

	if err := s.notifier.NotifyReporter(ctx, updated.ReporterID, &updated.ID,
		notifications.CitizenTypeStatusUpdate,
		"Report status updated",
		fmt.Sprintf("Your report %s is now %s", updated.ReportCode, newStatus),
	); err != nil {
		logger.Warn("Reporter notification for %s failed: %v", updated.ReportCode, err)
	}
	if err := s.notifier.NotifyDepartment(ctx, updated.DepartmentID, updated.ID,
		fmt.Sprintf("Report %s status changed to %s", updated.ReportCode, newStatus),
		&actor.ID,
	); err != nil {
		logger.Warn("Department notification for %s failed: %v", updated.ReportCode, err)
	}

	return updated, nil
}

// ReassignDepartment moves a report to another department. Admin only.
// Reassigning to the department the report is already in is a silent
// success with no fan-out.
func (s *Service) ReassignDepartment(ctx context.Context, actor *auth.User, reportID, newDeptID primitive.ObjectID) (*CrimeReport, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("only admins can reassign reports: %w", apperrors.ErrForbidden)
	}

	newDept, err := s.depts.FindByID(ctx, newDeptID)
	if err != nil {
		return nil, err
	}

	report, err := s.store.FindByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if report.DepartmentID != nil && *report.DepartmentID == newDeptID {
		return report, nil
	}

	oldName := "Unassigned"
	if report.DepartmentID != nil {
		if old, err := s.depts.FindByID(ctx, *report.DepartmentID); err == nil {
			oldName = old.Name
		}
	}

	updated, err := s.store.Update(ctx, reportID, bson.M{"departmentId": newDeptID})
	if err != nil {
		return nil, err
	}

	if err := s.notifier.NotifyDepartment(ctx, &newDeptID, updated.ID,
		"New case assigned: "+updated.ReportCode, nil,
	); err != nil {
		logger.Warn("Department notification for %s failed: %v", updated.ReportCode, err)
	}
	if err := s.notifier.NotifyReporter(ctx, updated.ReporterID, &updated.ID,
		notifications.CitizenTypeAssignment,
		"Report reassigned",
		fmt.Sprintf("%s → %s", oldName, newDept.Name),
	); err != nil {
		logger.Warn("Reporter notification for %s failed: %v", updated.ReportCode, err)
	}

	return updated, nil
}

// GetForActor loads a report, enforcing who may see it: admins see
// everything, officers see their department's cases, citizens see only
// their own reports.
func (s *Service) GetForActor(ctx context.Context, actor *auth.User, reportID primitive.ObjectID) (*CrimeReport, error) {
	report, err := s.store.FindByID(ctx, reportID)
	if err != nil {
		return nil, err
	}

	switch {
	case actor.IsAdmin():
		return report, nil
	case actor.IsOfficer():
		if err := s.authorizeManage(actor, report); err != nil {
			return nil, err
		}
		return report, nil
	default:
		if report.ReporterID == nil || *report.ReporterID != actor.ID {
			return nil, fmt.Errorf("you can only view your own reports: %w", apperrors.ErrForbidden)
		}
		return report, nil
	}
}

// ScopeFor returns the list filter for the actor's role.
func (s *Service) ScopeFor(actor *auth.User) bson.M {
	switch {
	case actor.IsAdmin():
		return bson.M{}
	case actor.IsOfficer():
		if actor.DepartmentID == nil {
			// An officer without a department sees nothing rather
			// than everything.
			return bson.M{"departmentId": primitive.NilObjectID}
		}
		return bson.M{"departmentId": *actor.DepartmentID}
	default:
		return bson.M{"reporterId": actor.ID}
	}
}

func (s *Service) Repository() *Repository { return s.repo }

// authorizeManage checks whether the actor may change this report.
func (s *Service) authorizeManage(actor *auth.User, report *CrimeReport) error {
	if actor.IsAdmin() {
		return nil
	}
	if !actor.IsOfficer() {
		return fmt.Errorf("insufficient permissions: %w", apperrors.ErrForbidden)
	}
	if actor.DepartmentID == nil || report.DepartmentID == nil || *actor.DepartmentID != *report.DepartmentID {
		return fmt.Errorf("report belongs to another department: %w", apperrors.ErrForbidden)
	}
	return nil
}

func evidenceFromInput(in *EvidenceInput) *Evidence {
	if in == nil {
		return nil
	}
	return &Evidence{
		URL:      in.URL,
		PublicID: in.PublicID,
		FileSize: in.FileSize,
		Format:   in.Format,
	}
}
