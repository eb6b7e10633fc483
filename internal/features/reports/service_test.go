package reports

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/crimewatch/crimewatch-api/internal/features/auth"
	"github.com/crimewatch/crimewatch-api/internal/features/departments"
	"github.com/crimewatch/crimewatch-api/internal/features/notifications"
	apperrors "github.com/crimewatch/crimewatch-api/pkg/errors"
)

type fakeDepts struct {
	byID map[primitive.ObjectID]*departments.Department
}

func (f *fakeDepts) FindByID(_ context.Context, id primitive.ObjectID) (*departments.Department, error) {
	if d, ok := f.byID[id]; ok {
		return d, nil
	}
	return nil, fmt.Errorf("department not found: %w", apperrors.ErrNotFound)
}

type notifyCall struct {
	kind     string
	message  string
	dept     *primitive.ObjectID
	exclude  *primitive.ObjectID
	reporter *primitive.ObjectID
	notif    string
}

type fakeNotifier struct {
	calls []notifyCall
}

func (f *fakeNotifier) NotifyDepartment(_ context.Context, dept *primitive.ObjectID, _ primitive.ObjectID, message string, exclude *primitive.ObjectID) error {
	f.calls = append(f.calls, notifyCall{kind: "department", message: message, dept: dept, exclude: exclude})
	return nil
}

func (f *fakeNotifier) NotifyReporter(_ context.Context, reporter *primitive.ObjectID, _ *primitive.ObjectID, notifType, _, message string) error {
	f.calls = append(f.calls, notifyCall{kind: "reporter", message: message, reporter: reporter, notif: notifType})
	return nil
}

type fakeStore struct {
	reports map[primitive.ObjectID]*CrimeReport
	updates int
}

func newFakeStore() *fakeStore {
	return &fakeStore{reports: map[primitive.ObjectID]*CrimeReport{}}
}

func (f *fakeStore) Create(_ context.Context, r *CrimeReport) error {
	r.ID = primitive.NewObjectID()
	r.ReportCode = NewReportCode()
	f.reports[r.ID] = r
	return nil
}

func (f *fakeStore) FindByID(_ context.Context, id primitive.ObjectID) (*CrimeReport, error) {
	if r, ok := f.reports[id]; ok {
		return r, nil
	}
	return nil, fmt.Errorf("report not found: %w", apperrors.ErrNotFound)
}

func (f *fakeStore) Update(_ context.Context, id primitive.ObjectID, updates bson.M) (*CrimeReport, error) {
	r, ok := f.reports[id]
	if !ok {
		return nil, fmt.Errorf("report not found: %w", apperrors.ErrNotFound)
	}
	f.updates++
	if s, ok := updates["status"].(string); ok {
		r.Status = s
	}
	if d, ok := updates["departmentId"].(primitive.ObjectID); ok {
		dd := d
		r.DepartmentID = &dd
	}
	return r, nil
}

func newTestService(depts map[primitive.ObjectID]*departments.Department) (*Service, *fakeStore, *fakeNotifier) {
	if depts == nil {
		depts = map[primitive.ObjectID]*departments.Department{}
	}
	store := newFakeStore()
	notifier := &fakeNotifier{}
	svc := &Service{store: store, depts: &fakeDepts{byID: depts}, notifier: notifier}
	return svc, store, notifier
}

func citizen() *auth.User {
	return &auth.User{ID: primitive.NewObjectID(), Role: auth.RoleCitizen}
}

func officerIn(dept primitive.ObjectID) *auth.User {
	return &auth.User{ID: primitive.NewObjectID(), Role: auth.RoleOfficer, DepartmentID: &dept}
}

func admin() *auth.User {
	return &auth.User{ID: primitive.NewObjectID(), Role: auth.RoleAdmin}
}

func seedReport(store *fakeStore, reporter, dept *primitive.ObjectID, status string) *CrimeReport {
	r := &CrimeReport{
		ID:           primitive.NewObjectID(),
		ReportCode:   NewReportCode(),
		ReporterID:   reporter,
		DepartmentID: dept,
		Title:        "Stolen bike",
		IncidentType: IncidentTheft,
		Priority:     PriorityMedium,
		Status:       status,
	}
	store.reports[r.ID] = r
	return r
}

func validCreate() *CreateReportRequest {
	return &CreateReportRequest{
		Title:        "Stolen bike",
		Description:  "Bike taken from the rack outside the station",
		Location:     "Central Station",
		IncidentType: IncidentTheft,
	}
}

func TestCreate_CitizenDefaults(t *testing.T) {
	deptID := primitive.NewObjectID()
	svc, _, notifier := newTestService(map[primitive.ObjectID]*departments.Department{
		deptID: {ID: deptID, Name: "Central"},
	})
	cit := citizen()

	req := validCreate()
	req.DepartmentID = deptID.Hex()
	report, err := svc.Create(context.Background(), cit, req)
	require.NoError(t, err)

	require.Equal(t, StatusPending, report.Status)
	require.Equal(t, PriorityMedium, report.Priority)
	require.Equal(t, cit.ID, *report.ReporterID)
	require.Equal(t, deptID, *report.DepartmentID)
	require.Regexp(t, `^CR-[A-F0-9]{8}$`, report.ReportCode)

	require.Len(t, notifier.calls, 1)
	call := notifier.calls[0]
	require.Equal(t, "department", call.kind)
	require.Equal(t, deptID, *call.dept)
	require.Nil(t, call.exclude)
	require.Equal(t, "New crime reported: "+report.ReportCode, call.message)
}

func TestCreate_OfficerDepartmentForced(t *testing.T) {
	ownDept := primitive.NewObjectID()
	otherDept := primitive.NewObjectID()
	svc, _, notifier := newTestService(map[primitive.ObjectID]*departments.Department{
		ownDept:   {ID: ownDept, Name: "Central"},
		otherDept: {ID: otherDept, Name: "North"},
	})
	off := officerIn(ownDept)

	// The payload names another department; the officer's own wins.
	req := validCreate()
	req.DepartmentID = otherDept.Hex()
	report, err := svc.Create(context.Background(), off, req)
	require.NoError(t, err)
	require.Equal(t, ownDept, *report.DepartmentID)

	// The acting officer is excluded from the fan-out.
	require.Len(t, notifier.calls, 1)
	require.Equal(t, off.ID, *notifier.calls[0].exclude)
}

func TestCreate_UnknownIncidentTypeRejected(t *testing.T) {
	svc, _, _ := newTestService(nil)

	req := validCreate()
	req.IncidentType = "JAYWALKING"
	_, err := svc.Create(context.Background(), citizen(), req)
	require.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCreate_UnknownPriorityRejected(t *testing.T) {
	svc, _, _ := newTestService(nil)

	req := validCreate()
	req.Priority = "Critical"
	_, err := svc.Create(context.Background(), citizen(), req)
	require.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCreate_BadDepartmentIDRejected(t *testing.T) {
	svc, _, _ := newTestService(nil)

	req := validCreate()
	req.DepartmentID = "not-an-object-id"
	_, err := svc.Create(context.Background(), citizen(), req)
	require.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCreate_UnknownDepartmentRejected(t *testing.T) {
	svc, _, _ := newTestService(nil)

	req := validCreate()
	req.DepartmentID = primitive.NewObjectID().Hex()
	_, err := svc.Create(context.Background(), citizen(), req)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestChangeStatus_EmptyStatusRejected(t *testing.T) {
	svc, _, notifier := newTestService(nil)

	_, err := svc.ChangeStatus(context.Background(), admin(), primitive.NewObjectID(), "   ")
	require.ErrorIs(t, err, apperrors.ErrValidation)
	require.Empty(t, notifier.calls)
}

func TestChangeStatus_UnknownStatusRejected(t *testing.T) {
	svc, _, notifier := newTestService(nil)

	_, err := svc.ChangeStatus(context.Background(), admin(), primitive.NewObjectID(), "Escalated")
	require.ErrorIs(t, err, apperrors.ErrValidation)
	require.Empty(t, notifier.calls)
}

func TestChangeStatus_SameStatusIsNoop(t *testing.T) {
	svc, store, notifier := newTestService(nil)
	dept := primitive.NewObjectID()
	report := seedReport(store, nil, &dept, StatusPending)

	got, err := svc.ChangeStatus(context.Background(), admin(), report.ID, StatusPending)
	require.NoError(t, err)
	require.Equal(t, StatusPending, got.Status)
	require.Zero(t, store.updates, "no-op change must not write")
	require.Empty(t, notifier.calls, "no-op change must notify nobody")
}

func TestChangeStatus_NotifiesReporterAndDepartment(t *testing.T) {
	svc, store, notifier := newTestService(nil)
	dept := primitive.NewObjectID()
	reporter := primitive.NewObjectID()
	report := seedReport(store, &reporter, &dept, StatusPending)
	off := officerIn(dept)

	got, err := svc.ChangeStatus(context.Background(), off, report.ID, StatusResolved)
	require.NoError(t, err)
	require.Equal(t, StatusResolved, got.Status)

	require.Len(t, notifier.calls, 2)

	require.Equal(t, "reporter", notifier.calls[0].kind)
	require.Equal(t, reporter, *notifier.calls[0].reporter)
	require.Equal(t, notifications.CitizenTypeStatusUpdate, notifier.calls[0].notif)
	require.Contains(t, notifier.calls[0].message, report.ReportCode)
	require.Contains(t, notifier.calls[0].message, StatusResolved)

	require.Equal(t, "department", notifier.calls[1].kind)
	require.Equal(t, dept, *notifier.calls[1].dept)
	require.Equal(t, off.ID, *notifier.calls[1].exclude)
}

func TestChangeStatus_WrongDepartmentLeavesReportUnchanged(t *testing.T) {
	svc, store, notifier := newTestService(nil)
	deptA := primitive.NewObjectID()
	deptB := primitive.NewObjectID()
	report := seedReport(store, nil, &deptB, StatusPending)

	_, err := svc.ChangeStatus(context.Background(), officerIn(deptA), report.ID, StatusResolved)
	require.ErrorIs(t, err, apperrors.ErrForbidden)
	require.Equal(t, StatusPending, store.reports[report.ID].Status)
	require.Empty(t, notifier.calls)
}

func TestReassignDepartment(t *testing.T) {
	deptA := primitive.NewObjectID()
	deptB := primitive.NewObjectID()
	svc, store, notifier := newTestService(map[primitive.ObjectID]*departments.Department{
		deptA: {ID: deptA, Name: "Central"},
		deptB: {ID: deptB, Name: "North"},
	})
	reporter := primitive.NewObjectID()
	report := seedReport(store, &reporter, &deptA, StatusPending)

	got, err := svc.ReassignDepartment(context.Background(), admin(), report.ID, deptB)
	require.NoError(t, err)
	require.Equal(t, deptB, *got.DepartmentID)

	require.Len(t, notifier.calls, 2)
	require.Equal(t, "department", notifier.calls[0].kind)
	require.Equal(t, deptB, *notifier.calls[0].dept)
	require.Equal(t, "New case assigned: "+report.ReportCode, notifier.calls[0].message)

	require.Equal(t, "reporter", notifier.calls[1].kind)
	require.Equal(t, notifications.CitizenTypeAssignment, notifier.calls[1].notif)
	require.Equal(t, "Central → North", notifier.calls[1].message)
}

func TestReassignDepartment_FromUnassigned(t *testing.T) {
	deptB := primitive.NewObjectID()
	svc, store, notifier := newTestService(map[primitive.ObjectID]*departments.Department{
		deptB: {ID: deptB, Name: "North"},
	})
	reporter := primitive.NewObjectID()
	report := seedReport(store, &reporter, nil, StatusPending)

	_, err := svc.ReassignDepartment(context.Background(), admin(), report.ID, deptB)
	require.NoError(t, err)
	require.Equal(t, "Unassigned → North", notifier.calls[1].message)
}

func TestReassignDepartment_SameDepartmentIsNoop(t *testing.T) {
	dept := primitive.NewObjectID()
	svc, store, notifier := newTestService(map[primitive.ObjectID]*departments.Department{
		dept: {ID: dept, Name: "Central"},
	})
	report := seedReport(store, nil, &dept, StatusPending)

	got, err := svc.ReassignDepartment(context.Background(), admin(), report.ID, dept)
	require.NoError(t, err)
	require.Equal(t, dept, *got.DepartmentID)
	require.Zero(t, store.updates)
	require.Empty(t, notifier.calls)
}

func TestReassignDepartment_NonAdminForbidden(t *testing.T) {
	dept := primitive.NewObjectID()
	svc, _, notifier := newTestService(nil)

	_, err := svc.ReassignDepartment(context.Background(), officerIn(dept), primitive.NewObjectID(), dept)
	require.ErrorIs(t, err, apperrors.ErrForbidden)
	require.Empty(t, notifier.calls)
}

func TestGetForActor_CitizenOwnOnly(t *testing.T) {
	svc, store, _ := newTestService(nil)
	owner := citizen()
	report := seedReport(store, &owner.ID, nil, StatusPending)

	got, err := svc.GetForActor(context.Background(), owner, report.ID)
	require.NoError(t, err)
	require.Equal(t, report.ID, got.ID)

	_, err = svc.GetForActor(context.Background(), citizen(), report.ID)
	require.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestGetForActor_OfficerDepartmentScoped(t *testing.T) {
	svc, store, _ := newTestService(nil)
	deptA := primitive.NewObjectID()
	deptB := primitive.NewObjectID()
	report := seedReport(store, nil, &deptA, StatusPending)

	_, err := svc.GetForActor(context.Background(), officerIn(deptA), report.ID)
	require.NoError(t, err)

	_, err = svc.GetForActor(context.Background(), officerIn(deptB), report.ID)
	require.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = svc.GetForActor(context.Background(), admin(), report.ID)
	require.NoError(t, err)
}

func TestAuthorizeManage(t *testing.T) {
	svc, _, _ := newTestService(nil)
	dept := primitive.NewObjectID()
	otherDept := primitive.NewObjectID()
	report := &CrimeReport{DepartmentID: &dept}

	require.NoError(t, svc.authorizeManage(admin(), report))
	require.NoError(t, svc.authorizeManage(officerIn(dept), report))

	require.ErrorIs(t, svc.authorizeManage(officerIn(otherDept), report), apperrors.ErrForbidden)
	require.ErrorIs(t, svc.authorizeManage(citizen(), report), apperrors.ErrForbidden)

	// Officer without a department cannot manage anything.
	noDept := &auth.User{ID: primitive.NewObjectID(), Role: auth.RoleOfficer}
	require.ErrorIs(t, svc.authorizeManage(noDept, report), apperrors.ErrForbidden)

	// Neither can an officer touch an unassigned report.
	require.ErrorIs(t, svc.authorizeManage(officerIn(dept), &CrimeReport{}), apperrors.ErrForbidden)
}

func TestScopeFor(t *testing.T) {
	svc, _, _ := newTestService(nil)
	dept := primitive.NewObjectID()

	require.Equal(t, bson.M{}, svc.ScopeFor(admin()))
	require.Equal(t, bson.M{"departmentId": dept}, svc.ScopeFor(officerIn(dept)))

	cit := citizen()
	require.Equal(t, bson.M{"reporterId": cit.ID}, svc.ScopeFor(cit))

	// An officer with no department gets a filter that matches nothing.
	noDept := &auth.User{ID: primitive.NewObjectID(), Role: auth.RoleOfficer}
	require.Equal(t, bson.M{"departmentId": primitive.NilObjectID}, svc.ScopeFor(noDept))
}

func TestEvidenceFromInput(t *testing.T) {
	require.Nil(t, evidenceFromInput(nil))

	got := evidenceFromInput(&EvidenceInput{
		URL:      "https://res.cloudinary.com/demo/image/upload/v1/evidence/a.jpg",
		PublicID: "evidence/a",
		FileSize: 2048,
		Format:   "jpg",
	})
	require.Equal(t, "evidence/a", got.PublicID)
	require.Equal(t, int64(2048), got.FileSize)
}
