package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arvind/placementdesk/internal/app/models"
	"github.com/arvind/placementdesk/internal/app/models/dto"
	"github.com/arvind/placementdesk/internal/pkg/apperrors"
)

type driveFixture struct {
	users       *fakeUserStore
	drives      *fakeDriveStore
	eligibility *fakeEligibilityStore
	svc         *DriveService
}

func newDriveFixture() *driveFixture {
	users := newFakeUserStore()
	eligibility := newFakeEligibilityStore()
	drives := newFakeDriveStore(eligibility)
	return &driveFixture{
		users:       users,
		drives:      drives,
		eligibility: eligibility,
		svc:         NewDriveService(drives, eligibility, users, zerolog.Nop()),
	}
}

func (f *driveFixture) addStudent(t *testing.T, name, email, department string) *models.User {
	t.Helper()
	student := &models.User{Name: name, Email: email, Role: models.RoleStudent, Department: &department}
	require.NoError(t, f.users.Create(context.Background(), student))
	return student
}

func (f *driveFixture) addDrive(t *testing.T, company, department string) *models.PlacementDrive {
	t.Helper()
	drive, err := f.svc.CreateDrive(context.Background(),
		models.Identity{Role: models.RoleAdmin},
		&dto.CreateDriveRequest{CompanyName: company, Date: "2026-03-12", Department: department})
	require.NoError(t, err)
	return drive
}

func coordinatorIdentity(department string) models.Identity {
	return models.Identity{UserID: 99, Role: models.RoleCoordinator, Department: department}
}

func TestCreateDriveParsesBareDate(t *testing.T) {
	f := newDriveFixture()

	drive, err := f.svc.CreateDrive(context.Background(), coordinatorIdentity("CSE"), &dto.CreateDriveRequest{
		CompanyName: "Infora Systems",
		Date:        "2026-03-12",
		Department:  "CSE",
		Description: "On-campus drive",
	})
	require.NoError(t, err)

	assert.Equal(t, 2026, drive.Date.Year())
	require.NotNil(t, drive.Description)
	assert.Equal(t, "On-campus drive", *drive.Description)
}

func TestCreateDriveCollectsViolations(t *testing.T) {
	f := newDriveFixture()

	_, err := f.svc.CreateDrive(context.Background(), coordinatorIdentity("CSE"), &dto.CreateDriveRequest{
		Date: "not-a-date",
	})

	verr, ok := apperrors.AsValidationError(err)
	require.True(t, ok)
	fields := make(map[string]bool)
	for _, v := range verr.Violations {
		fields[v.Field] = true
	}
	assert.True(t, fields["companyName"])
	assert.True(t, fields["department"])
	assert.True(t, fields["date"])
}

func TestCreateDriveForeignDepartmentForbidden(t *testing.T) {
	f := newDriveFixture()

	_, err := f.svc.CreateDrive(context.Background(), coordinatorIdentity("CSE"), &dto.CreateDriveRequest{
		CompanyName: "Infora Systems",
		Date:        "2026-03-12",
		Department:  "ECE",
	})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestCreateDriveAdminAnyDepartment(t *testing.T) {
	f := newDriveFixture()

	_, err := f.svc.CreateDrive(context.Background(), models.Identity{Role: models.RoleAdmin}, &dto.CreateDriveRequest{
		CompanyName: "Infora Systems",
		Date:        "2026-03-12",
		Department:  "ECE",
	})
	assert.NoError(t, err)
}

func TestSetEligibleStudentsReplacesRoster(t *testing.T) {
	f := newDriveFixture()
	ctx := context.Background()

	s1 := f.addStudent(t, "S1", "s1@college.edu", "CSE")
	s2 := f.addStudent(t, "S2", "s2@college.edu", "CSE")
	s3 := f.addStudent(t, "S3", "s3@college.edu", "CSE")
	drive := f.addDrive(t, "Acme", "CSE")

	require.NoError(t, f.svc.SetEligibleStudents(ctx, drive.ID, []int64{s1.ID, s2.ID}))

	eligible, err := f.eligibility.EligibleIDsForDrive(ctx, drive.ID)
	require.NoError(t, err)
	assert.Equal(t, map[int64]bool{s1.ID: true, s2.ID: true}, eligible)

	// The resubmitted list is authoritative: s1 loses eligibility.
	require.NoError(t, f.svc.SetEligibleStudents(ctx, drive.ID, []int64{s2.ID, s3.ID}))

	eligible, err = f.eligibility.EligibleIDsForDrive(ctx, drive.ID)
	require.NoError(t, err)
	assert.Equal(t, map[int64]bool{s2.ID: true, s3.ID: true}, eligible)
}

func TestSetEligibleStudentsEmptyListClearsRoster(t *testing.T) {
	f := newDriveFixture()
	ctx := context.Background()

	s1 := f.addStudent(t, "S1", "s1@college.edu", "CSE")
	drive := f.addDrive(t, "Acme", "CSE")

	require.NoError(t, f.svc.SetEligibleStudents(ctx, drive.ID, []int64{s1.ID}))
	require.NoError(t, f.svc.SetEligibleStudents(ctx, drive.ID, []int64{}))

	eligible, err := f.eligibility.EligibleIDsForDrive(ctx, drive.ID)
	require.NoError(t, err)
	assert.Empty(t, eligible)
}

func TestSetEligibleStudentsIsIdempotent(t *testing.T) {
	f := newDriveFixture()
	ctx := context.Background()

	s1 := f.addStudent(t, "S1", "s1@college.edu", "CSE")
	s2 := f.addStudent(t, "S2", "s2@college.edu", "CSE")
	drive := f.addDrive(t, "Acme", "CSE")

	ids := []int64{s1.ID, s2.ID}
	require.NoError(t, f.svc.SetEligibleStudents(ctx, drive.ID, ids))
	require.NoError(t, f.svc.SetEligibleStudents(ctx, drive.ID, ids))

	eligible, err := f.eligibility.EligibleIDsForDrive(ctx, drive.ID)
	require.NoError(t, err)
	assert.Len(t, eligible, 2)
}

func TestSetEligibleStudentsUnknownDrive(t *testing.T) {
	f := newDriveFixture()

	err := f.svc.SetEligibleStudents(context.Background(), 404, []int64{1})
	assert.ErrorIs(t, err, apperrors.ErrDriveNotFound)
}

func TestListStudentsAnnotatesEligibility(t *testing.T) {
	f := newDriveFixture()
	ctx := context.Background()

	s1 := f.addStudent(t, "S1", "s1@college.edu", "CSE")
	s2 := f.addStudent(t, "S2", "s2@college.edu", "CSE")
	f.addStudent(t, "Other", "o@college.edu", "ECE")
	drive := f.addDrive(t, "Acme", "CSE")

	require.NoError(t, f.svc.SetEligibleStudents(ctx, drive.ID, []int64{s1.ID}))

	students, err := f.svc.ListStudents(ctx, "CSE", &drive.ID)
	require.NoError(t, err)
	require.Len(t, students, 2)

	byID := make(map[int64]dto.StudentWithEligibility)
	for _, s := range students {
		byID[s.ID] = s
	}
	require.NotNil(t, byID[s1.ID].IsEligible)
	assert.True(t, *byID[s1.ID].IsEligible)
	require.NotNil(t, byID[s2.ID].IsEligible)
	assert.False(t, *byID[s2.ID].IsEligible)
}

func TestListStudentsWithoutDriveOmitsFlag(t *testing.T) {
	f := newDriveFixture()

	f.addStudent(t, "S1", "s1@college.edu", "CSE")

	students, err := f.svc.ListStudents(context.Background(), "CSE", nil)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Nil(t, students[0].IsEligible)
}

func TestListEligibleDrives(t *testing.T) {
	f := newDriveFixture()
	ctx := context.Background()

	s1 := f.addStudent(t, "S1", "s1@college.edu", "CSE")
	d1 := f.addDrive(t, "Acme", "CSE")
	f.addDrive(t, "Globex", "CSE")

	require.NoError(t, f.svc.SetEligibleStudents(ctx, d1.ID, []int64{s1.ID}))

	drives, err := f.svc.ListEligibleDrives(ctx, s1.ID)
	require.NoError(t, err)
	require.Len(t, drives, 1)
	assert.Equal(t, d1.ID, drives[0].ID)
}
