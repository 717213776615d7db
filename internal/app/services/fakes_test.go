package services

import (
	"context"
	"sort"
	"time"

	"github.com/arvind/placementdesk/internal/app/models"
	"github.com/arvind/placementdesk/internal/pkg/apperrors"
)

// In-memory store fakes backing the service tests.

type fakeUserStore struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*models.User), nextID: 1}
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	user.ID = f.nextID
	f.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserStore) EmailExists(_ context.Context, email string) (bool, error) {
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) ListCoordinators(_ context.Context) ([]*models.User, error) {
	var out []*models.User
	for _, u := range f.users {
		if u.Role == models.RoleCoordinator {
			copied := *u
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeUserStore) SetCoordinatorEnabled(_ context.Context, id int64, enabled bool) error {
	u, ok := f.users[id]
	if !ok || u.Role != models.RoleCoordinator {
		return apperrors.ErrUserNotFound
	}
	u.IsEnabled = enabled
	return nil
}

func (f *fakeUserStore) ListStudentsByDepartment(_ context.Context, department string) ([]*models.User, error) {
	var out []*models.User
	for _, u := range f.users {
		if u.Role == models.RoleStudent && u.DepartmentOrEmpty() == department {
			copied := *u
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeUserStore) CountByRole(_ context.Context, role models.Role) (int64, error) {
	var count int64
	for _, u := range f.users {
		if u.Role == role {
			count++
		}
	}
	return count, nil
}

type fakeDriveStore struct {
	drives map[int64]*models.PlacementDrive
	nextID int64

	eligibility *fakeEligibilityStore
}

func newFakeDriveStore(eligibility *fakeEligibilityStore) *fakeDriveStore {
	return &fakeDriveStore{drives: make(map[int64]*models.PlacementDrive), nextID: 1, eligibility: eligibility}
}

func (f *fakeDriveStore) Create(_ context.Context, drive *models.PlacementDrive) error {
	drive.ID = f.nextID
	f.nextID++
	drive.CreatedAt = time.Now()
	copied := *drive
	f.drives[drive.ID] = &copied
	return nil
}

func (f *fakeDriveStore) GetByID(_ context.Context, id int64) (*models.PlacementDrive, error) {
	d, ok := f.drives[id]
	if !ok {
		return nil, apperrors.ErrDriveNotFound
	}
	copied := *d
	return &copied, nil
}

func (f *fakeDriveStore) ListByDepartment(_ context.Context, department string) ([]*models.PlacementDrive, error) {
	var out []*models.PlacementDrive
	for _, d := range f.drives {
		if d.Department == department {
			copied := *d
			if f.eligibility != nil {
				copied.EligibleCount = len(f.eligibility.rosters[d.ID])
			}
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (f *fakeDriveStore) ListEligibleForStudent(_ context.Context, studentID int64) ([]*models.PlacementDrive, error) {
	var out []*models.PlacementDrive
	for driveID, roster := range f.eligibility.rosters {
		if roster[studentID] {
			if d, ok := f.drives[driveID]; ok {
				copied := *d
				out = append(out, &copied)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

type fakeEligibilityStore struct {
	rosters map[int64]map[int64]bool // driveID -> studentID set
}

func newFakeEligibilityStore() *fakeEligibilityStore {
	return &fakeEligibilityStore{rosters: make(map[int64]map[int64]bool)}
}

func (f *fakeEligibilityStore) ReplaceForDrive(_ context.Context, driveID int64, studentIDs []int64) error {
	roster := make(map[int64]bool, len(studentIDs))
	for _, id := range studentIDs {
		roster[id] = true
	}
	f.rosters[driveID] = roster
	return nil
}

func (f *fakeEligibilityStore) EligibleIDsForDrive(_ context.Context, driveID int64) (map[int64]bool, error) {
	out := make(map[int64]bool, len(f.rosters[driveID]))
	for id := range f.rosters[driveID] {
		out[id] = true
	}
	return out, nil
}

type fakeFeedbackStore struct {
	feedbacks map[int64]*models.Feedback
	users     *fakeUserStore
	nextID    int64
}

func newFakeFeedbackStore(users *fakeUserStore) *fakeFeedbackStore {
	return &fakeFeedbackStore{feedbacks: make(map[int64]*models.Feedback), users: users, nextID: 1}
}

func (f *fakeFeedbackStore) CreateWithRounds(_ context.Context, feedback *models.Feedback) error {
	feedback.ID = f.nextID
	f.nextID++
	feedback.CreatedAt = time.Now()
	for i := range feedback.Rounds {
		feedback.Rounds[i].ID = int64(i + 1)
		feedback.Rounds[i].FeedbackID = feedback.ID
	}
	copied := *feedback
	copied.Rounds = append([]models.Round(nil), feedback.Rounds...)
	f.feedbacks[feedback.ID] = &copied
	return nil
}

func (f *fakeFeedbackStore) GetByID(_ context.Context, id int64) (*models.Feedback, error) {
	fb, ok := f.feedbacks[id]
	if !ok {
		return nil, apperrors.ErrFeedbackNotFound
	}
	copied := *fb
	return &copied, nil
}

func (f *fakeFeedbackStore) UpdateStatus(_ context.Context, id int64, status models.FeedbackStatus, remarks *string) error {
	fb, ok := f.feedbacks[id]
	if !ok {
		return apperrors.ErrFeedbackNotFound
	}
	fb.Status = status
	fb.Remarks = remarks
	return nil
}

func (f *fakeFeedbackStore) attachStudent(fb *models.Feedback) {
	if u, ok := f.users.users[fb.StudentID]; ok {
		fb.Student = &models.FeedbackStudent{
			Name:       u.Name,
			Department: u.DepartmentOrEmpty(),
			RollNumber: u.RollNumber,
		}
	}
}

func (f *fakeFeedbackStore) ListApproved(_ context.Context, department, company string) ([]*models.Feedback, error) {
	var out []*models.Feedback
	for _, fb := range f.feedbacks {
		if fb.Status != models.FeedbackApproved {
			continue
		}
		if department != "" && fb.Department != department {
			continue
		}
		if company != "" && !containsFold(fb.CompanyName, company) {
			continue
		}
		copied := *fb
		f.attachStudent(&copied)
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeFeedbackStore) ListAll(_ context.Context) ([]*models.Feedback, error) {
	var out []*models.Feedback
	for _, fb := range f.feedbacks {
		copied := *fb
		f.attachStudent(&copied)
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeFeedbackStore) ListPendingByDepartment(_ context.Context, department string) ([]*models.Feedback, error) {
	var out []*models.Feedback
	for _, fb := range f.feedbacks {
		if fb.Status == models.FeedbackPending && fb.Department == department {
			copied := *fb
			f.attachStudent(&copied)
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeFeedbackStore) GetRounds(_ context.Context, feedbackID int64) ([]models.Round, error) {
	fb, ok := f.feedbacks[feedbackID]
	if !ok {
		return nil, nil
	}
	rounds := append([]models.Round(nil), fb.Rounds...)
	sort.Slice(rounds, func(i, j int) bool { return rounds[i].RoundNumber < rounds[j].RoundNumber })
	return rounds, nil
}

func (f *fakeFeedbackStore) CountAll(_ context.Context) (int64, error) {
	return int64(len(f.feedbacks)), nil
}

func (f *fakeFeedbackStore) CountByStatus(_ context.Context, status models.FeedbackStatus) (int64, error) {
	var count int64
	for _, fb := range f.feedbacks {
		if fb.Status == status {
			count++
		}
	}
	return count, nil
}

func containsFold(haystack, needle string) bool {
	h := []rune(haystack)
	n := []rune(needle)
	lower := func(r rune) rune {
		if r >= 'A' && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}
	for i := 0; i+len(n) <= len(h); i++ {
		match := true
		for j := range n {
			if lower(h[i+j]) != lower(n[j]) {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
