package cron

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/absenta/attendance-backend-go/internal/domain/attendance"
	"github.com/absenta/attendance-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jakarta = time.FixedZone("WIB", 7*3600)

type fakeAttendanceRepo struct {
	attendance.AttendanceRepository

	mu       sync.Mutex
	existing map[string]bool // userID|date already has a row
	created  []attendance.Record
}

func (f *fakeAttendanceRepo) BulkCreateAbsences(ctx context.Context, records []attendance.Record) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	created := 0
	for _, r := range records {
		key := r.UserID + "|" + r.Date.Format("2006-01-02")
		if f.existing[key] {
			continue
		}
		f.existing[key] = true
		f.created = append(f.created, r)
		created++
	}
	return created, nil
}

type fakeUserRepo struct {
	user.UserRepository

	active []user.User
}

func (f *fakeUserRepo) ListActive(ctx context.Context) ([]user.User, error) {
	return f.active, nil
}

func newJobs(now time.Time) (*AttendanceJobs, *fakeAttendanceRepo) {
	repo := &fakeAttendanceRepo{existing: make(map[string]bool)}
	users := &fakeUserRepo{active: []user.User{{ID: "user-1"}, {ID: "user-2"}}}

	jobs := NewAttendanceJobs(repo, users, jakarta)
	jobs.now = func() time.Time { return now }
	return jobs, repo
}

func TestMarkAbsentUsers_MarksPreviousDay(t *testing.T) {
	jobs, repo := newJobs(time.Date(2026, 3, 10, 0, 30, 0, 0, jakarta))

	err := jobs.MarkAbsentUsers(context.Background())

	require.NoError(t, err)
	require.Len(t, repo.created, 2)
	for _, r := range repo.created {
		assert.Equal(t, attendance.StatusAbsent, r.Status)
		assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, jakarta), r.Date)
		assert.NotEmpty(t, r.ID)
	}
}

// A run while the current day is still open for check-in must never produce
// a row for that day, or the unique (user_id, date) index would reject the
// user's own check-in later.
func TestMarkAbsentUsers_CurrentDayUntouched(t *testing.T) {
	jobs, repo := newJobs(time.Date(2026, 3, 9, 0, 30, 0, 0, jakarta))

	err := jobs.MarkAbsentUsers(context.Background())

	require.NoError(t, err)
	require.Len(t, repo.created, 2)
	for _, r := range repo.created {
		assert.Equal(t, time.Date(2026, 3, 8, 0, 0, 0, 0, jakarta), r.Date)
	}
	assert.False(t, repo.existing["user-1|2026-03-09"])
	assert.False(t, repo.existing["user-2|2026-03-09"])
}

func TestMarkAbsentUsers_SkipsUsersWithRecords(t *testing.T) {
	jobs, repo := newJobs(time.Date(2026, 3, 10, 0, 30, 0, 0, jakarta))
	repo.existing["user-1|2026-03-09"] = true

	err := jobs.MarkAbsentUsers(context.Background())

	require.NoError(t, err)
	require.Len(t, repo.created, 1)
	assert.Equal(t, "user-2", repo.created[0].UserID)
}

func TestMarkAbsentUsers_RerunIsNoOp(t *testing.T) {
	jobs, repo := newJobs(time.Date(2026, 3, 10, 0, 30, 0, 0, jakarta))

	require.NoError(t, jobs.MarkAbsentUsers(context.Background()))
	require.NoError(t, jobs.MarkAbsentUsers(context.Background()))

	assert.Len(t, repo.created, 2)
}

func TestScheduler_RunOnce(t *testing.T) {
	s := NewScheduler()

	var mu sync.Mutex
	runs := 0
	s.AddJob("count", time.Hour, func(ctx context.Context) error {
		mu.Lock()
		runs++
		mu.Unlock()
		return nil
	})

	s.RunOnce(context.Background())
	s.RunOnce(context.Background())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 2, runs)
}
