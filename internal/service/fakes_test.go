package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"risk_assessment_backend/internal/engine"
	"risk_assessment_backend/internal/model"
	"risk_assessment_backend/internal/repository"

	"gorm.io/gorm"
)

var testDate = time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)

func ind(present bool) *engine.RawIndicator {
	return &engine.RawIndicator{Present: engine.Bool(present)}
}

// ideationRaw 意念细节分支，强度 3/1
func ideationRaw() engine.RawAssessmentInput {
	return engine.RawAssessmentInput{
		Date:                              &testDate,
		DeathWish:                         ind(true),
		NonSpecificActiveSuicidalThoughts: &engine.RawIndicator{Present: engine.Bool(true), Description: engine.String("piensa en morir")},
		ActiveSuicidalIdeationWithMethods: ind(true),
		ActiveSuicidalIdeationWithIntent:  ind(false),
		ActiveSuicidalIdeationWithPlan:    &engine.RawIndicator{Present: engine.Bool(true), Frequency: engine.Int(2)},
		IdeationIntensity: &engine.RawIntensity{
			MostSeriousIdeationType:        engine.Int(3),
			MostSeriousIdeationDescription: engine.String("pensamientos recurrentes"),
			Frequency:                      engine.Int(1),
		},
		Observations: "colaborador",
	}
}

// behaviorRaw 两个基础问题都为否
func behaviorRaw() engine.RawAssessmentInput {
	return engine.RawAssessmentInput{
		Date:                              &testDate,
		DeathWish:                         ind(false),
		NonSpecificActiveSuicidalThoughts: ind(false),
		ActualAttempt:                     &engine.RawIndicator{Present: engine.Bool(true), Description: engine.String("ingesta"), TotalAttempts: engine.Int(1)},
		NonSuicidalSelfInjury:             ind(false),
		UnknownIntentSelfInjury:           ind(false),
		InterruptedAttempt:                ind(false),
		AbortedAttempt:                    ind(false),
		PreparatoryActs:                   ind(true),
		LethalityDegree:                   engine.Int(2),
		FinalRemarks:                      "seguimiento",
	}
}

type fakeUserStore struct {
	mu     sync.Mutex
	users  map[uint]*model.User
	nextID uint
	logins map[uint]time.Time
}

func newFakeUserStore(users ...*model.User) *fakeUserStore {
	s := &fakeUserStore{users: map[uint]*model.User{}, logins: map[uint]time.Time{}}
	for _, u := range users {
		_ = s.Create(context.Background(), u)
	}
	return s
}

func (s *fakeUserStore) Create(ctx context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	u.ID = s.nextID
	s.users[u.ID] = u
	return nil
}

func (s *fakeUserStore) FindByID(ctx context.Context, id uint) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeUserStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeUserStore) List(ctx context.Context, page, limit int, role model.UserRole) ([]model.User, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.User
	for _, u := range s.users {
		if role == "" || u.Role == role {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (s *fakeUserStore) CountActive(ctx context.Context, role model.UserRole) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, u := range s.users {
		if u.Status && (role == "" || u.Role == role) {
			n++
		}
	}
	return n, nil
}

func (s *fakeUserStore) UpdateLastLogin(ctx context.Context, userID uint, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logins[userID] = at
	return nil
}

type fakeStudentStore struct {
	students map[uint]*model.Student
	nextID   uint
}

func newFakeStudentStore(students ...*model.Student) *fakeStudentStore {
	s := &fakeStudentStore{students: map[uint]*model.Student{}}
	for _, st := range students {
		_ = s.Create(context.Background(), st)
	}
	return s
}

func (s *fakeStudentStore) Create(ctx context.Context, st *model.Student) error {
	s.nextID++
	st.ID = s.nextID
	s.students[st.ID] = st
	return nil
}

func (s *fakeStudentStore) FindByID(ctx context.Context, id uint) (*model.Student, error) {
	if st, ok := s.students[id]; ok {
		return st, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeStudentStore) List(ctx context.Context, page, limit int, search string) ([]model.Student, int64, error) {
	var out []model.Student
	for _, st := range s.students {
		out = append(out, *st)
	}
	return out, int64(len(out)), nil
}

func (s *fakeStudentStore) CountActive(ctx context.Context) (int64, error) {
	var n int64
	for _, st := range s.students {
		if st.Status {
			n++
		}
	}
	return n, nil
}

type fakeAssessmentStore struct {
	rows    []*model.SuicideAssessment
	failErr error
	counts  int
}

func (s *fakeAssessmentStore) Create(ctx context.Context, a *model.SuicideAssessment) error {
	if s.failErr != nil {
		return s.failErr
	}
	a.ID = uint(len(s.rows) + 1)
	a.CreatedAt = testDate
	s.rows = append(s.rows, a)
	return nil
}

func (s *fakeAssessmentStore) FindByID(ctx context.Context, id uint) (*model.SuicideAssessment, error) {
	for _, a := range s.rows {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeAssessmentStore) List(ctx context.Context, f repository.AssessmentFilter) ([]model.SuicideAssessment, int64, error) {
	var out []model.SuicideAssessment
	for _, a := range s.rows {
		if f.StudentID != 0 && a.StudentID != f.StudentID {
			continue
		}
		if f.PsychologistID != 0 && a.PsychologistID != f.PsychologistID {
			continue
		}
		if f.RiskLevel != "" && a.RiskLevel != f.RiskLevel {
			continue
		}
		out = append(out, *a)
	}
	return out, int64(len(out)), nil
}

func (s *fakeAssessmentStore) Count(ctx context.Context) (int64, error) {
	s.counts++
	return int64(len(s.rows)), nil
}

func (s *fakeAssessmentStore) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	for _, a := range s.rows {
		if !a.Date.Before(since) {
			n++
		}
	}
	return n, nil
}

func (s *fakeAssessmentStore) CountByRiskLevel(ctx context.Context) (map[string]int64, error) {
	out := map[string]int64{}
	for _, a := range s.rows {
		out[a.RiskLevel]++
	}
	return out, nil
}

func (s *fakeAssessmentStore) CountByBranch(ctx context.Context) (repository.BranchCounts, error) {
	var c repository.BranchCounts
	for _, a := range s.rows {
		switch {
		case a.NonSpecificActiveSuicidalThoughts.Present:
			c.IdeationDetail++
		case a.DeathWish.Present:
			c.DeathWishOnly++
		default:
			c.Behavior++
		}
	}
	return c, nil
}

type fakeCache struct {
	data    map[string][]byte
	ttls    map[string]time.Duration
	failGet bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (c *fakeCache) Get(ctx context.Context, key string) ([]byte, error) {
	if c.failGet {
		return nil, errors.New("connection refused")
	}
	v, ok := c.data[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	return v, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.data[key] = value
	c.ttls[key] = ttl
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

type countingInvalidator struct{ calls int }

func (c *countingInvalidator) Invalidate(ctx context.Context) { c.calls++ }
