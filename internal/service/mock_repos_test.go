package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"police-personnel/internal/model"
	"police-personnel/internal/repository"
	pkgerrors "police-personnel/pkg/errors"
	pkgredis "police-personnel/pkg/redis"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User // key: user_id
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("user-%d", m.seq)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email != nil && *u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) List(_ context.Context) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		result = append(result, *u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Username < result[j].Username })
	return result, nil
}

func (m *mockUserRepo) CountByRole(_ context.Context, role string) (int64, error) {
	var n int64
	for _, u := range m.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

// ── Mock SessionRepository ──

type mockSessionRepo struct {
	sessions map[string]*model.Session
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{sessions: make(map[string]*model.Session)}
}

func (m *mockSessionRepo) Create(_ context.Context, s *model.Session) error {
	m.sessions[s.SessionID] = s
	return nil
}

func (m *mockSessionRepo) GetActive(_ context.Context, id string, now time.Time) (*model.Session, error) {
	if s, ok := m.sessions[id]; ok && s.ExpiresAt.After(now) {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSessionRepo) ListByUser(_ context.Context, userID string) ([]model.Session, error) {
	var result []model.Session
	for _, s := range m.sessions {
		if s.UserID == userID {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockSessionRepo) Delete(_ context.Context, id string) error {
	delete(m.sessions, id)
	return nil
}

func (m *mockSessionRepo) DeleteByUser(_ context.Context, userID string) error {
	for id, s := range m.sessions {
		if s.UserID == userID {
			delete(m.sessions, id)
		}
	}
	return nil
}

func (m *mockSessionRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for id, s := range m.sessions {
		if !s.ExpiresAt.After(now) {
			delete(m.sessions, id)
			n++
		}
	}
	return n, nil
}

// ── Mock PersonnelRepository ──

type mockPersonnelRepo struct {
	records map[string]*model.Personnel
	seq     int
	failOn  map[string]error // full name -> error returned by Create
}

func newMockPersonnelRepo() *mockPersonnelRepo {
	return &mockPersonnelRepo{records: make(map[string]*model.Personnel), failOn: make(map[string]error)}
}

func (m *mockPersonnelRepo) Create(_ context.Context, p *model.Personnel) error {
	if p.FullName != nil {
		if err, ok := m.failOn[*p.FullName]; ok {
			return err
		}
	}
	if p.PersonnelID == "" {
		m.seq++
		p.PersonnelID = fmt.Sprintf("p-%d", m.seq)
	}
	if p.Version == 0 {
		p.Version = 1
	}
	m.records[p.PersonnelID] = p
	return nil
}

func (m *mockPersonnelRepo) GetByID(_ context.Context, id string) (*model.Personnel, error) {
	if p, ok := m.records[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPersonnelRepo) GetByNationalID(_ context.Context, nationalID string) (*model.Personnel, error) {
	for _, p := range m.records {
		if p.NationalID != nil && *p.NationalID == nationalID {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPersonnelRepo) Update(_ context.Context, p *model.Personnel) error {
	if cur, ok := m.records[p.PersonnelID]; !ok || cur.Version != p.Version {
		return pkgerrors.ErrOptimisticLock
	}
	p.Version++
	m.records[p.PersonnelID] = p
	return nil
}

func (m *mockPersonnelRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.records[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.records, id)
	return nil
}

func (m *mockPersonnelRepo) List(_ context.Context, filters *repository.PersonnelFilters) ([]model.Personnel, error) {
	var result []model.Personnel
	for _, p := range m.records {
		if filters != nil && filters.Rank != "" && (p.Rank == nil || *p.Rank != filters.Rank) {
			continue
		}
		if filters != nil && filters.Search != "" && (p.FullName == nil || !strings.Contains(*p.FullName, filters.Search)) {
			continue
		}
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].PersonnelID < result[j].PersonnelID })
	return result, nil
}

// ── Mock PosCodeRepository ──

type mockPosCodeRepo struct {
	codes []model.PosCode
	calls int
}

func newMockPosCodeRepo() *mockPosCodeRepo {
	return &mockPosCodeRepo{codes: model.DefaultPosCodes()}
}

func (m *mockPosCodeRepo) List(_ context.Context) ([]model.PosCode, error) {
	m.calls++
	return m.codes, nil
}

func (m *mockPosCodeRepo) Exists(_ context.Context, id int) (bool, error) {
	for _, c := range m.codes {
		if c.ID == id {
			return true, nil
		}
	}
	return false, nil
}

// ── Mock TokenStore / Cache ──

type mockStore struct {
	revoked map[string]time.Duration
	cache   map[string][]byte
}

func newMockStore() *mockStore {
	return &mockStore{revoked: make(map[string]time.Duration), cache: make(map[string][]byte)}
}

func (m *mockStore) BlacklistToken(_ context.Context, jti string, ttl time.Duration) error {
	if ttl > 0 {
		m.revoked[jti] = ttl
	}
	return nil
}

func (m *mockStore) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	_, ok := m.revoked[jti]
	return ok, nil
}

func (m *mockStore) GetJSON(_ context.Context, key string, dst any) error {
	raw, ok := m.cache[key]
	if !ok {
		return pkgredis.ErrCacheMiss
	}
	return json.Unmarshal(raw, dst)
}

func (m *mockStore) SetJSON(_ context.Context, key string, v any, _ time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.cache[key] = raw
	return nil
}

// ── helpers ──

type mockRepos struct {
	users     *mockUserRepo
	sessions  *mockSessionRepo
	personnel *mockPersonnelRepo
	posCodes  *mockPosCodeRepo
}

func newMockRepository() (*repository.Repository, *mockRepos) {
	m := &mockRepos{
		users:     newMockUserRepo(),
		sessions:  newMockSessionRepo(),
		personnel: newMockPersonnelRepo(),
		posCodes:  newMockPosCodeRepo(),
	}
	repo := &repository.Repository{
		User:      m.users,
		Session:   m.sessions,
		Personnel: m.personnel,
		PosCode:   m.posCodes,
	}
	return repo, m
}

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }
