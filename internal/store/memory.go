package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/progdash/progdash/internal/models"
)

// Memory is an in-memory Storage used by tests and local development.
// It mirrors the Postgres implementation's semantics, upserts included.
type Memory struct {
	mu sync.RWMutex

	programs      []models.Program
	activities    []models.Activity
	tableConfigs  []models.TableConfig
	columnHeaders []models.ColumnHeader
	tableColumns  []models.ColumnDescriptor
	suggestions   []models.ProgramSuggestion
	adminSettings []models.AdminSetting
	users         []models.User
	sessions      map[string]models.Session

	now func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		sessions: make(map[string]models.Session),
		now:      time.Now,
	}
}

func (m *Memory) Programs(ctx context.Context) ([]models.Program, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Program, len(m.programs))
	copy(out, m.programs)
	return out, nil
}

func (m *Memory) Program(ctx context.Context, id string) (*models.Program, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.programs {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *Memory) CreateProgram(ctx context.Context, p *models.Program) (*models.Program, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	cp.ID = uuid.New().String()
	cp.CreatedAt = m.now()
	cp.UpdatedAt = cp.CreatedAt
	m.programs = append(m.programs, cp)
	return &cp, nil
}

func (m *Memory) UpdateProgram(ctx context.Context, p *models.Program) (*models.Program, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.programs {
		if m.programs[i].ID == p.ID {
			cp := *p
			cp.CreatedAt = m.programs[i].CreatedAt
			cp.UpdatedAt = m.now()
			m.programs[i] = cp
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *Memory) DeleteProgram(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.programs {
		if m.programs[i].ID == id {
			m.programs = append(m.programs[:i], m.programs[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *Memory) Activities(ctx context.Context) ([]models.Activity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Activity, len(m.activities))
	copy(out, m.activities)
	return out, nil
}

func (m *Memory) ActivitiesByProgram(ctx context.Context, programID string) ([]models.Activity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.Activity
	for _, a := range m.activities {
		if a.ProgramID == programID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *Memory) CreateActivity(ctx context.Context, a *models.Activity) (*models.Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ca := *a
	ca.ID = uuid.New().String()
	ca.CreatedAt = m.now()
	m.activities = append(m.activities, ca)
	return &ca, nil
}

func (m *Memory) UpdateActivity(ctx context.Context, a *models.Activity) (*models.Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.activities {
		if m.activities[i].ID == a.ID {
			ca := *a
			ca.CreatedAt = m.activities[i].CreatedAt
			m.activities[i] = ca
			return &ca, nil
		}
	}
	return nil, nil
}

func (m *Memory) DeleteActivity(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.activities {
		if m.activities[i].ID == id {
			m.activities = append(m.activities[:i], m.activities[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *Memory) TableConfig(ctx context.Context, tableName string) (*models.TableConfig, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, tc := range m.tableConfigs {
		if tc.TableName == tableName {
			cp := tc
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *Memory) UpsertTableConfig(ctx context.Context, cfg *models.TableConfig) (*models.TableConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.tableConfigs {
		if m.tableConfigs[i].TableName == cfg.TableName {
			cp := *cfg
			cp.ID = m.tableConfigs[i].ID
			cp.UpdatedAt = m.now()
			m.tableConfigs[i] = cp
			return &cp, nil
		}
	}
	cp := *cfg
	cp.ID = uuid.New().String()
	cp.UpdatedAt = m.now()
	m.tableConfigs = append(m.tableConfigs, cp)
	return &cp, nil
}

func (m *Memory) ColumnHeaders(ctx context.Context, tableName string) ([]models.ColumnHeader, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.ColumnHeader
	for _, h := range m.columnHeaders {
		if h.TableName == tableName {
			out = append(out, h)
		}
	}
	return out, nil
}

func (m *Memory) UpsertColumnHeader(ctx context.Context, h *models.ColumnHeader) (*models.ColumnHeader, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.columnHeaders {
		if headerMatches(&m.columnHeaders[i], h) {
			cp := *h
			cp.ID = m.columnHeaders[i].ID
			cp.UpdatedAt = m.now()
			m.columnHeaders[i] = cp
			return &cp, nil
		}
	}
	cp := *h
	cp.ID = uuid.New().String()
	cp.UpdatedAt = m.now()
	m.columnHeaders = append(m.columnHeaders, cp)
	return &cp, nil
}

func headerMatches(stored *models.ColumnHeader, in *models.ColumnHeader) bool {
	if in.ID != "" {
		return stored.ID == in.ID
	}
	return stored.TableName == in.TableName && stored.ColumnKey == in.ColumnKey
}

func (m *Memory) ColumnDescriptors(ctx context.Context, tableName string) ([]models.ColumnDescriptor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.ColumnDescriptor
	for _, d := range m.tableColumns {
		if d.TableName == tableName {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *Memory) UpsertColumnDescriptor(ctx context.Context, d *models.ColumnDescriptor) (*models.ColumnDescriptor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.tableColumns {
		if descriptorMatches(&m.tableColumns[i], d) {
			cp := *d
			cp.ID = m.tableColumns[i].ID
			cp.UpdatedAt = m.now()
			m.tableColumns[i] = cp
			return &cp, nil
		}
	}
	cp := *d
	cp.ID = uuid.New().String()
	cp.UpdatedAt = m.now()
	m.tableColumns = append(m.tableColumns, cp)
	return &cp, nil
}

func descriptorMatches(stored *models.ColumnDescriptor, in *models.ColumnDescriptor) bool {
	if in.ID != "" {
		return stored.ID == in.ID
	}
	return stored.TableName == in.TableName && stored.ColumnKey == in.ColumnKey
}

func (m *Memory) ProgramSuggestions(ctx context.Context, keyword string) ([]models.ProgramSuggestion, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if keyword == "" {
		out := make([]models.ProgramSuggestion, len(m.suggestions))
		copy(out, m.suggestions)
		return out, nil
	}
	kw := strings.ToLower(keyword)
	var out []models.ProgramSuggestion
	for _, s := range m.suggestions {
		if suggestionMatches(&s, kw) {
			out = append(out, s)
		}
	}
	return out, nil
}

func suggestionMatches(s *models.ProgramSuggestion, kw string) bool {
	if strings.Contains(strings.ToLower(s.Keyword), kw) {
		return true
	}
	if strings.Contains(strings.ToLower(s.Name), kw) {
		return true
	}
	for _, tag := range s.Tags {
		if strings.Contains(strings.ToLower(tag), kw) {
			return true
		}
	}
	return false
}

func (m *Memory) CreateProgramSuggestion(ctx context.Context, s *models.ProgramSuggestion) (*models.ProgramSuggestion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cs := *s
	cs.ID = uuid.New().String()
	cs.CreatedAt = m.now()
	m.suggestions = append(m.suggestions, cs)
	return &cs, nil
}

func (m *Memory) AdminSettings(ctx context.Context, category string) ([]models.AdminSetting, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.AdminSetting
	for _, s := range m.adminSettings {
		if category == "" || s.Category == category {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *Memory) UpsertAdminSetting(ctx context.Context, key, value, category string) (*models.AdminSetting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.adminSettings {
		if m.adminSettings[i].Key == key {
			m.adminSettings[i].Value = value
			m.adminSettings[i].Category = category
			m.adminSettings[i].UpdatedAt = m.now()
			cp := m.adminSettings[i]
			return &cp, nil
		}
	}
	s := models.AdminSetting{
		ID:        uuid.New().String(),
		Key:       key,
		Value:     value,
		Category:  category,
		UpdatedAt: m.now(),
	}
	m.adminSettings = append(m.adminSettings, s)
	return &s, nil
}

func (m *Memory) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *Memory) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Username == username {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *Memory) CreateUser(ctx context.Context, u *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cu := *u
	cu.ID = uuid.New().String()
	cu.CreatedAt = m.now()
	cu.UpdatedAt = cu.CreatedAt
	m.users = append(m.users, cu)
	return &cu, nil
}

func (m *Memory) CountAdmins(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, u := range m.users {
		if u.Role == models.RoleAdmin {
			n++
		}
	}
	return n, nil
}

func (m *Memory) CreateSession(ctx context.Context, s *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.SID] = *s
	return nil
}

func (m *Memory) Session(ctx context.Context, sid string) (*models.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[sid]; ok {
		return &s, nil
	}
	return nil, nil
}

func (m *Memory) DeleteSession(ctx context.Context, sid string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[sid]; !ok {
		return false, nil
	}
	delete(m.sessions, sid)
	return true, nil
}

func (m *Memory) DeleteExpiredSessions(ctx context.Context, now time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for sid, s := range m.sessions {
		if now.After(s.Expire) {
			delete(m.sessions, sid)
			n++
		}
	}
	return n, nil
}

func (m *Memory) Close() error { return nil }
