package models

import (
	"time"

	"github.com/uptrace/bun"
)

type ProgramDB struct {
	bun.BaseModel `bun:"table:programs,alias:p"`

	ID              string         `bun:"id,pk" json:"id"`
	Name            string         `bun:"name,notnull" json:"name"`
	Description     string         `bun:"description" json:"description"`
	Status          string         `bun:"status,notnull,default:'active'" json:"status"`
	Progress        int            `bun:"progress,notnull,default:0" json:"progress"`
	Participants    int            `bun:"participants,notnull,default:0" json:"participants"`
	StartDate       *time.Time     `bun:"start_date" json:"start_date"`
	EndDate         *time.Time     `bun:"end_date" json:"end_date"`
	BudgetAllocated int            `bun:"budget_allocated,default:0" json:"budget_allocated"`
	BudgetUsed      int            `bun:"budget_used,default:0" json:"budget_used"`
	Color           string         `bun:"color,notnull" json:"color"`
	Icon            string         `bun:"icon" json:"icon"`
	ImageURL        string         `bun:"image_url" json:"image_url"`
	Tags            []string       `bun:"tags,array" json:"tags"`
	Category        string         `bun:"category" json:"category"`
	Priority        string         `bun:"priority,default:'medium'" json:"priority"`
	Metadata        map[string]any `bun:"metadata,type:jsonb" json:"metadata"`
	CreatedAt       time.Time      `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt       time.Time      `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

func (p *ProgramDB) ToProgram() *Program {
	return &Program{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Status:          p.Status,
		Progress:        p.Progress,
		Participants:    p.Participants,
		StartDate:       p.StartDate,
		EndDate:         p.EndDate,
		BudgetAllocated: p.BudgetAllocated,
		BudgetUsed:      p.BudgetUsed,
		Color:           p.Color,
		Icon:            p.Icon,
		ImageURL:        p.ImageURL,
		Tags:            p.Tags,
		Category:        p.Category,
		Priority:        p.Priority,
		Metadata:        p.Metadata,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func ProgramFromDomain(p *Program) *ProgramDB {
	return &ProgramDB{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Status:          p.Status,
		Progress:        p.Progress,
		Participants:    p.Participants,
		StartDate:       p.StartDate,
		EndDate:         p.EndDate,
		BudgetAllocated: p.BudgetAllocated,
		BudgetUsed:      p.BudgetUsed,
		Color:           p.Color,
		Icon:            p.Icon,
		ImageURL:        p.ImageURL,
		Tags:            p.Tags,
		Category:        p.Category,
		Priority:        p.Priority,
		Metadata:        p.Metadata,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

type ActivityDB struct {
	bun.BaseModel `bun:"table:activities,alias:a"`

	ID          string    `bun:"id,pk" json:"id"`
	ProgramID   string    `bun:"program_id" json:"program_id"`
	Type        string    `bun:"type,notnull" json:"type"`
	Description string    `bun:"description" json:"description"`
	Date        time.Time `bun:"date,notnull" json:"date"`
	Status      string    `bun:"status,notnull" json:"status"`
	Details     string    `bun:"details" json:"details"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

func (a *ActivityDB) ToActivity() *Activity {
	return &Activity{
		ID:          a.ID,
		ProgramID:   a.ProgramID,
		Type:        a.Type,
		Description: a.Description,
		Date:        a.Date,
		Status:      a.Status,
		Details:     a.Details,
		CreatedAt:   a.CreatedAt,
	}
}

func ActivityFromDomain(a *Activity) *ActivityDB {
	return &ActivityDB{
		ID:          a.ID,
		ProgramID:   a.ProgramID,
		Type:        a.Type,
		Description: a.Description,
		Date:        a.Date,
		Status:      a.Status,
		Details:     a.Details,
		CreatedAt:   a.CreatedAt,
	}
}

type TableConfigDB struct {
	bun.BaseModel `bun:"table:table_configs,alias:tc"`

	ID        string              `bun:"id,pk" json:"id"`
	TableName string              `bun:"table_name,notnull,unique" json:"table_name"`
	Columns   []BuilderColumn     `bun:"columns,type:jsonb" json:"columns"`
	Data      []map[string]string `bun:"data,type:jsonb" json:"data"`
	UpdatedAt time.Time           `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

func (t *TableConfigDB) ToTableConfig() *TableConfig {
	return &TableConfig{
		ID:        t.ID,
		TableName: t.TableName,
		Columns:   t.Columns,
		Data:      t.Data,
		UpdatedAt: t.UpdatedAt,
	}
}

func TableConfigFromDomain(t *TableConfig) *TableConfigDB {
	return &TableConfigDB{
		ID:        t.ID,
		TableName: t.TableName,
		Columns:   t.Columns,
		Data:      t.Data,
		UpdatedAt: t.UpdatedAt,
	}
}

type ColumnHeaderDB struct {
	bun.BaseModel `bun:"table:column_headers,alias:ch"`

	ID          string    `bun:"id,pk" json:"id"`
	TableName   string    `bun:"table_name,notnull,unique:header_key" json:"table_name"`
	ColumnKey   string    `bun:"column_key,notnull,unique:header_key" json:"column_key"`
	DisplayName string    `bun:"display_name,notnull" json:"display_name"`
	IsVisible   bool      `bun:"is_visible,notnull,default:true" json:"is_visible"`
	SortOrder   int       `bun:"sort_order,notnull,default:0" json:"sort_order"`
	Width       string    `bun:"width,default:'auto'" json:"width"`
	Alignment   Alignment `bun:"alignment,default:'left'" json:"alignment"`
	UpdatedAt   time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

func (h *ColumnHeaderDB) ToColumnHeader() *ColumnHeader {
	return &ColumnHeader{
		ID:          h.ID,
		TableName:   h.TableName,
		ColumnKey:   h.ColumnKey,
		DisplayName: h.DisplayName,
		IsVisible:   h.IsVisible,
		SortOrder:   h.SortOrder,
		Width:       h.Width,
		Alignment:   h.Alignment,
		UpdatedAt:   h.UpdatedAt,
	}
}

func ColumnHeaderFromDomain(h *ColumnHeader) *ColumnHeaderDB {
	return &ColumnHeaderDB{
		ID:          h.ID,
		TableName:   h.TableName,
		ColumnKey:   h.ColumnKey,
		DisplayName: h.DisplayName,
		IsVisible:   h.IsVisible,
		SortOrder:   h.SortOrder,
		Width:       h.Width,
		Alignment:   h.Alignment,
		UpdatedAt:   h.UpdatedAt,
	}
}

type TableColumnDB struct {
	bun.BaseModel `bun:"table:table_columns,alias:tcol"`

	ID              string         `bun:"id,pk" json:"id"`
	TableName       string         `bun:"table_name,notnull,unique:column_key" json:"table_name"`
	ColumnKey       string         `bun:"column_key,notnull,unique:column_key" json:"column_key"`
	DisplayName     string         `bun:"display_name,notnull" json:"display_name"`
	DataType        DataType       `bun:"data_type,notnull,default:'text'" json:"data_type"`
	IsVisible       bool           `bun:"is_visible,notnull,default:true" json:"is_visible"`
	IsEditable      bool           `bun:"is_editable,notnull,default:true" json:"is_editable"`
	SortOrder       int            `bun:"sort_order,notnull,default:0" json:"sort_order"`
	Width           string         `bun:"width,default:'auto'" json:"width"`
	Alignment       Alignment      `bun:"alignment,default:'left'" json:"alignment"`
	SelectOptions   []string       `bun:"select_options,type:jsonb" json:"select_options"`
	FormatOptions   map[string]any `bun:"format_options,type:jsonb" json:"format_options"`
	ValidationRules map[string]any `bun:"validation_rules,type:jsonb" json:"validation_rules"`
	Description     string         `bun:"description" json:"description"`
	UpdatedAt       time.Time      `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

func (c *TableColumnDB) ToColumnDescriptor() *ColumnDescriptor {
	return &ColumnDescriptor{
		ID:              c.ID,
		TableName:       c.TableName,
		ColumnKey:       c.ColumnKey,
		DisplayName:     c.DisplayName,
		DataType:        c.DataType,
		IsVisible:       c.IsVisible,
		IsEditable:      c.IsEditable,
		SortOrder:       c.SortOrder,
		Width:           c.Width,
		Alignment:       c.Alignment,
		SelectOptions:   c.SelectOptions,
		FormatOptions:   c.FormatOptions,
		ValidationRules: c.ValidationRules,
		Description:     c.Description,
		UpdatedAt:       c.UpdatedAt,
	}
}

func ColumnDescriptorFromDomain(c *ColumnDescriptor) *TableColumnDB {
	return &TableColumnDB{
		ID:              c.ID,
		TableName:       c.TableName,
		ColumnKey:       c.ColumnKey,
		DisplayName:     c.DisplayName,
		DataType:        c.DataType,
		IsVisible:       c.IsVisible,
		IsEditable:      c.IsEditable,
		SortOrder:       c.SortOrder,
		Width:           c.Width,
		Alignment:       c.Alignment,
		SelectOptions:   c.SelectOptions,
		FormatOptions:   c.FormatOptions,
		ValidationRules: c.ValidationRules,
		Description:     c.Description,
		UpdatedAt:       c.UpdatedAt,
	}
}

type ProgramSuggestionDB struct {
	bun.BaseModel `bun:"table:program_suggestions,alias:ps"`

	ID           string         `bun:"id,pk" json:"id"`
	Keyword      string         `bun:"keyword,notnull" json:"keyword"`
	Name         string         `bun:"name,notnull" json:"name"`
	Type         string         `bun:"type,notnull" json:"type"`
	Description  string         `bun:"description" json:"description"`
	Tags         []string       `bun:"tags,array" json:"tags"`
	Category     string         `bun:"category" json:"category"`
	Priority     string         `bun:"priority,default:'medium'" json:"priority"`
	DefaultColor string         `bun:"default_color" json:"default_color"`
	DefaultIcon  string         `bun:"default_icon" json:"default_icon"`
	Metadata     map[string]any `bun:"metadata,type:jsonb" json:"metadata"`
	IsActive     bool           `bun:"is_active,default:true" json:"is_active"`
	CreatedAt    time.Time      `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

func (s *ProgramSuggestionDB) ToProgramSuggestion() *ProgramSuggestion {
	return &ProgramSuggestion{
		ID:           s.ID,
		Keyword:      s.Keyword,
		Name:         s.Name,
		Type:         s.Type,
		Description:  s.Description,
		Tags:         s.Tags,
		Category:     s.Category,
		Priority:     s.Priority,
		DefaultColor: s.DefaultColor,
		DefaultIcon:  s.DefaultIcon,
		Metadata:     s.Metadata,
		IsActive:     s.IsActive,
		CreatedAt:    s.CreatedAt,
	}
}

func ProgramSuggestionFromDomain(s *ProgramSuggestion) *ProgramSuggestionDB {
	return &ProgramSuggestionDB{
		ID:           s.ID,
		Keyword:      s.Keyword,
		Name:         s.Name,
		Type:         s.Type,
		Description:  s.Description,
		Tags:         s.Tags,
		Category:     s.Category,
		Priority:     s.Priority,
		DefaultColor: s.DefaultColor,
		DefaultIcon:  s.DefaultIcon,
		Metadata:     s.Metadata,
		IsActive:     s.IsActive,
		CreatedAt:    s.CreatedAt,
	}
}

type AdminSettingDB struct {
	bun.BaseModel `bun:"table:admin_settings,alias:as"`

	ID        string    `bun:"id,pk" json:"id"`
	Key       string    `bun:"key,notnull,unique" json:"key"`
	Value     string    `bun:"value,notnull" json:"value"`
	Category  string    `bun:"category,notnull" json:"category"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

func (s *AdminSettingDB) ToAdminSetting() *AdminSetting {
	return &AdminSetting{
		ID:        s.ID,
		Key:       s.Key,
		Value:     s.Value,
		Category:  s.Category,
		UpdatedAt: s.UpdatedAt,
	}
}

type UserDB struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           string    `bun:"id,pk" json:"id"`
	Username     string    `bun:"username,notnull,unique" json:"username"`
	Email        string    `bun:"email,notnull,unique" json:"email"`
	PasswordHash string    `bun:"password_hash,notnull" json:"-"`
	Role         string    `bun:"role,notnull,default:'user'" json:"role"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt    time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

func (u *UserDB) ToUser() *User {
	return &User{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func UserFromDomain(u *User) *UserDB {
	return &UserDB{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

type SessionDB struct {
	bun.BaseModel `bun:"table:sessions,alias:s"`

	SID    string      `bun:"sid,pk" json:"sid"`
	User   SessionUser `bun:"sess,type:jsonb" json:"sess"`
	Expire time.Time   `bun:"expire,notnull" json:"expire"`
}

func (s *SessionDB) ToSession() *Session {
	return &Session{
		SID:    s.SID,
		User:   s.User,
		Expire: s.Expire,
	}
}

func SessionFromDomain(s *Session) *SessionDB {
	return &SessionDB{
		SID:    s.SID,
		User:   s.User,
		Expire: s.Expire,
	}
}
