package models

import (
	"time"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
	"github.com/m04kA/DS-SchedulingService/pkg/types"
)

// Уровни конфигурации
const (
	LevelOffice  = "office"
	LevelSchool  = "school"
	LevelDefault = "default"
)

// Request модели

// UpsertConfigRequest запрос на создание или замену конфигурации расписания.
// Незаданные поля получают значения по умолчанию
type UpsertConfigRequest struct {
	SchoolID           int64  `json:"-"`
	OfficeID           *int64 `json:"officeId,omitempty"` // NULL = конфигурация для всей школы
	OpenTime           string `json:"openTime"`           // "07:00"
	CloseTime          string `json:"closeTime"`          // "20:00"
	GranularityMinutes int    `json:"granularityMinutes"`
	Durations          []int  `json:"durations"`
	ReferenceDuration  int    `json:"referenceDuration"`
}

// ToDomainConfig конвертирует request в domain модель, подставляя значения по умолчанию
func (r *UpsertConfigRequest) ToDomainConfig() *domain.ScheduleConfig {
	config := domain.DefaultScheduleConfig(r.SchoolID)
	config.OfficeID = r.OfficeID

	if r.OpenTime != "" {
		config.WorkingHours.Start = types.TimeString(r.OpenTime)
	}
	if r.CloseTime != "" {
		config.WorkingHours.End = types.TimeString(r.CloseTime)
	}
	if r.GranularityMinutes != 0 {
		config.GranularityMinutes = r.GranularityMinutes
	}
	if len(r.Durations) > 0 {
		config.Durations = append([]int(nil), r.Durations...)
	}
	if r.ReferenceDuration != 0 {
		config.ReferenceDuration = r.ReferenceDuration
	}

	return config
}

// Response модели

// ConfigResponse ответ с конфигурацией расписания
type ConfigResponse struct {
	ID                 int64      `json:"id,omitempty"`
	SchoolID           int64      `json:"schoolId"`
	OfficeID           *int64     `json:"officeId,omitempty"`
	OpenTime           string     `json:"openTime"`
	CloseTime          string     `json:"closeTime"`
	GranularityMinutes int        `json:"granularityMinutes"`
	Durations          []int      `json:"durations"`
	ReferenceDuration  int        `json:"referenceDuration"`
	Level              string     `json:"level"` // office, school или default
	CreatedAt          *time.Time `json:"createdAt,omitempty"`
	UpdatedAt          *time.Time `json:"updatedAt,omitempty"`
}

// ConfigListResponse ответ со списком конфигураций
type ConfigListResponse struct {
	Configs []ConfigResponse `json:"configs"`
}

// Методы конвертации

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.ScheduleConfig) *ConfigResponse {
	if c == nil {
		return nil
	}

	resp := &ConfigResponse{
		ID:                 c.ID,
		SchoolID:           c.SchoolID,
		OfficeID:           c.OfficeID,
		OpenTime:           c.WorkingHours.Start.String(),
		CloseTime:          c.WorkingHours.End.String(),
		GranularityMinutes: c.GranularityMinutes,
		Durations:          c.Durations,
		ReferenceDuration:  c.ReferenceDuration,
		Level:              Level(c),
	}

	// Встроенная конфигурация не хранится в БД
	if c.ID != 0 {
		createdAt, updatedAt := c.CreatedAt, c.UpdatedAt
		resp.CreatedAt = &createdAt
		resp.UpdatedAt = &updatedAt
	}

	return resp
}

// FromDomainConfigList конвертирует список domain моделей в DTO
func FromDomainConfigList(configs []*domain.ScheduleConfig) *ConfigListResponse {
	resp := &ConfigListResponse{
		Configs: make([]ConfigResponse, 0, len(configs)),
	}

	for _, config := range configs {
		if configResp := FromDomainConfig(config); configResp != nil {
			resp.Configs = append(resp.Configs, *configResp)
		}
	}

	return resp
}

// Level возвращает уровень конфигурации в иерархии
func Level(c *domain.ScheduleConfig) string {
	switch {
	case c.ID == 0:
		return LevelDefault
	case c.IsOfficeSpecific():
		return LevelOffice
	default:
		return LevelSchool
	}
}
