package compute_availability

import (
	"time"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
	"github.com/m04kA/DS-SchedulingService/pkg/types"
)

// Request модель запроса расчёта свободных слотов.
// Незаданные параметры сетки берутся из конфигурации школы
type Request struct {
	SchoolID          int64            // ID школы (обязательный)
	OfficeID          *int64           // Фильтр по офису (опционально)
	Date              time.Time        // Дата (без времени)
	Durations         []int            // Длительности занятий в минутах (опционально)
	ReferenceDuration int              // Опорная длительность, 0 - из конфигурации
	WorkingHours      *domain.Interval // Рабочие часы (опционально)
	Granularity       int              // Шаг сетки в минутах, 0 - из конфигурации
}

// Response модель ответа с картой свободных слотов
type Response struct {
	Date              time.Time
	WorkingHours      domain.Interval
	Granularity       int
	Durations         []int
	ReferenceDuration int
	Slots             []Slot // Строки, где свободен хотя бы один инструктор на опорную длительность
	Grid              []Slot // Все строки сетки без фильтра
	Directory         domain.InstructorDirectory
}

// Slot модель ячейки сетки
type Slot struct {
	Time           types.TimeString // Время начала слота
	AvailableCount int              // Сколько инструкторов свободно на опорную длительность
	InstructorIDs  []int64          // Кто свободен на опорную длительность
	ByDuration     map[int][]int64  // Кто свободен для каждой длительности
}

// FreeFor возвращает инструкторов, свободных на duration минут с начала слота
func (s Slot) FreeFor(duration int) []int64 {
	return s.ByDuration[duration]
}

// grid effective parameters after merging the request with the stored config
type grid struct {
	hours       domain.Interval
	granularity int
	durations   []int
	reference   int
}
