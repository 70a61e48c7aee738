package compute_availability

import (
	"sort"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
)

// resolveGrid объединяет параметры запроса с конфигурацией школы.
// Опорная длительность всегда входит в список длительностей
func resolveGrid(req *Request, config *domain.ScheduleConfig) grid {
	g := grid{
		hours:       config.WorkingHours,
		granularity: config.GranularityMinutes,
		durations:   config.Durations,
		reference:   config.ReferenceDuration,
	}

	if req.WorkingHours != nil {
		g.hours = *req.WorkingHours
	}
	if req.Granularity > 0 {
		g.granularity = req.Granularity
	}
	if len(req.Durations) > 0 {
		g.durations = req.Durations
	}
	if req.ReferenceDuration > 0 {
		g.reference = req.ReferenceDuration
	}

	g.durations = normalizeDurations(append(append([]int(nil), g.durations...), g.reference))

	return g
}

// normalizeDurations сортирует длительности и убирает повторы
func normalizeDurations(durations []int) []int {
	sort.Ints(durations)
	result := durations[:0]
	for i, d := range durations {
		if i > 0 && d == durations[i-1] {
			continue
		}
		result = append(result, d)
	}
	return result
}

// groupByInstructor раскладывает активные занятия по инструкторам
func groupByInstructor(lessons []*domain.Lesson) map[int64][]domain.Interval {
	busy := make(map[int64][]domain.Interval)
	for _, lesson := range lessons {
		// Пропускаем отменённые занятия
		if !lesson.IsActive() {
			continue
		}
		busy[lesson.InstructorID] = append(busy[lesson.InstructorID], lesson.Interval())
	}
	return busy
}

// isFree проверяет, что у инструктора нет занятий, пересекающихся с интервалом.
// Соседние интервалы (10:00-11:00 и 11:00-12:00) не пересекаются
func isFree(busy []domain.Interval, candidate domain.Interval) bool {
	for _, b := range busy {
		if b.Overlaps(candidate) {
			return false
		}
	}
	return true
}

// computeGrid строит карту свободных инструкторов для каждой строки сетки и каждой длительности.
// Длительность, выходящая за время закрытия, не доступна ни одному инструктору
func computeGrid(instructors []*domain.Instructor, lessons []*domain.Lesson, g grid) []Slot {
	busy := groupByInstructor(lessons)
	rows := make([]Slot, 0)

	for _, start := range domain.SlotTimes(g.hours, g.granularity) {
		byDuration := make(map[int][]int64, len(g.durations))

		for _, d := range g.durations {
			free := make([]int64, 0, len(instructors))

			candidate, err := domain.NewInterval(start, d)
			if err == nil && !candidate.End.IsAfter(g.hours.End) {
				for _, in := range instructors {
					if isFree(busy[in.ID], candidate) {
						free = append(free, in.ID)
					}
				}
			}

			byDuration[d] = free
		}

		reference := byDuration[g.reference]
		rows = append(rows, Slot{
			Time:           start,
			AvailableCount: len(reference),
			InstructorIDs:  reference,
			ByDuration:     byDuration,
		})
	}

	return rows
}

// visibleSlots оставляет строки, где хотя бы один инструктор свободен на опорную длительность
func visibleSlots(rows []Slot) []Slot {
	slots := make([]Slot, 0, len(rows))
	for _, row := range rows {
		if row.AvailableCount == 0 {
			continue
		}
		slots = append(slots, row)
	}
	return slots
}

func instructorIDs(instructors []*domain.Instructor) []int64 {
	ids := make([]int64, len(instructors))
	for i, in := range instructors {
		ids[i] = in.ID
	}
	return ids
}
