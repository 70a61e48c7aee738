package compute_availability

import (
	"fmt"
	"strconv"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
	computeAvailability "github.com/m04kA/DS-SchedulingService/internal/usecase/compute_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date              string                        `json:"date"`
	WorkingHours      WorkingHours                  `json:"workingHours"`
	Granularity       int                           `json:"granularity"`
	Durations         []int                         `json:"durations"`
	ReferenceDuration int                           `json:"referenceDuration"`
	Slots             []SlotResponse                `json:"slots"`
	ResourceDirectory map[string]ResourceDescriptor `json:"resourceDirectory"`
}

type WorkingHours struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// SlotResponse availabilityByDuration keyed as "30min", "45min", ...
type SlotResponse struct {
	Time                   string             `json:"time"`
	AvailableResourceCount int                `json:"availableResourceCount"`
	ResourceIDs            []int64            `json:"resourceIds"`
	AvailabilityByDuration map[string][]int64 `json:"availabilityByDuration"`
}

type ResourceDescriptor struct {
	Name string `json:"name"`
}

// DurationKey форматирует длительность как ключ ответа: 90 -> "90min"
func DurationKey(minutes int) string {
	return fmt.Sprintf("%dmin", minutes)
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *computeAvailability.Response) *AvailabilityResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, s := range resp.Slots {
		byDuration := make(map[string][]int64, len(s.ByDuration))
		for d, ids := range s.ByDuration {
			byDuration[DurationKey(d)] = ids
		}
		slots[i] = SlotResponse{
			Time:                   s.Time.String(),
			AvailableResourceCount: s.AvailableCount,
			ResourceIDs:            s.InstructorIDs,
			AvailabilityByDuration: byDuration,
		}
	}

	directory := make(map[string]ResourceDescriptor, len(resp.Directory))
	for id, entry := range resp.Directory {
		directory[strconv.FormatInt(id, 10)] = ResourceDescriptor{Name: entry.Name}
	}

	return &AvailabilityResponse{
		Date: resp.Date.Format(domain.DateFormat),
		WorkingHours: WorkingHours{
			Start: resp.WorkingHours.Start.String(),
			End:   resp.WorkingHours.End.String(),
		},
		Granularity:       resp.Granularity,
		Durations:         resp.Durations,
		ReferenceDuration: resp.ReferenceDuration,
		Slots:             slots,
		ResourceDirectory: directory,
	}
}
