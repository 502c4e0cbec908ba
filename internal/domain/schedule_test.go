package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

func defaultSchedule() ClinicSchedule {
	return ClinicSchedule{
		Windows: []ScheduleWindow{
			{Open: "10:00", Close: "14:00"},
			{Open: "16:00", Close: "20:00"},
		},
		SlotDurationMinutes: 30,
	}
}

func TestClinicSchedule_GenerateSlots(t *testing.T) {
	schedule := defaultSchedule()

	slots := schedule.GenerateSlots()

	// Два окна по 4 часа с шагом 30 минут дают по 8 слотов
	require.Len(t, slots, 16)
	assert.Equal(t, types.TimeString("10:00"), slots[0])
	assert.Equal(t, types.TimeString("13:30"), slots[7])
	assert.Equal(t, types.TimeString("16:00"), slots[8])
	assert.Equal(t, types.TimeString("19:30"), slots[15])

	// Строго по возрастанию, без дубликатов
	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i-1].IsBefore(slots[i]),
			"slot %s must be before %s", slots[i-1], slots[i])
	}

	// Слоты из перерыва между окнами не генерируются
	assert.NotContains(t, slots, types.TimeString("14:00"))
	assert.NotContains(t, slots, types.TimeString("15:30"))
	assert.NotContains(t, slots, types.TimeString("20:00"))
}

func TestClinicSchedule_GenerateSlots_Deterministic(t *testing.T) {
	schedule := defaultSchedule()

	first := schedule.GenerateSlots()
	second := schedule.GenerateSlots()

	assert.Equal(t, first, second)
}

func TestClinicSchedule_GenerateSlots_PartialSlotDropped(t *testing.T) {
	schedule := ClinicSchedule{
		Windows:             []ScheduleWindow{{Open: "10:00", Close: "11:45"}},
		SlotDurationMinutes: 30,
	}

	slots := schedule.GenerateSlots()

	// Слот 11:30-12:00 не помещается в окно целиком
	assert.Equal(t, []types.TimeString{"10:00", "10:30", "11:00"}, slots)
}

func TestClinicSchedule_GenerateSlots_SlotEndsExactlyAtClose(t *testing.T) {
	schedule := ClinicSchedule{
		Windows:             []ScheduleWindow{{Open: "10:00", Close: "11:00"}},
		SlotDurationMinutes: 30,
	}

	assert.Equal(t, []types.TimeString{"10:00", "10:30"}, schedule.GenerateSlots())
}

func TestClinicSchedule_Contains(t *testing.T) {
	schedule := defaultSchedule()

	assert.True(t, schedule.Contains("10:00"))
	assert.True(t, schedule.Contains("19:30"))
	assert.False(t, schedule.Contains("14:00"))
	assert.False(t, schedule.Contains("10:15"))
	assert.False(t, schedule.Contains("09:30"))
	assert.False(t, schedule.Contains("20:00"))
}

func TestClinicSchedule_WindowIndex(t *testing.T) {
	schedule := defaultSchedule()

	assert.Equal(t, 0, schedule.WindowIndex("10:00"))
	assert.Equal(t, 0, schedule.WindowIndex("13:30"))
	assert.Equal(t, 1, schedule.WindowIndex("16:00"))
	assert.Equal(t, 1, schedule.WindowIndex("19:30"))
	assert.Equal(t, -1, schedule.WindowIndex("14:30"))
	assert.Equal(t, -1, schedule.WindowIndex("20:00"))
}
