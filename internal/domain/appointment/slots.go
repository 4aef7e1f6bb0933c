package appointment

import "time"

// ===============================
// Slot Calculator
// ===============================

// SlotStep: grade fixa de 30 minutos a partir da abertura, independente da
// duração do serviço.
const SlotStep = 30 * time.Minute

type Interval struct {
	Start time.Time
	End   time.Time
}

type SlotInput struct {
	// Dia alvo ancorado à meia-noite no fuso da barbearia.
	Day time.Time

	// Expediente fixo da casa, formato "15:04".
	OpenTime  string
	CloseTime string

	Duration time.Duration
	Now      time.Time

	// Agendamentos confirmados do barbeiro no dia, ordenados por início.
	Busy []Interval
}

type TimeSlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ComputeSlots é puro: devolve os inícios válidos da grade. Um candidato vale
// quando termina até o fechamento, não começa no passado e não cruza nenhum
// intervalo ocupado. O teste de conflito é meio-aberto
// (busy.Start < fim && busy.End > início), então encostar não conflita.
// Mesmo quando a duração não divide a grade, o último slot antes do
// fechamento entra se o fim ainda couber.
func ComputeSlots(in SlotInput) []TimeSlot {
	loc := in.Day.Location()

	parseHM := func(hm string) time.Time {
		t, _ := time.Parse("15:04", hm)
		return time.Date(
			in.Day.Year(), in.Day.Month(), in.Day.Day(),
			t.Hour(), t.Minute(), 0, 0,
			loc,
		)
	}

	dayStart := parseHM(in.OpenTime)
	dayEnd := parseHM(in.CloseTime)

	slots := []TimeSlot{}
	busyIdx := 0

	for cur := dayStart; !cur.Add(in.Duration).After(dayEnd); cur = cur.Add(SlotStep) {

		slotStart := cur
		slotEnd := cur.Add(in.Duration)

		if slotStart.Before(in.Now) {
			continue
		}

		// avança intervalos já encerrados
		for busyIdx < len(in.Busy) && !in.Busy[busyIdx].End.After(slotStart) {
			busyIdx++
		}

		conflict := false
		for i := busyIdx; i < len(in.Busy); i++ {
			b := in.Busy[i]
			if !b.Start.Before(slotEnd) {
				break
			}
			if b.Start.Before(slotEnd) && b.End.After(slotStart) {
				conflict = true
				break
			}
		}

		if !conflict {
			slots = append(slots, TimeSlot{Start: slotStart, End: slotEnd})
		}
	}

	return slots
}
