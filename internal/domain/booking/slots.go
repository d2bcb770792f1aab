package booking

import "time"

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

type HoursConfig struct {
	WorkStart          string
	WorkEnd            string
	SessionDurationMin int
}

// ComputeAvailableSlots gera os horários de início reserváveis de uma
// data: candidatos a partir de work_start, de session_duration em
// session_duration, enquanto início+duração couber em work_end.
//
// Um candidato sai da lista quando coincide com um horário já reservado
// ou bloqueado, ou quando está a menos de minAdvance de now. Dia
// bloqueado devolve lista vazia. Configuração inválida (duração <= 0,
// expediente não parseável, work_end <= work_start) devolve lista vazia
// em vez de laço infinito.
//
// Função pura: sem leitura de estado, determinística para entradas
// fixas (fora a dependência de now). A SAÍDA é ordenada por horário.
func ComputeAvailableSlots(
	date time.Time,
	hours HoursConfig,
	bookedTimes []string,
	blockedTimes []string,
	dayBlocked bool,
	now time.Time,
	minAdvance time.Duration,
) []string {

	if dayBlocked {
		return []string{}
	}

	if hours.SessionDurationMin <= 0 {
		return []string{}
	}

	workStart, err := time.Parse(TimeLayout, hours.WorkStart)
	if err != nil {
		return []string{}
	}
	workEnd, err := time.Parse(TimeLayout, hours.WorkEnd)
	if err != nil {
		return []string{}
	}
	if !workEnd.After(workStart) {
		return []string{}
	}

	taken := make(map[string]struct{}, len(bookedTimes)+len(blockedTimes))
	for _, t := range bookedTimes {
		taken[t] = struct{}{}
	}
	for _, t := range blockedTimes {
		taken[t] = struct{}{}
	}

	duration := time.Duration(hours.SessionDurationMin) * time.Minute
	loc := date.Location()

	dayStart := time.Date(
		date.Year(), date.Month(), date.Day(),
		workStart.Hour(), workStart.Minute(), 0, 0,
		loc,
	)
	dayEnd := time.Date(
		date.Year(), date.Month(), date.Day(),
		workEnd.Hour(), workEnd.Minute(), 0, 0,
		loc,
	)

	slots := []string{}

	for cur := dayStart; !cur.Add(duration).After(dayEnd); cur = cur.Add(duration) {

		label := cur.Format(TimeLayout)

		if _, busy := taken[label]; busy {
			continue
		}

		// antecedência mínima em relação a "agora"
		if cur.Sub(now) < minAdvance {
			continue
		}

		slots = append(slots, label)
	}

	return slots
}

// SlotInstant combina data (YYYY-MM-DD) e horário (HH:MM) no instante
// absoluto correspondente no fuso informado.
func SlotInstant(dateStr, timeStr string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(
		DateLayout+" "+TimeLayout,
		dateStr+" "+timeStr,
		loc,
	)
}
