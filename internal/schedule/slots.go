// Package schedule contiene la aritmética pura de horarios: grilla de slots
// por hora y resolución de día de semana. Sin I/O ni estado; los servicios
// de dominio la invocan en cada cambio de doctor/fecha.
package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrBadTime = errors.New("invalid time, expected HH:MM")
	ErrBadDate = errors.New("invalid date, expected YYYY-MM-DD")
)

// WeekDays indexa códigos de día por día de semana del calendario (0=domingo).
var WeekDays = []string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}

// HourlySlots genera la grilla de horarios de un médico entre start y end
// (formato "HH:MM"), en pasos de una hora, excluyendo end.
//
// Ojo: después del primer slot los minutos se fuerzan a 0. Es el comportamiento
// histórico con el que se generaron los slots ya persistidos; cambiarlo
// invalidaría la comparación contra citas existentes.
func HourlySlots(start, end string) ([]string, error) {
	h, m, err := parseClock(start)
	if err != nil {
		return nil, err
	}
	hEnd, mEnd, err := parseClock(end)
	if err != nil {
		return nil, err
	}

	slots := make([]string, 0)
	for h < hEnd || (h == hEnd && m < mEnd) {
		slots = append(slots, fmt.Sprintf("%02d:%02d", h, m))
		h++
		m = 0
	}
	return slots, nil
}

// WeekdayCode mapea una fecha ISO (YYYY-MM-DD) a su código sun..sat.
func WeekdayCode(dateISO string) (string, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(dateISO))
	if err != nil {
		return "", ErrBadDate
	}
	return WeekDays[int(t.Weekday())], nil
}

// IsWeekdayCode valida un código de día configurable en un médico.
func IsWeekdayCode(code string) bool {
	for _, d := range WeekDays {
		if d == code {
			return true
		}
	}
	return false
}

// Free resta de la grilla del médico los horarios ya tomados, preservando
// el orden de slots. taken puede traer duplicados; no importa.
func Free(slots []string, taken []string) []string {
	if len(slots) == 0 {
		return []string{}
	}

	used := make(map[string]struct{}, len(taken))
	for _, t := range taken {
		used[t] = struct{}{}
	}

	out := make([]string, 0, len(slots))
	for _, s := range slots {
		if _, ok := used[s]; ok {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Contains reporta si un horario pertenece a la grilla.
func Contains(slots []string, hhmm string) bool {
	for _, s := range slots {
		if s == hhmm {
			return true
		}
	}
	return false
}

func parseClock(s string) (int, int, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, 0, ErrBadTime
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, 0, ErrBadTime
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, 0, ErrBadTime
	}
	return h, m, nil
}
