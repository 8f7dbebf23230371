package history

import (
	"strings"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// rangeSkew ensancha la ventana un día por cada lado: las fechas del llamador
// no traen zona horaria y los timestamps guardados sí.
const rangeSkew = 24 * time.Hour

const endOfDay = 24*time.Hour - time.Millisecond

// Window convierte fechas YYYY-MM-DD en límites inclusivos ya ensanchados.
// Una fecha vacía deja ese lado abierto (nil).
func Window(startDate, endDate string) (from, to *time.Time, err error) {
	v := &domain.ValidationError{}
	startDate, endDate = strings.TrimSpace(startDate), strings.TrimSpace(endDate)

	var start, end time.Time
	if startDate != "" {
		if start, err = time.Parse(entity.EntryDateLayout, startDate); err != nil {
			v.Add("startDate", "formato esperado YYYY-MM-DD")
		} else {
			f := start.Add(-rangeSkew)
			from = &f
		}
	}
	if endDate != "" {
		if end, err = time.Parse(entity.EntryDateLayout, endDate); err != nil {
			v.Add("endDate", "formato esperado YYYY-MM-DD")
		} else {
			t := end.Add(endOfDay + rangeSkew)
			to = &t
		}
	}
	if from != nil && to != nil && start.After(end) {
		v.Add("endDate", "no puede ser anterior a startDate")
	}
	if err := v.OrNil(); err != nil {
		return nil, nil, err
	}
	return from, to, nil
}
