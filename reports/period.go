// reports/period.go
package reports

import (
	"math"
	"time"
)

// Periodo es la ventana de tiempo de un reporte.
type Periodo string

const (
	PeriodoSemana    Periodo = "week"
	PeriodoMes       Periodo = "month"
	PeriodoTrimestre Periodo = "quarter"
	PeriodoAno       Periodo = "year"
)

// ParsePeriodo normaliza el parametro de periodo; todo lo desconocido (y el
// vacio) cae al mes.
func ParsePeriodo(s string) Periodo {
	switch Periodo(s) {
	case PeriodoSemana, PeriodoMes, PeriodoTrimestre, PeriodoAno:
		return Periodo(s)
	}
	return PeriodoMes
}

// Rango delimita el periodo pedido y el periodo anterior de largo
// equivalente, contra el que se calcula el crecimiento.
type Rango struct {
	Inicio         time.Time
	Fin            time.Time
	AnteriorInicio time.Time
	AnteriorFin    time.Time
}

// RangoDePeriodo calcula [inicio, fin] del periodo y su anterior:
// semana y trimestre son ventanas moviles (7 y 90 dias), mes y ano van
// del primer dia del calendario hasta hoy, con el mes/ano previo completo
// como comparativo.
func RangoDePeriodo(p Periodo, hoy time.Time) Rango {
	dia := truncarDia(hoy)
	fin := dia.AddDate(0, 0, 1) // exclusivo: incluye todo el dia de hoy

	switch p {
	case PeriodoSemana:
		inicio := dia.AddDate(0, 0, -7)
		return Rango{
			Inicio:         inicio,
			Fin:            fin,
			AnteriorInicio: inicio.AddDate(0, 0, -7),
			AnteriorFin:    inicio,
		}
	case PeriodoTrimestre:
		inicio := dia.AddDate(0, 0, -90)
		return Rango{
			Inicio:         inicio,
			Fin:            fin,
			AnteriorInicio: inicio.AddDate(0, 0, -90),
			AnteriorFin:    inicio,
		}
	case PeriodoAno:
		inicio := time.Date(dia.Year(), 1, 1, 0, 0, 0, 0, dia.Location())
		return Rango{
			Inicio:         inicio,
			Fin:            fin,
			AnteriorInicio: inicio.AddDate(-1, 0, 0),
			AnteriorFin:    inicio,
		}
	default: // mes
		inicio := time.Date(dia.Year(), dia.Month(), 1, 0, 0, 0, 0, dia.Location())
		return Rango{
			Inicio:         inicio,
			Fin:            fin,
			AnteriorInicio: inicio.AddDate(0, -1, 0),
			AnteriorFin:    inicio,
		}
	}
}

// Crecimiento devuelve el porcentaje de variacion entre dos periodos:
// 100 si el anterior fue cero y el actual no, 0 si ambos fueron cero, y
// en el resto (actual-anterior)/anterior*100 con un decimal.
func Crecimiento(actual, anterior float64) float64 {
	if anterior == 0 {
		if actual > 0 {
			return 100.0
		}
		return 0.0
	}
	return redondear1((actual - anterior) / anterior * 100)
}

func redondear1(x float64) float64 {
	return math.Round(x*10) / 10
}

func redondear2(x float64) float64 {
	return math.Round(x*100) / 100
}

func truncarDia(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
