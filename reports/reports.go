// reports/reports.go
package reports

import (
	"fmt"
	"strings"
	"time"

	"github.com/Robertabreu23/Plus-Graphics-Actualizado/models"

	"gorm.io/gorm"
)

// Service calcula las metricas del modulo de reportes leyendo ventas y,
// cuando el periodo todavia no tiene ventas registradas, cayendo a los
// pedidos (con el pago asignado por linea como cifra monetaria). Ese
// fallback cubre despliegues tempranos con pedidos pero sin ventas y no
// debe eliminarse. Solo lectura: nunca escribe.
type Service struct {
	db *gorm.DB

	Now func() time.Time
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, Now: time.Now}
}

// ResumenPeriodo son los totales del dashboard con su crecimiento contra
// el periodo anterior equivalente.
type ResumenPeriodo struct {
	VentasTotales       float64 `json:"ventas_totales"`
	TotalPedidos        int64   `json:"total_pedidos"`
	ValorPromedio       float64 `json:"valor_promedio"`
	NuevosClientes      int64   `json:"nuevos_clientes"`
	CrecimientoVentas   float64 `json:"crecimiento_ventas"`
	CrecimientoPedidos  float64 `json:"crecimiento_pedidos"`
	CrecimientoPromedio float64 `json:"crecimiento_promedio"`
	CrecimientoClientes float64 `json:"crecimiento_clientes"`
}

type IngresoTipo struct {
	Total      float64 `json:"total"`
	Porcentaje float64 `json:"porcentaje"`
	Cantidad   int64   `json:"cantidad"`
}

type PuntoTendencia struct {
	Periodo string  `json:"periodo"`
	Vfx     float64 `json:"vfx"`
	Gfx     float64 `json:"gfx"`
	Total   float64 `json:"total"`
}

type ProductoTop struct {
	Nombre   string  `json:"nombre"`
	Tipo     string  `json:"tipo"`
	Pedidos  int64   `json:"pedidos"`
	Ingresos float64 `json:"ingresos"`
	Promedio float64 `json:"promedio"`
}

type ClienteTop struct {
	Nombre       string            `json:"nombre"`
	Pedidos      int64             `json:"pedidos"`
	Ingresos     float64           `json:"ingresos"`
	Promedio     float64           `json:"promedio"`
	UltimoPedido *models.FechaHora `json:"ultimo_pedido"`
}

// Dashboard es el reporte completo de un periodo.
type Dashboard struct {
	Periodo         Periodo                `json:"periodo"`
	Resumen         ResumenPeriodo         `json:"resumen"`
	IngresosPorTipo map[string]IngresoTipo `json:"ingresos_por_tipo"`
	Tendencia       []PuntoTendencia       `json:"tendencia"`
	ProductosTop    []ProductoTop          `json:"productos_top"`
	ClientesTop     []ClienteTop           `json:"clientes_top"`
}

// GenerarDashboard arma el reporte completo dentro de una transaccion de
// solo lectura, para no ver una venta sin su cuenta recien creada.
func (s *Service) GenerarDashboard(p Periodo) (*Dashboard, error) {
	var out *Dashboard
	err := s.db.Transaction(func(tx *gorm.DB) error {
		d := Dashboard{Periodo: p}
		var txErr error
		if d.Resumen, txErr = s.resumen(tx, p); txErr != nil {
			return txErr
		}
		if d.IngresosPorTipo, txErr = s.ingresosPorTipo(tx, p); txErr != nil {
			return txErr
		}
		if d.Tendencia, txErr = s.tendencia(tx, p); txErr != nil {
			return txErr
		}
		if d.ProductosTop, txErr = s.productosTop(tx, p); txErr != nil {
			return txErr
		}
		if d.ClientesTop, txErr = s.clientesTop(tx, p); txErr != nil {
			return txErr
		}
		out = &d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) Resumen(p Periodo) (ResumenPeriodo, error) {
	return s.resumen(s.db, p)
}

func (s *Service) IngresosPorTipo(p Periodo) (map[string]IngresoTipo, error) {
	return s.ingresosPorTipo(s.db, p)
}

func (s *Service) Tendencia(p Periodo) ([]PuntoTendencia, error) {
	return s.tendencia(s.db, p)
}

func (s *Service) ProductosTop(p Periodo) ([]ProductoTop, error) {
	return s.productosTop(s.db, p)
}

func (s *Service) ClientesTop(p Periodo) ([]ClienteTop, error) {
	return s.clientesTop(s.db, p)
}

// ---------------- resumen ----------------

type totalesRango struct {
	Total    float64
	Cuenta   int64
	Clientes int64
}

func (s *Service) resumen(tx *gorm.DB, p Periodo) (ResumenPeriodo, error) {
	rango := RangoDePeriodo(p, s.Now())

	actual, err := s.totalesEnRango(tx, rango.Inicio, rango.Fin)
	if err != nil {
		return ResumenPeriodo{}, err
	}
	anterior, err := s.totalesEnRango(tx, rango.AnteriorInicio, rango.AnteriorFin)
	if err != nil {
		return ResumenPeriodo{}, err
	}

	res := ResumenPeriodo{
		VentasTotales:  redondear2(actual.Total),
		TotalPedidos:   actual.Cuenta,
		NuevosClientes: actual.Clientes,
	}
	if actual.Cuenta > 0 {
		res.ValorPromedio = redondear2(actual.Total / float64(actual.Cuenta))
	}
	var promedioAnterior float64
	if anterior.Cuenta > 0 {
		promedioAnterior = anterior.Total / float64(anterior.Cuenta)
	}

	res.CrecimientoVentas = Crecimiento(actual.Total, anterior.Total)
	res.CrecimientoPedidos = Crecimiento(float64(actual.Cuenta), float64(anterior.Cuenta))
	res.CrecimientoPromedio = Crecimiento(res.ValorPromedio, promedioAnterior)
	res.CrecimientoClientes = Crecimiento(float64(actual.Clientes), float64(anterior.Clientes))
	return res, nil
}

func (s *Service) totalesEnRango(tx *gorm.DB, inicio, fin time.Time) (totalesRango, error) {
	var t totalesRango
	err := tx.Table("ventas v").
		Select(`
			COALESCE(SUM(v.total), 0)      AS total,
			COUNT(v.id)                    AS cuenta,
			COUNT(DISTINCT v.cliente_id)   AS clientes
		`).
		Where("v.fecha >= ? AND v.fecha < ?", inicio, fin).
		Scan(&t).Error
	if err != nil {
		return t, err
	}
	if t.Cuenta > 0 {
		return t, nil
	}

	// sin ventas en el periodo: los pedidos son la fuente
	err = tx.Table("pedidos p").
		Select(`
			COALESCE(SUM(pp.assigned_payment), 0) AS total,
			COUNT(DISTINCT p.id)                  AS cuenta,
			COUNT(DISTINCT p.cliente_id)          AS clientes
		`).
		Joins("LEFT JOIN pedido_productos pp ON pp.pedido_id = p.id").
		Where("p.fecha >= ? AND p.fecha < ?", inicio, fin).
		Scan(&t).Error
	return t, err
}

// ---------------- ingresos por tipo ----------------

func (s *Service) ingresosPorTipo(tx *gorm.DB, p Periodo) (map[string]IngresoTipo, error) {
	rango := RangoDePeriodo(p, s.Now())

	type fila struct {
		Tipo     string
		Total    float64
		Cantidad int64
	}
	var filas []fila
	err := tx.Table("ventas v").
		Select(`
			pr.tipo                    AS tipo,
			COALESCE(SUM(v.total), 0)  AS total,
			COUNT(v.id)                AS cantidad
		`).
		Joins("INNER JOIN productos pr ON pr.id = v.producto_id").
		Where("v.fecha >= ? AND v.fecha < ?", rango.Inicio, rango.Fin).
		Group("pr.tipo").
		Scan(&filas).Error
	if err != nil {
		return nil, err
	}

	if len(filas) == 0 {
		err = tx.Table("pedidos p").
			Select(`
				pr.tipo                                AS tipo,
				COALESCE(SUM(pp.assigned_payment), 0)  AS total,
				COUNT(pp.id)                           AS cantidad
			`).
			Joins("INNER JOIN pedido_productos pp ON pp.pedido_id = p.id").
			Joins("INNER JOIN productos pr ON pr.id = pp.producto_id").
			Where("p.fecha >= ? AND p.fecha < ?", rango.Inicio, rango.Fin).
			Group("pr.tipo").
			Scan(&filas).Error
		if err != nil {
			return nil, err
		}
	}

	var totalGeneral float64
	for _, f := range filas {
		totalGeneral += f.Total
	}

	out := make(map[string]IngresoTipo, 2)
	for _, f := range filas {
		var porcentaje float64
		if totalGeneral > 0 {
			porcentaje = redondear1(f.Total / totalGeneral * 100)
		}
		out[strings.ToUpper(f.Tipo)] = IngresoTipo{
			Total:      redondear2(f.Total),
			Porcentaje: porcentaje,
			Cantidad:   f.Cantidad,
		}
	}
	// las dos categorias aparecen siempre, aunque no hayan facturado
	for _, tipo := range []string{"GFX", "VFX"} {
		if _, ok := out[tipo]; !ok {
			out[tipo] = IngresoTipo{}
		}
	}
	return out, nil
}

// ---------------- tendencia ----------------

var nombresMes = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// tendencia agrupa ingresos por dia (periodo semanal) o por mes (resto),
// en orden cronologico. El agrupado corre en Go para no depender de las
// funciones de fecha de cada motor.
func (s *Service) tendencia(tx *gorm.DB, p Periodo) ([]PuntoTendencia, error) {
	hoy := s.Now()
	porDia := p == PeriodoSemana

	var desde time.Time
	if porDia {
		desde = truncarDia(hoy).AddDate(0, 0, -6)
	} else {
		desde = time.Date(hoy.Year(), hoy.Month(), 1, 0, 0, 0, 0, hoy.Location()).AddDate(0, -5, 0)
	}
	hasta := truncarDia(hoy).AddDate(0, 0, 1)

	type fila struct {
		Fecha models.FechaHora
		Tipo  string
		Total float64
	}
	var filas []fila
	err := tx.Table("ventas v").
		Select("v.fecha AS fecha, pr.tipo AS tipo, v.total AS total").
		Joins("INNER JOIN productos pr ON pr.id = v.producto_id").
		Where("v.fecha >= ? AND v.fecha < ?", desde, hasta).
		Scan(&filas).Error
	if err != nil {
		return nil, err
	}

	if len(filas) == 0 {
		err = tx.Table("pedidos p").
			Select("p.fecha AS fecha, pr.tipo AS tipo, pp.assigned_payment AS total").
			Joins("INNER JOIN pedido_productos pp ON pp.pedido_id = p.id").
			Joins("INNER JOIN productos pr ON pr.id = pp.producto_id").
			Where("p.fecha >= ? AND p.fecha < ?", desde, hasta).
			Scan(&filas).Error
		if err != nil {
			return nil, err
		}
	}

	claves := make([]string, 0, 8)
	puntos := make(map[string]*PuntoTendencia)
	for _, f := range filas {
		var clave, etiqueta string
		if porDia {
			clave = f.Fecha.Format("2006-01-02")
			etiqueta = clave
		} else {
			clave = f.Fecha.Format("2006-01")
			etiqueta = fmt.Sprintf("%s %d", nombresMes[f.Fecha.Month()-1], f.Fecha.Year())
		}
		punto, ok := puntos[clave]
		if !ok {
			punto = &PuntoTendencia{Periodo: etiqueta}
			puntos[clave] = punto
			claves = append(claves, clave)
		}
		switch strings.ToLower(f.Tipo) {
		case models.TipoVfx:
			punto.Vfx += f.Total
		case models.TipoGfx:
			punto.Gfx += f.Total
		}
		punto.Total += f.Total
	}

	ordenarClaves(claves)
	out := make([]PuntoTendencia, 0, len(claves))
	for _, clave := range claves {
		punto := puntos[clave]
		punto.Vfx = redondear2(punto.Vfx)
		punto.Gfx = redondear2(punto.Gfx)
		punto.Total = redondear2(punto.Total)
		out = append(out, *punto)
	}
	return out, nil
}

// las claves son YYYY-MM-DD o YYYY-MM: el orden lexicografico es cronologico
func ordenarClaves(claves []string) {
	for i := 1; i < len(claves); i++ {
		for j := i; j > 0 && claves[j] < claves[j-1]; j-- {
			claves[j], claves[j-1] = claves[j-1], claves[j]
		}
	}
}

// ---------------- top productos / clientes ----------------

func (s *Service) productosTop(tx *gorm.DB, p Periodo) ([]ProductoTop, error) {
	rango := RangoDePeriodo(p, s.Now())

	type fila struct {
		Nombre   string
		Tipo     string
		Pedidos  int64
		Ingresos float64
	}
	var filas []fila
	err := tx.Table("ventas v").
		Select(`
			pr.nombre                  AS nombre,
			pr.tipo                    AS tipo,
			COUNT(v.id)                AS pedidos,
			COALESCE(SUM(v.total), 0)  AS ingresos
		`).
		Joins("INNER JOIN productos pr ON pr.id = v.producto_id").
		Where("v.fecha >= ? AND v.fecha < ?", rango.Inicio, rango.Fin).
		Group("pr.id, pr.nombre, pr.tipo").
		Order("ingresos DESC").
		Limit(10).
		Scan(&filas).Error
	if err != nil {
		return nil, err
	}

	if len(filas) == 0 {
		err = tx.Table("pedidos p").
			Select(`
				pr.nombre                              AS nombre,
				pr.tipo                                AS tipo,
				COUNT(DISTINCT p.id)                   AS pedidos,
				COALESCE(SUM(pp.assigned_payment), 0)  AS ingresos
			`).
			Joins("INNER JOIN pedido_productos pp ON pp.pedido_id = p.id").
			Joins("INNER JOIN productos pr ON pr.id = pp.producto_id").
			Where("p.fecha >= ? AND p.fecha < ?", rango.Inicio, rango.Fin).
			Group("pr.id, pr.nombre, pr.tipo").
			Order("ingresos DESC").
			Limit(10).
			Scan(&filas).Error
		if err != nil {
			return nil, err
		}
	}

	out := make([]ProductoTop, 0, len(filas))
	for _, f := range filas {
		top := ProductoTop{
			Nombre:   f.Nombre,
			Tipo:     strings.ToUpper(f.Tipo),
			Pedidos:  f.Pedidos,
			Ingresos: redondear2(f.Ingresos),
		}
		if f.Pedidos > 0 {
			top.Promedio = redondear2(f.Ingresos / float64(f.Pedidos))
		}
		out = append(out, top)
	}
	return out, nil
}

func (s *Service) clientesTop(tx *gorm.DB, p Periodo) ([]ClienteTop, error) {
	rango := RangoDePeriodo(p, s.Now())

	type fila struct {
		Nombre       string
		Pedidos      int64
		Ingresos     float64
		UltimoPedido *models.FechaHora
	}
	var filas []fila
	err := tx.Table("ventas v").
		Select(`
			c.nombre                   AS nombre,
			COUNT(v.id)                AS pedidos,
			COALESCE(SUM(v.total), 0)  AS ingresos,
			MAX(v.fecha)               AS ultimo_pedido
		`).
		Joins("INNER JOIN clientes c ON c.id = v.cliente_id").
		Where("v.fecha >= ? AND v.fecha < ?", rango.Inicio, rango.Fin).
		Group("c.id, c.nombre").
		Order("ingresos DESC").
		Limit(10).
		Scan(&filas).Error
	if err != nil {
		return nil, err
	}

	if len(filas) == 0 {
		err = tx.Table("pedidos p").
			Select(`
				c.nombre                               AS nombre,
				COUNT(DISTINCT p.id)                   AS pedidos,
				COALESCE(SUM(pp.assigned_payment), 0)  AS ingresos,
				MAX(p.fecha)                           AS ultimo_pedido
			`).
			Joins("INNER JOIN clientes c ON c.id = p.cliente_id").
			Joins("LEFT JOIN pedido_productos pp ON pp.pedido_id = p.id").
			Where("p.fecha >= ? AND p.fecha < ?", rango.Inicio, rango.Fin).
			Group("c.id, c.nombre").
			Order("ingresos DESC").
			Limit(10).
			Scan(&filas).Error
		if err != nil {
			return nil, err
		}
	}

	out := make([]ClienteTop, 0, len(filas))
	for _, f := range filas {
		top := ClienteTop{
			Nombre:       f.Nombre,
			Pedidos:      f.Pedidos,
			Ingresos:     redondear2(f.Ingresos),
			UltimoPedido: f.UltimoPedido,
		}
		if f.Pedidos > 0 {
			top.Promedio = redondear2(f.Ingresos / float64(f.Pedidos))
		}
		out = append(out, top)
	}
	return out, nil
}
