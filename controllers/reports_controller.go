// controllers/reports_controller.go
package controllers

import (
	"net/http"

	"github.com/Robertabreu23/Plus-Graphics-Actualizado/reports"
	"github.com/Robertabreu23/Plus-Graphics-Actualizado/utils"

	"github.com/gin-gonic/gin"
)

// ReportsController sirve los reportes del negocio. Todos aceptan
// ?periodo=week|month|quarter|year (month por defecto).
type ReportsController struct {
	Reportes *reports.Service
}

func NewReportsController(reportes *reports.Service) *ReportsController {
	return &ReportsController{Reportes: reportes}
}

func periodoDe(c *gin.Context) reports.Periodo {
	return reports.ParsePeriodo(c.Query("periodo"))
}

func (r *ReportsController) Dashboard(c *gin.Context) {
	d, err := r.Reportes.GenerarDashboard(periodoDe(c))
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "No se pudo generar el dashboard", err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (r *ReportsController) IngresosTipo(c *gin.Context) {
	ingresos, err := r.Reportes.IngresosPorTipo(periodoDe(c))
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "No se pudo calcular el reporte", err)
		return
	}
	c.JSON(http.StatusOK, ingresos)
}

func (r *ReportsController) Tendencia(c *gin.Context) {
	puntos, err := r.Reportes.Tendencia(periodoDe(c))
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "No se pudo calcular la tendencia", err)
		return
	}
	c.JSON(http.StatusOK, puntos)
}

func (r *ReportsController) ProductosTop(c *gin.Context) {
	tops, err := r.Reportes.ProductosTop(periodoDe(c))
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "No se pudo calcular el reporte", err)
		return
	}
	c.JSON(http.StatusOK, tops)
}

func (r *ReportsController) ClientesTop(c *gin.Context) {
	tops, err := r.Reportes.ClientesTop(periodoDe(c))
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "No se pudo calcular el reporte", err)
		return
	}
	c.JSON(http.StatusOK, tops)
}

// StatsGenerales es el resumen global de la pantalla principal.
func (r *ReportsController) StatsGenerales(c *gin.Context) {
	st, err := r.Reportes.Generales()
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "No se pudieron calcular las estadisticas", err)
		return
	}
	c.JSON(http.StatusOK, st)
}
