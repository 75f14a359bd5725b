package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Robertabreu23/Plus-Graphics-Actualizado/ledger"
	"github.com/Robertabreu23/Plus-Graphics-Actualizado/utils"

	"github.com/gin-gonic/gin"
)

// respondError traduce los errores del ledger a codigos HTTP:
// validacion 400, no encontrado 404, codigo agotado 409, resto 500.
func respondError(c *gin.Context, message string, err error) {
	switch {
	case ledger.IsValidation(err):
		utils.Error(c, http.StatusBadRequest, message, err)
	case errors.Is(err, ledger.ErrNotFound):
		utils.Error(c, http.StatusNotFound, message, err)
	case errors.Is(err, ledger.ErrCodigoDuplicado):
		utils.Error(c, http.StatusConflict, message, err)
	default:
		utils.Error(c, http.StatusInternalServerError, message, err)
	}
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "ID no valido", err)
		return 0, false
	}
	return uint(id), true
}
