package chemicalroute

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chemezy-server/internal/interfaces/httpserver/handlers/chemicalhandler"
	"chemezy-server/internal/interfaces/httpserver/responses"
)

type ChemicalRoute struct {
	handler *chemicalhandler.ChemicalHandler
}

func NewChemicalRoute(handler *chemicalhandler.ChemicalHandler) *ChemicalRoute {
	return &ChemicalRoute{
		handler: handler,
	}
}

// RegisterRouter registers chemical routes
func (r *ChemicalRoute) RegisterRouter(rg gin.IRouter) {
	chemicals := rg.Group("/chemicals")
	chemicals.GET("", r.list)
	chemicals.GET("/:formula", r.getByFormula)
}

func (r *ChemicalRoute) list(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	response, err := r.handler.List(ctx)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to list chemicals")
		return
	}

	reqCtx.JSON(http.StatusOK, response)
}

func (r *ChemicalRoute) getByFormula(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	response, err := r.handler.GetByFormula(ctx, reqCtx.Param("formula"))
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to get chemical")
		return
	}

	reqCtx.JSON(http.StatusOK, response)
}
