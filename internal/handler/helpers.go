package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/manucavallera/Ganaderia-sub001/internal/apierror"
	"github.com/manucavallera/Ganaderia-sub001/internal/middleware"
	"github.com/manucavallera/Ganaderia-sub001/internal/model"
	"github.com/manucavallera/Ganaderia-sub001/internal/service"
	"github.com/manucavallera/Ganaderia-sub001/internal/tenancy"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// responderError maps service errors to HTTP status codes. Cross-tenant reads
// surface as ErrNoEncontrado upstream, so a plain 404 here never reveals
// whether the row exists in another establecimiento.
func responderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoEncontrado):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.Is(err, service.ErrConflicto):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case errors.Is(err, service.ErrVinculoCruzado),
		errors.Is(err, tenancy.ErrSinEstablecimiento),
		errors.Is(err, tenancy.ErrEstablecimientoRequerido):
		c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
	case errors.Is(err, service.ErrInvariante):
		log.Error().Err(err).Str("path", c.FullPath()).Msg("invariante de datos violada")
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
	default:
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	}
}

// claimsEstablecimiento parses the caller's establecimiento from the JWT.
func claimsEstablecimiento(claims *middleware.JWTClaims) *uuid.UUID {
	if claims.EstablecimientoID == nil {
		return nil
	}
	id, err := uuid.Parse(*claims.EstablecimientoID)
	if err != nil {
		return nil
	}
	return &id
}

// filtroDesdeRequest resolves the request's effective tenancy filter once at
// the boundary. Admins may narrow to one tenant via ?establecimiento_id=;
// everyone else is pinned to their own establecimiento.
// Returns false after writing the error response.
func filtroDesdeRequest(c *gin.Context) (tenancy.Filtro, bool) {
	claims := middleware.GetClaims(c)
	esAdmin := claims.Rol == model.RolAdministrador

	var solicitado *uuid.UUID
	if q := c.Query("establecimiento_id"); q != "" {
		id, err := uuid.Parse(q)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("establecimiento_id invalido"))
			return tenancy.Filtro{}, false
		}
		solicitado = &id
	}

	f, err := tenancy.Resolver(claimsEstablecimiento(claims), esAdmin, solicitado)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
		return tenancy.Filtro{}, false
	}
	return f, true
}

// establecimientoParaAlta resolves the target establecimiento for a create.
// The payload's establecimiento_id only matters for admins; a non-admin's
// entity always lands in their own establecimiento.
// Returns false after writing the error response.
func establecimientoParaAlta(c *gin.Context, enPayload *string) (uuid.UUID, bool) {
	claims := middleware.GetClaims(c)
	esAdmin := claims.Rol == model.RolAdministrador

	var solicitado *uuid.UUID
	if enPayload != nil && *enPayload != "" {
		id, err := uuid.Parse(*enPayload)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("establecimiento_id invalido"))
			return uuid.Nil, false
		}
		solicitado = &id
	}

	id, err := tenancy.EstablecimientoParaAlta(claimsEstablecimiento(claims), esAdmin, solicitado)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
		return uuid.Nil, false
	}
	return id, true
}

// parseIDParam reads the :id path parameter.
// Returns false after writing the error response.
func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return uuid.Nil, false
	}
	return id, true
}
