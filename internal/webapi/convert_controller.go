package webapi

import (
	"io"
	"net/http"

	"github.com/apex/log"
	"github.com/ivlev/alive2json/internal/converr"
	"github.com/ivlev/alive2json/internal/engine"
	"github.com/ivlev/alive2json/internal/loader"
	"github.com/ivlev/alive2json/internal/output"
	"github.com/ivlev/alive2json/internal/store"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// MaxDocumentSize bounds the request body of a conversion.
const MaxDocumentSize = 32 << 20

const MIMEApplicationJavaScript = "application/javascript"

type ConvertController struct {
	stor           store.ConversionStor
	skipUnresolved bool
}

func NewConvertController(stor store.ConversionStor, skipUnresolved bool) *ConvertController {
	return &ConvertController{stor: stor, skipUnresolved: skipUnresolved}
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// Convert converts the request body. Query parameters: format (alive, lottie),
// emit (module, json, native) and skipUnresolved.
func (c *ConvertController) Convert(ctx echo.Context) error {
	format, ok := loader.ParseFormat(ctx.QueryParam("format"))
	if !ok {
		log.WithField("format", ctx.QueryParam("format")).Warn("unknown format, using alive")
	}

	emit, err := output.ParseEmit(ctx.QueryParam("emit"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	body, err := io.ReadAll(io.LimitReader(ctx.Request().Body, MaxDocumentSize+1))
	if err != nil {
		return errors.Wrap(err, "reading request body")
	}
	if len(body) > MaxDocumentSize {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "document too large")
	}

	opts := loader.Options{
		Format:               format,
		SkipUnresolvedLayers: c.skipUnresolved || ctx.QueryParam("skipUnresolved") == "true",
	}

	data, cached, err := engine.CachedRender(c.stor, body, opts, emit)
	switch {
	case converr.IsParse(err):
		return ctx.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Kind: "parse"})
	case converr.IsStructure(err):
		return ctx.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Kind: "structure"})
	case err != nil:
		return err
	}

	if cached {
		ctx.Response().Header().Set("X-Cache", "hit")
	} else {
		ctx.Response().Header().Set("X-Cache", "miss")
	}

	if emit == output.EmitModule {
		return ctx.Blob(http.StatusOK, MIMEApplicationJavaScript, data)
	}
	return ctx.JSONBlob(http.StatusOK, data)
}

// Health reports liveness and the size of the conversion cache.
func (c *ConvertController) Health(ctx echo.Context) error {
	resp := struct {
		Status string `json:"status"`
		Cached int64  `json:"cached"`
	}{Status: "ok"}

	if c.stor != nil {
		count, err := c.stor.CountConversions()
		if err != nil {
			return err
		}
		resp.Cached = count
	}

	return ctx.JSON(http.StatusOK, resp)
}
