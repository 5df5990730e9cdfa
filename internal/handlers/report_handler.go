package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/clinic-ledger/internal/httperr"
	"github.com/BruksfildServices01/clinic-ledger/internal/middleware"
	ucReport "github.com/BruksfildServices01/clinic-ledger/internal/usecase/report"
)

type ReportHandler struct {
	exportUC *ucReport.ExportReport
}

func NewReportHandler(exportUC *ucReport.ExportReport) *ReportHandler {
	return &ReportHandler{exportUC: exportUC}
}

// Download returns a handler streaming the report rendered as kind.
func (h *ReportHandler) Download(kind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := h.exportUC.Execute(
			c.Request.Context(),
			kind,
			c.Query("start"),
			c.Query("end"),
			c.Query("period"),
		)
		if err != nil {
			var be httperr.BusinessError
			if errors.As(err, &be) {
				httperr.Respond(c, err)
				return
			}
			log.Error().
				Err(err).
				Str("kind", kind).
				Str("request_id", c.GetString(middleware.ContextRequestID)).
				Msg("report export failed")
			httperr.Internal(c, "report_failed", "Report could not be generated.")
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.Name))
		c.Data(http.StatusOK, file.ContentType, file.Body)
	}
}
