package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	auditRepo "github.com/Tocea2003/Practica-BookSystem/internal/database/audit"
	"github.com/Tocea2003/Practica-BookSystem/internal/entities"
)

const (
	defaultAuditLimit = 100
	maxAuditLimit     = 500
)

// AuditReader lists recorded audit events, newest first.
type AuditReader interface {
	GetEvents(filter auditRepo.Filter, limit, offset int) ([]entities.AuditEvent, int64, error)
}

type AuditController struct {
	auditService AuditReader
}

func NewAuditController(auditService AuditReader) *AuditController {
	return &AuditController{
		auditService: auditService,
	}
}

// GetAuditEvents returns the most recent audit events as JSON
// GET /api/audit?type=&entity=&correlation_id=&limit=
func (ac *AuditController) GetAuditEvents(c *gin.Context) {
	limit, ok := parseQueryInt(c, "limit", defaultAuditLimit, maxAuditLimit)
	if !ok {
		return
	}
	if limit == 0 {
		limit = defaultAuditLimit
	}

	filter := auditRepo.Filter{
		EventType:     entities.AuditEventType(c.Query("type")),
		EntityType:    c.Query("entity"),
		CorrelationID: c.Query("correlation_id"),
	}

	events, total, err := ac.auditService.GetEvents(filter, limit, 0)
	if err != nil {
		respondInternalError(c, err, "list audit events")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events":       events,
		"limit":        limit,
		"total_events": total,
	})
}
