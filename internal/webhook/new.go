package webhook

import (
	"qa-triage-assistant/internal/triage"
	pkgLog "qa-triage-assistant/pkg/log"
)

type Handler struct {
	triageUC triage.UseCase
	security *SecurityValidator
	l        pkgLog.Logger
}

func NewHandler(
	triageUC triage.UseCase,
	securityConfig SecurityConfig,
	l pkgLog.Logger,
) *Handler {
	return &Handler{
		triageUC: triageUC,
		security: NewSecurityValidator(securityConfig),
		l:        l,
	}
}
