package handler

import (
	"go.uber.org/zap"

	"police-personnel/config"
	"police-personnel/internal/service"
)

// Handler aggregate of every handler
type Handler struct {
	Auth      *AuthHandler
	User      *UserHandler
	Personnel *PersonnelHandler
	PosCode   *PosCodeHandler
	Import    *ImportHandler
	Export    *ExportHandler
}

// NewHandler creates the aggregate
func NewHandler(cfg *config.Config, svc *service.Service, logger *zap.Logger) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(svc.Auth, &cfg.Auth.Cookie, logger),
		User:      NewUserHandler(svc.User),
		Personnel: NewPersonnelHandler(svc.Personnel),
		PosCode:   NewPosCodeHandler(svc.PosCode),
		Import:    NewImportHandler(svc.Import, cfg.Import.MaxUploadBytes()),
		Export:    NewExportHandler(svc.Export),
	}
}
