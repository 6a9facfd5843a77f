package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Gimnasio-api/internal/application/backup"
)

// BackupHandler respaldos manuales. La restauración solo se hace desde gymctl con el servidor detenido.
type BackupHandler struct {
	svc *backup.Service
}

// NewBackupHandler construye el handler.
func NewBackupHandler(svc *backup.Service) *BackupHandler {
	return &BackupHandler{svc: svc}
}

// List respaldos existentes, más recientes primero.
func (h *BackupHandler) List(c *fiber.Ctx) error {
	out, err := h.svc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear respaldo
// @Description  Copia el archivo de la base de datos a la carpeta de respaldos y elimina los más antiguos.
// @Tags         backups
// @Security     Bearer
// @Produce      json
// @Success      201  {object}  dto.BackupInfo
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/backups [post]
func (h *BackupHandler) Create(c *fiber.Ctx) error {
	info, err := h.svc.Create(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(info)
}
