package dto

import "time"

// BackupInfo archivo de respaldo en el directorio de respaldos.
type BackupInfo struct {
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

// BackupListResponse respuesta de GET /api/backups.
type BackupListResponse struct {
	Dir     string       `json:"dir"`
	Backups []BackupInfo `json:"backups"`
}
