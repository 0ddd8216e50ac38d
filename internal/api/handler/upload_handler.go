package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fixflow/maintenance-system/internal/infrastructure/storage"
)

// UploadHandler serves stored report images back to clients.
type UploadHandler struct {
	uploads *storage.LocalStore
}

func NewUploadHandler(uploads *storage.LocalStore) *UploadHandler {
	return &UploadHandler{uploads: uploads}
}

// Serve handles GET /api/uploads/:filename.
//
// @Summary      Serve an uploaded image
// @Tags         uploads
// @Produce      octet-stream
// @Param        filename  path  string  true  "Stored filename"
// @Success      200
// @Failure      404  {object}  messageResponse
// @Router       /api/uploads/{filename} [get]
func (h *UploadHandler) Serve(c echo.Context) error {
	path, err := h.uploads.Path(c.Param("filename"))
	if err != nil {
		if errors.Is(err, storage.ErrFileNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "File not found")
		}
		return err
	}
	return c.File(path)
}
