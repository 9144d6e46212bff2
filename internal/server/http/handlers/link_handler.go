package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scandent/orline/internal/pkg/upload"
	"github.com/scandent/orline/internal/server/http/dto"
	"github.com/scandent/orline/internal/usecase"
)

// LinkHandler manages order attachments: stored files and external URLs.
type LinkHandler struct {
	facade LinkFacade
}

// NewLinkHandler constructs LinkHandler.
func NewLinkHandler(facade LinkFacade) *LinkHandler {
	return &LinkHandler{facade: facade}
}

// Add handles POST /api/orders/:id/links.
func (h *LinkHandler) Add(c *gin.Context) {
	var req dto.LinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	link, err := h.facade.AddLink(c.Request.Context(), CurrentUserID(c), c.Param("id"), req.Title, req.URL, req.Provider)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toLinkResponse(*link))
}

// Delete handles DELETE /api/links/:id.
func (h *LinkHandler) Delete(c *gin.Context) {
	if err := h.facade.DeleteLink(c.Request.Context(), CurrentUserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Upload handles POST /api/orders/:id/files with a multipart form. Files ride
// under the "files" field; every file is policy-checked before any transfer.
func (h *LinkHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	parts := form.File["files"]
	if len(parts) == 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	files := make([]usecase.FileUpload, 0, len(parts))
	for _, part := range parts {
		if part.Size > upload.MaxFileSize {
			respondError(c, upload.Validate(part.Filename, part.Size, part.Header.Get("Content-Type")))
			return
		}
		f, err := part.Open()
		if err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		files = append(files, usecase.FileUpload{
			Name:        part.Filename,
			ContentType: part.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	links, err := h.facade.UploadOrderFiles(c.Request.Context(), CurrentUserID(c), c.Param("id"), files)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toLinkResponses(links))
}
