// Package http exposes the filesystem facade over a REST surface.
package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/shellfs/internal/remote/command"
	"github.com/GriffinCanCode/shellfs/internal/remote/fs"
	"github.com/GriffinCanCode/shellfs/internal/shared/types"
)

// Handlers contains all HTTP handlers.
type Handlers struct {
	fs *fs.Service
}

// NewHandlers creates a handler set over the facade.
func NewHandlers(service *fs.Service) *Handlers {
	return &Handlers{fs: service}
}

// Health reports service liveness.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type pathRequest struct {
	Path string `json:"path" binding:"required"`
}

type transferRequest struct {
	Source      string `json:"source" binding:"required"`
	Destination string `json:"destination" binding:"required"`
}

type chmodRequest struct {
	Path string `json:"path" binding:"required"`
	Mode string `json:"mode" binding:"required"`
	// Unchecked uses the fire-and-forget literal form that does not inspect
	// the command outcome.
	Unchecked bool `json:"unchecked"`
}

// CreateFile creates an empty file.
func (h *Handlers) CreateFile(c *gin.Context) {
	var req pathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	entry, err := h.fs.Create(c.Request.Context(), req.Path)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "path": entry.Path, "kind": entry.Kind.String()})
}

// CreateDirectory creates a directory chain.
func (h *Handlers) CreateDirectory(c *gin.Context) {
	var req pathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	entry, err := h.fs.MakeDirectory(c.Request.Context(), req.Path)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "path": entry.Path, "kind": entry.Kind.String()})
}

// Exists checks whether a path resolves.
func (h *Handlers) Exists(c *gin.Context) {
	path := c.Query("path")
	exists, err := h.fs.Exists(c.Request.Context(), path)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "path": path, "exists": exists})
}

// Copy copies a file.
func (h *Handlers) Copy(c *gin.Context) {
	h.transfer(c, h.fs.Copy)
}

// Move moves a file.
func (h *Handlers) Move(c *gin.Context) {
	h.transfer(c, h.fs.Move)
}

func (h *Handlers) transfer(c *gin.Context, op func(ctx context.Context, source, destination string) error) {
	var req transferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if err := op(c.Request.Context(), req.Source, req.Destination); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Chmod changes permissions, checked or literal per the request.
func (h *Handlers) Chmod(c *gin.Context) {
	var req chmodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	if req.Unchecked {
		if err := h.fs.ChmodLiteral(ctx, req.Path, req.Mode); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "checked": false})
		return
	}

	perms, err := command.PermFromOctal(req.Mode)
	if err != nil {
		fail(c, err)
		return
	}
	if err := h.fs.Chmod(ctx, req.Path, perms); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "checked": true})
}

// Delete removes a path; absent paths are a no-op.
func (h *Handlers) Delete(c *gin.Context) {
	path := c.Query("path")
	if err := h.fs.Delete(c.Request.Context(), path); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "path": path})
}

// fail maps facade error kinds onto HTTP status codes.
func fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, types.ErrInvalidArgument):
		status = http.StatusBadRequest
	case errors.Is(err, types.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, types.ErrAlreadyExists):
		status = http.StatusConflict
	case errors.Is(err, types.ErrNotReady):
		status = http.StatusServiceUnavailable
	case types.IsCommandError(err):
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{"success": false, "error": err.Error()})
}
