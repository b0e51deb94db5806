package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/shellfs/internal/remote/command"
)

type mountRequest struct {
	Device    string `json:"device" binding:"required"`
	Directory string `json:"directory" binding:"required"`
	FSType    string `json:"fstype" binding:"required"`
	ReadOnly  bool   `json:"readonly"`
	Options   string `json:"options"`
}

// Mount mounts a device.
func (h *Handlers) Mount(c *gin.Context) {
	var req mountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	mp := command.MountPoint{
		Device:   req.Device,
		Name:     req.Directory,
		FSType:   req.FSType,
		ReadOnly: req.ReadOnly,
	}
	if err := h.fs.Mount(c.Request.Context(), mp, req.Options); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "directory": mp.Name})
}

// Unmount unmounts a mount directory.
func (h *Handlers) Unmount(c *gin.Context) {
	directory := c.Query("directory")
	if err := h.fs.Unmount(c.Request.Context(), directory); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "directory": directory})
}

// ListMounts returns the mount inventory.
func (h *Handlers) ListMounts(c *gin.Context) {
	mounts := h.fs.MountPoints()
	out := make([]gin.H, 0, len(mounts))
	for _, mp := range mounts {
		out = append(out, gin.H{
			"device":    mp.Device,
			"directory": mp.Name,
			"fstype":    mp.FSType,
			"readonly":  mp.ReadOnly,
		})
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "mounts": out})
}

// MountReadOnly answers the read-only query for one mount directory.
func (h *Handlers) MountReadOnly(c *gin.Context) {
	directory := c.Query("directory")
	readOnly, err := h.fs.IsMountPointReadOnly(directory)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "directory": directory, "readonly": readOnly})
}

// DeviceBlocks lists block device nodes on the target.
func (h *Handlers) DeviceBlocks(c *gin.Context) {
	blocks, err := h.fs.DeviceBlocks(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	out := make([]gin.H, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, gin.H{"path": b.Path, "name": b.Name})
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "blocks": out})
}
