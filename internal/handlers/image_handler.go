package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/glencullen/golfpoi/internal/httperr"
	"github.com/glencullen/golfpoi/internal/httpresp"
	"github.com/glencullen/golfpoi/internal/imagestore"
)

type ImageHandler struct {
	images imagestore.Store
}

func NewImageHandler(images imagestore.Store) *ImageHandler {
	return &ImageHandler{images: images}
}

// GetCourseImages fetches hosted metadata for a comma-separated id list.
func (h *ImageHandler) GetCourseImages(c *gin.Context) {
	idList := c.Param("idList")

	var ids []string
	for _, id := range strings.Split(idList, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}

	images, err := h.images.List(c.Request.Context(), ids)
	if err != nil {
		httperr.Internal(c, "failed_to_list_images", "Error listing images.")
		return
	}

	httpresp.OK(c, images)
}
