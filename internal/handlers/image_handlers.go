package handlers

import (
	"io"
	"net/http"

	"qrdine/internal/common"
	"qrdine/internal/logger"
	"qrdine/internal/services"

	"github.com/labstack/echo/v4"
)

type ImageHandlers struct {
	imageService services.ImageService
	log          *logger.Logger
}

func NewImageHandlers(imageService services.ImageService, log *logger.Logger) *ImageHandlers {
	return &ImageHandlers{
		imageService: imageService,
		log:          log,
	}
}

// UploadImage handles POST /restaurants/:rid/images with a multipart "file" field
func (h *ImageHandlers) UploadImage(c echo.Context) error {
	restaurantID, err := restaurantParam(c)
	if err != nil {
		return common.SendValidationError(c, "rid", err.Error())
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return common.SendValidationError(c, "file", "file is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return common.SendClientError(c, "Could not read uploaded file")
	}
	defer file.Close()

	// one byte past the limit so oversized uploads are still rejected
	data, err := io.ReadAll(io.LimitReader(file, services.MaxImageSize+1))
	if err != nil {
		return common.SendClientError(c, "Could not read uploaded file")
	}

	url, err := h.imageService.Upload(c.Request().Context(), restaurantID, data)
	if err != nil {
		return sendError(c, h.log, "upload_image", err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Image uploaded successfully",
		"url":     url,
	})
}
