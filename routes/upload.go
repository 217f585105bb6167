package routes

import (
	"fmt"
	"time"

	"dinereserve-server/storage"
	"dinereserve-server/utils"

	"github.com/kataras/iris/v12"
)

type UploadImageInput struct {
	Image string `json:"image" validate:"required"`
}

// UploadImage accepts a base64 data URL, validates type and size, and
// stores it in the image CDN. Returns the hosted URL.
func UploadImage(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var input UploadImageInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if _, _, err := storage.ValidateBase64Image(input.Image); err != nil {
		switch err {
		case storage.ErrImageTooLarge:
			utils.CreateError(iris.StatusRequestEntityTooLarge, "Image Too Large",
				fmt.Sprintf("images are limited to %d bytes", storage.MaxImageBytes), ctx)
		case storage.ErrUnsupportedMIME:
			utils.CreateError(iris.StatusUnsupportedMediaType, "Unsupported Image Type",
				"only jpeg, png and webp images are accepted", ctx)
		default:
			utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid image payload", ctx)
		}
		return
	}

	publicID := fmt.Sprintf("dinereserve/%d-%d", userID, time.Now().UnixNano())
	url, err := storage.UploadBase64Image(input.Image, publicID)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"url": url})
}
