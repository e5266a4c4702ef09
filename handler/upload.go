package handler

import (
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"restaurant_manager/constants"
	"restaurant_manager/database"
	"restaurant_manager/helper"
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"github.com/gofiber/fiber/v2"
)

const maxImageSize = 5 * 1024 * 1024

var (
	// Uploader and CloudinarySettings are set at startup when credentials exist.
	Uploader           helper.ImageUploader
	CloudinarySettings helper.CloudinaryConfig
)

var errNotAnImage = errors.New("file must be an image up to 5MB")

type signatureRequest struct {
	Kind     string `json:"kind"`
	PublicID string `json:"publicId"`
}

// GenerateSignature signs a direct browser upload into the restaurant's media folder.
func GenerateSignature(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)

	var params signatureRequest
	if err := c.BodyParser(&params); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INVALID_INPUT, err)
	}
	kind := params.Kind
	if kind == "" {
		kind = "menu"
	}

	sig, err := helper.SignUpload(CloudinarySettings, helper.RestaurantMediaFolder(restaurant.ID, kind), params.PublicID, now())
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, sig)
}

func uploadImage(c *fiber.Ctx, folder, publicID string) (string, error) {
	if Uploader == nil {
		return "", helper.ErrUploadNotConfigured
	}
	file, err := c.FormFile("image")
	if err != nil {
		return "", fmt.Errorf("%w: %v", errNotAnImage, err)
	}
	if !isImage(file) {
		return "", errNotAnImage
	}

	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	return Uploader.Upload(c.UserContext(), f, folder, publicID)
}

func isImage(file *multipart.FileHeader) bool {
	return file.Size <= maxImageSize && strings.HasPrefix(file.Header.Get("Content-Type"), "image/")
}

func UploadMenuItemImage(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)
	id := inputID(c)

	if _, err := helper.GetMenuItem(database.DB, restaurant.ID, id); err != nil {
		return respondError(c, err)
	}
	url, err := uploadImage(c, helper.RestaurantMediaFolder(restaurant.ID, "menu"), fmt.Sprintf("item_%d_%d", id, now().UnixNano()))
	if err != nil {
		if errors.Is(err, errNotAnImage) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}
		return respondError(c, err)
	}

	item, err := helper.UpdateMenuItem(database.DB, restaurant.ID, id, model.UpdateMenuItemInput{ImageURL: &url})
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, item)
}

// UploadBrandingImage replaces the logo or the banner.
func UploadBrandingImage(c *fiber.Ctx) error {
	restaurant := currentRestaurant(c)
	kind := c.Params("kind")
	if kind != "logo" && kind != "banner" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "kind must be logo or banner", nil)
	}

	url, err := uploadImage(c, helper.RestaurantMediaFolder(restaurant.ID, "branding"), kind)
	if err != nil {
		if errors.Is(err, errNotAnImage) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}
		return respondError(c, err)
	}

	branding := model.BrandingInput{}
	if kind == "logo" {
		branding.LogoURL = url
	} else {
		branding.BannerURL = url
	}
	if err := helper.UpdateRestaurant(database.DB, restaurant, model.UpdateRestaurantInput{Branding: &branding}); err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, restaurant.Branding)
}
