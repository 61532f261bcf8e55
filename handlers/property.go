package handlers

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/UShishir5355t/real-estate-mvp/models"
	"github.com/UShishir5355t/real-estate-mvp/services"
	"github.com/UShishir5355t/real-estate-mvp/storage"
	"github.com/UShishir5355t/real-estate-mvp/utils"
)

const maxUploadMemory = 32 << 20

// PropertyController serves the admin panel's listing management.
type PropertyController struct {
	service services.PropertyService
}

func NewPropertyController(service services.PropertyService) *PropertyController {
	return &PropertyController{service: service}
}

func (pc *PropertyController) ListProperties(c echo.Context) error {
	properties, err := pc.service.ListProperties(c.Request().Context())
	if err != nil {
		return failure(c, err, "load properties")
	}
	return c.JSON(http.StatusOK, properties)
}

// CreateProperty accepts either a JSON body or a multipart form with the
// listing JSON in a "property" field and files under "images".
func (pc *PropertyController) CreateProperty(c echo.Context) error {
	var input models.PropertyInput
	files, closeFiles, err := bindWithImages(c, &input)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	defer closeFiles()

	property, err := pc.service.CreateProperty(c.Request().Context(), input, files)
	if err != nil {
		return failure(c, err, "create property")
	}
	return c.JSON(http.StatusCreated, property)
}

func (pc *PropertyController) GetProperty(c echo.Context) error {
	id := c.Param("id")
	if !utils.IsValidDocumentID(id) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Property not found"})
	}
	property, err := pc.service.GetProperty(c.Request().Context(), id)
	if err != nil {
		return failure(c, err, "load property")
	}
	return c.JSON(http.StatusOK, property)
}

// UpdateProperty applies the fields present in the body. Files sent under
// "images" are appended to the listing's image list.
func (pc *PropertyController) UpdateProperty(c echo.Context) error {
	id := c.Param("id")
	if !utils.IsValidDocumentID(id) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Property not found"})
	}

	var update models.PropertyUpdate
	files, closeFiles, err := bindWithImages(c, &update)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	defer closeFiles()

	if update.IsEmpty() && len(files) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "No fields to update"})
	}

	property, err := pc.service.UpdateProperty(c.Request().Context(), id, update, files)
	if err != nil {
		return failure(c, err, "update property")
	}
	return c.JSON(http.StatusOK, property)
}

func (pc *PropertyController) DeleteProperty(c echo.Context) error {
	id := c.Param("id")
	if !utils.IsValidDocumentID(id) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Property not found"})
	}
	report, err := pc.service.DeleteProperty(c.Request().Context(), id)
	if err != nil {
		return failure(c, err, "delete property")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Property deleted successfully",
		"cleanup": report,
	})
}

type deleteImageRequest struct {
	URL string `json:"url" validate:"required"`
}

func (pc *PropertyController) DeleteImage(c echo.Context) error {
	id := c.Param("id")
	if !utils.IsValidDocumentID(id) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Property not found"})
	}
	var req deleteImageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Image url is required"})
	}

	outcome, err := pc.service.DeleteImageFromProperty(c.Request().Context(), id, req.URL)
	if err != nil {
		return failure(c, err, "delete image")
	}
	return c.JSON(http.StatusOK, outcome)
}

// bindWithImages decodes the listing payload into v and opens any uploaded
// images. The returned func closes the opened files.
func bindWithImages(c echo.Context, v interface{}) ([]storage.File, func(), error) {
	noop := func() {}
	if !strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		if err := json.NewDecoder(c.Request().Body).Decode(v); err != nil {
			return nil, noop, err
		}
		return nil, noop, nil
	}

	if err := c.Request().ParseMultipartForm(maxUploadMemory); err != nil {
		return nil, noop, err
	}
	form := c.Request().MultipartForm
	if payload := form.Value["property"]; len(payload) > 0 {
		if err := json.Unmarshal([]byte(payload[0]), v); err != nil {
			return nil, noop, err
		}
	}

	var (
		files  []storage.File
		opened []multipart.File
	)
	closeAll := func() {
		for _, f := range opened {
			f.Close()
		}
	}
	for _, fh := range form.File["images"] {
		f, err := fh.Open()
		if err != nil {
			closeAll()
			return nil, noop, err
		}
		opened = append(opened, f)
		files = append(files, storage.File{
			Name:        fh.Filename,
			ContentType: fh.Header.Get(echo.HeaderContentType),
			Body:        f,
		})
	}
	return files, closeAll, nil
}
