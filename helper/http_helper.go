package helper

import (
	"net/http"
	"reflect"
	"strings"
	"unicode"

	"himpunan-cms/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"gopkg.in/go-playground/validator.v9"
	en_translations "gopkg.in/go-playground/validator.v9/translations/en"
)

const (
	textSuccess = `success`
	textError   = `error`
)

// HTTPHelper serializes the response envelope. Success bodies are
// {status, data} with optional pagination; errors are
// {status, code, message} with the HTTP code derived from the typed
// error, never from raw persistence errors.
type HTTPHelper struct {
	Validate   *validator.Validate
	Translator ut.Translator
}

func NewHTTPHelper() *HTTPHelper {
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	translator, _ := uni.GetTranslator("en")

	validate := validator.New()
	en_translations.RegisterDefaultTranslations(validate, translator)

	return &HTTPHelper{
		Validate:   validate,
		Translator: translator,
	}
}

func (u *HTTPHelper) getTypeData(i interface{}) string {
	v := reflect.ValueOf(i)
	v = reflect.Indirect(v)

	return v.Type().String()
}

// GetStatusCode maps the error taxonomy to HTTP status codes.
func (u *HTTPHelper) GetStatusCode(err error) int {
	statusCode := http.StatusOK
	if err != nil {
		switch u.getTypeData(err) {
		case "models.ErrorBadRequest":
			statusCode = http.StatusBadRequest
		case "models.ErrorUnauthorized":
			statusCode = http.StatusUnauthorized
		case "models.ErrorNotFound":
			statusCode = http.StatusNotFound
		case "models.ErrorConflict":
			statusCode = http.StatusConflict
		case "models.ErrorInternalServer":
			statusCode = http.StatusInternalServerError
		default:
			statusCode = http.StatusInternalServerError
		}
	}

	return statusCode
}

// SendSuccess ...
// Send success response to consumers.
func (u *HTTPHelper) SendSuccess(c *gin.Context, data interface{}) error {
	c.JSON(http.StatusOK, map[string]interface{}{
		"status": textSuccess,
		"data":   data,
	})
	return nil
}

// SendSuccessWithPagination ...
// Send a paginated success response to consumers.
func (u *HTTPHelper) SendSuccessWithPagination(c *gin.Context, data interface{}, pagination models.Pagination) error {
	c.JSON(http.StatusOK, map[string]interface{}{
		"status":     textSuccess,
		"data":       data,
		"pagination": pagination,
	})
	return nil
}

// SendError ...
// Send error response to consumers. Internal errors keep a generic
// message so persistence details never reach the client.
func (u *HTTPHelper) SendError(c *gin.Context, err error) error {
	code := u.GetStatusCode(err)

	message := err.Error()
	if code == http.StatusInternalServerError {
		message = "internal server error"
	}

	c.JSON(code, map[string]interface{}{
		"status":  textError,
		"code":    code,
		"message": message,
	})
	return nil
}

// SendBadRequest ...
// Send bad request response to consumers.
func (u *HTTPHelper) SendBadRequest(c *gin.Context, message string) error {
	return u.SendError(c, models.ErrorBadRequest{Message: message})
}

// SendUnauthorizedError ...
// Send unauthorized response to consumers.
func (u *HTTPHelper) SendUnauthorizedError(c *gin.Context, message string) error {
	return u.SendError(c, models.ErrorUnauthorized{Message: message})
}

// SendNotFoundError ...
// Send not found response to consumers.
func (u *HTTPHelper) SendNotFoundError(c *gin.Context, message string) error {
	return u.SendError(c, models.ErrorNotFound{Message: message})
}

// SendValidationError ...
// Send translated field errors to consumers.
func (u *HTTPHelper) SendValidationError(c *gin.Context, validationErrors validator.ValidationErrors) error {
	errorResponse := map[string][]string{}
	errorTranslation := validationErrors.Translate(u.Translator)
	for _, err := range validationErrors {
		errKey := underscore(err.Field())
		errorResponse[errKey] = append(errorResponse[errKey], errorTranslation[err.Namespace()])
	}

	c.JSON(http.StatusBadRequest, map[string]interface{}{
		"status":  textError,
		"code":    http.StatusBadRequest,
		"message": errorResponse,
	})
	return nil
}

func (u *HTTPHelper) EmptyJSONMap() map[string]interface{} {
	return make(map[string]interface{})
}

// BindJSON binds the request body and runs struct validation,
// replying with the matching error response when either fails.
func (u *HTTPHelper) BindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		u.SendBadRequest(c, err.Error())
		return false
	}

	if err := u.Validate.Struct(req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			u.SendValidationError(c, validationErrors)
			return false
		}
		u.SendBadRequest(c, err.Error())
		return false
	}

	return true
}

func underscore(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
