package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/foodgram-backend/internal/platform/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// RespondError writes the error envelope. The message is localized from code; err,
// when present, becomes the detail for client errors and is only logged for server errors.
func RespondError(c *gin.Context, status int, code string, err error) {
	body := APIError{
		Message: Message(c.GetHeader("Accept-Language"), code),
		Code:    code,
	}
	if err != nil {
		_ = c.Error(err)
		if status < http.StatusInternalServerError {
			body.Detail = err.Error()
		}
	}
	c.AbortWithStatusJSON(status, ErrorEnvelope{Error: body})
}

// RespondAPIError maps a service error onto its status and code. Errors that are not
// *apierr.Error are reported as 500 internal_error.
func RespondAPIError(c *gin.Context, err error) {
	ae := apierr.From(err, "internal_error")
	status := ae.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}
	RespondError(c, status, ae.Code, ae.Err)
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

func RespondNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// RespondFile sends body as a download named filename.
func RespondFile(c *gin.Context, filename, contentType string, body []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, body)
}
