package http

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/locallibrary/internal/security"
)

// PageTemplateData holds the fields shared by every rendered page.
type PageTemplateData struct {
	CSRFToken string
	Flash     string
	Version   string
	Debug     bool
}

// PageContextMiddleware injects shared page data into the Gin context.
// The pending flash message, if any, is consumed here so that it shows
// on exactly one page.
func PageContextMiddleware(flasher Flasher, version string, debug bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		data := PageTemplateData{
			CSRFToken: security.Token(c),
			Version:   version,
			Debug:     debug,
		}
		if flasher != nil {
			data.Flash = flasher.PopFlash(c.Request.Context())
		}

		c.Set("page_template_data", data)
		c.Next()
	}
}

// GetPageTemplateData retrieves shared page data from the Gin context.
func GetPageTemplateData(c *gin.Context) PageTemplateData {
	if data, exists := c.Get("page_template_data"); exists {
		if page, ok := data.(PageTemplateData); ok {
			return page
		}
	}
	return PageTemplateData{}
}

// render merges the shared page data into the handler's template data
// and renders the named template.
func render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	page := GetPageTemplateData(c)
	data["CSRFToken"] = page.CSRFToken
	data["Flash"] = page.Flash
	data["Version"] = page.Version

	c.HTML(status, name, data)
}

// renderNotFound renders the error page with a 404 status.
func renderNotFound(c *gin.Context, resource string) {
	render(c, http.StatusNotFound, "error.html", gin.H{
		"Title":   "Not Found",
		"Message": resource + " not found.",
	})
}

// renderServerError logs the error and renders the error page with a
// 500 status. The error detail is only shown in debug mode.
func renderServerError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s) [request_id=%s]: %v", context, security.GetRequestID(c), err)

	data := gin.H{
		"Title":   "Server Error",
		"Message": "Sorry, something went wrong handling your request.",
	}
	if GetPageTemplateData(c).Debug && err != nil {
		data["Detail"] = err.Error()
	}
	render(c, http.StatusInternalServerError, "error.html", data)
}

// parseIDParam extracts and validates an unsigned integer ID from the
// :id URL parameter. Malformed values render the not-found page and
// return false; the caller must stop handling the request.
func parseIDParam(c *gin.Context, resource string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		renderNotFound(c, resource)
		return 0, false
	}
	return uint(id), true
}

// putFlash stores a one-shot notification when a flasher is configured.
func putFlash(c *gin.Context, flasher Flasher, message string) {
	if flasher != nil {
		flasher.PutFlash(c.Request.Context(), message)
	}
}
