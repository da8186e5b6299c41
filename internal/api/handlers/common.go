package handlers

import (
	"errors"
	"net/http"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/yudhis/interviewmate/internal/utils"
)

// APIError is the uniform error envelope. When the failure came from an
// external provider, Details carries the raw upstream body excerpt and
// UpstreamStatus the remote HTTP status, relayed verbatim.
type APIError struct {
	Error          string `json:"error"`
	Details        string `json:"details,omitempty"`
	UpstreamStatus int    `json:"status,omitempty"`
}

const detailsExcerptLen = 200

// truncateDetails shortens an upstream body on a rune boundary so the JSON
// details field never carries a split multi-byte character.
func truncateDetails(s string) string {
	if len(s) <= detailsExcerptLen {
		return s
	}
	n := detailsExcerptLen
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func writeError(c *gin.Context, err error) {
	env := APIError{Error: http.StatusText(http.StatusInternalServerError)}
	status := utils.HTTPStatus(err)

	var ae *utils.AppError
	if errors.As(err, &ae) {
		env.Error = ae.Message
	}

	if upStatus, body, ok := utils.UpstreamDetail(err); ok {
		env.UpstreamStatus = upStatus
		env.Details = truncateDetails(body)
		// Provider failures relay the provider's status to the caller.
		if upStatus >= 400 {
			status = upStatus
		}
	}

	c.JSON(status, env)
}
