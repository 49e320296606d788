package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"uinify-backend/internal/transport/http/response"
)

const msgInvalidBody = "Invalid JSON body."

// jsonObject keeps raw values so that an absent key and a null value stay distinguishable.
type jsonObject map[string]json.RawMessage

// bindObject decodes the body as a JSON object and checks required keys in
// order. It writes the 400 response itself and reports false on failure.
func bindObject(c *gin.Context, required ...string) (jsonObject, bool) {
	raw, err := c.GetRawData()
	if err != nil {
		response.Error(c, http.StatusBadRequest, msgInvalidBody)
		return nil, false
	}

	var body jsonObject
	if err := json.Unmarshal(raw, &body); err != nil || body == nil {
		response.Error(c, http.StatusBadRequest, msgInvalidBody)
		return nil, false
	}

	for _, key := range required {
		if _, ok := body[key]; !ok {
			response.Error(c, http.StatusBadRequest, fmt.Sprintf("Missing '%s' key.", key))
			return nil, false
		}
	}
	return body, true
}

func (o jsonObject) String(c *gin.Context, key string) (string, bool) {
	raw := o[key]
	var value string
	if isNull(raw) || json.Unmarshal(raw, &value) != nil {
		invalidValue(c, key)
		return "", false
	}
	return value, true
}

// NullableString accepts a JSON string or null.
func (o jsonObject) NullableString(c *gin.Context, key string) (*string, bool) {
	raw := o[key]
	if isNull(raw) {
		return nil, true
	}
	var value string
	if json.Unmarshal(raw, &value) != nil {
		invalidValue(c, key)
		return nil, false
	}
	return &value, true
}

func (o jsonObject) ID(c *gin.Context, key string) (uint, bool) {
	raw := o[key]
	var value uint64
	if isNull(raw) || json.Unmarshal(raw, &value) != nil {
		invalidValue(c, key)
		return 0, false
	}
	return uint(value), true
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func invalidValue(c *gin.Context, key string) {
	response.Error(c, http.StatusBadRequest, fmt.Sprintf("Invalid '%s' value.", key))
}

// pathID parses the :id segment. Anything that is not a non-negative
// integer addressable by the store is treated as an unknown id.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 63)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func notFound(c *gin.Context, entity string) {
	response.Error(c, http.StatusNotFound, fmt.Sprintf("%s '%s' not found.", entity, c.Param("id")))
}

func internalError(c *gin.Context, err error) {
	_ = c.Error(err)
	response.Error(c, http.StatusInternalServerError, err.Error())
}
