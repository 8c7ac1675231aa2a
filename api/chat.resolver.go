package api

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	errEmptyMessage   = errors.New("message is required")
	errMessageTooLong = errors.New("message too long - must be < 2000 characters")
)

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Response    string   `json:"response"`
	Timestamp   string   `json:"timestamp"`
	SourcesUsed []string `json:"sourcesUsed"`
}

type chatTurnResponse struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

func (m ApiHandler) chat(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		returnErrorJsonCode(err, c, 401)
		return
	}

	var requestBody chatRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}
	if len(requestBody.Message) == 0 {
		returnErrorJsonCode(errEmptyMessage, c, 400)
		return
	}
	if len(requestBody.Message) > 2000 {
		returnErrorJsonCode(errMessageTooLong, c, 400)
		return
	}

	response, err := m.ChatService.AnswerQuestion(c.Request.Context(), userID, requestBody.Message)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, chatResponse{
		Response:    response.Response,
		Timestamp:   response.Timestamp.Format(time.RFC3339),
		SourcesUsed: response.SourcesUsed,
	})
}

func (m ApiHandler) getChatHistory(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		returnErrorJsonCode(err, c, 401)
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			returnErrorJsonCode(err, c, 400)
			return
		}
	}

	turns, err := m.ChatService.GetHistory(c.Request.Context(), userID, limit)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	out := []chatTurnResponse{}
	for _, turn := range turns {
		out = append(out, chatTurnResponse{
			Role:      string(turn.Role),
			Content:   turn.Content,
			Timestamp: turn.Timestamp.Format(time.RFC3339),
		})
	}
	c.JSON(200, out)
}

func (m ApiHandler) clearChatHistory(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		returnErrorJsonCode(err, c, 401)
		return
	}

	if err := m.ChatService.ClearHistory(c.Request.Context(), userID); err != nil {
		returnErrorJson(err, c)
		return
	}
	c.JSON(200, map[string]string{"message": "ok"})
}
