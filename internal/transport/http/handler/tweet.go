package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"microblog/internal/app"
	"microblog/internal/transport/http/middleware"
	"microblog/internal/transport/http/response"
)

type TweetHandler struct {
	tweets *app.TweetService
}

func NewTweetHandler(tweets *app.TweetService) *TweetHandler {
	return &TweetHandler{tweets: tweets}
}

type PostTweetRequest struct {
	TweetID string `json:"tweet_id"`
	Content string `json:"content"`
	By      string `json:"by"`
}

type UpdateTweetRequest struct {
	Content string `json:"content"`
}

func (h *TweetHandler) Post(c *gin.Context) {
	var req PostTweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	by := req.By
	if by == "" {
		if userID, exists := c.Get(middleware.ContextUserIDKey); exists {
			by, _ = userID.(string)
		}
	}

	tweet, err := h.tweets.Post(c.Request.Context(), app.PostTweetInput{
		TweetID:  req.TweetID,
		Content:  req.Content,
		ByUserID: by,
	})
	if err != nil {
		writeDomainError(c, err, "post tweet failed")
		return
	}
	response.Created(c, tweet)
}

func (h *TweetHandler) List(c *gin.Context) {
	tweets, err := h.tweets.List(c.Request.Context())
	if err != nil {
		writeDomainError(c, err, "list tweets failed")
		return
	}
	response.OK(c, tweets)
}

func (h *TweetHandler) Get(c *gin.Context) {
	tweet, err := h.tweets.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeDomainError(c, err, "get tweet failed")
		return
	}
	response.OK(c, tweet)
}

func (h *TweetHandler) Update(c *gin.Context) {
	var req UpdateTweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	tweet, err := h.tweets.Update(c.Request.Context(), c.Param("id"), req.Content)
	if err != nil {
		writeDomainError(c, err, "update tweet failed")
		return
	}
	response.OK(c, tweet)
}

func (h *TweetHandler) Delete(c *gin.Context) {
	id, err := h.tweets.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeDomainError(c, err, "delete tweet failed")
		return
	}
	response.OK(c, gin.H{"deleted": id})
}
