package dto

type AssistantMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type AssistantRequest struct {
	Message string             `json:"message" binding:"required"`
	History []AssistantMessage `json:"history"`
}

type AssistantResponse struct {
	Response string `json:"response"`
}
