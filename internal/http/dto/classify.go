package dto

type ClassifyRequest struct {
	Description string `json:"description" binding:"required"`
}

type ClassifyResponse struct {
	Category string `json:"category"`
}
