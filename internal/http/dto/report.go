package dto

import "speakup.app/intake/internal/model"

type ReportResponse struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Status   string `json:"status"`
	Category string `json:"category"`
	Date     string `json:"date"`
}

func FromStoredReports(reports []model.StoredReport) []ReportResponse {
	out := make([]ReportResponse, 0, len(reports))
	for _, r := range reports {
		out = append(out, ReportResponse{
			ID:       r.ID,
			Title:    r.Title,
			Status:   string(r.Status),
			Category: r.Category,
			Date:     r.Date,
		})
	}
	return out
}

type ReportStatsResponse struct {
	Total      int `json:"total"`
	Open       int `json:"open"`
	InProgress int `json:"in_progress"`
	Resolved   int `json:"resolved"`
}
