package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"speakup.app/intake/internal/http/handler"
	"speakup.app/intake/internal/model"
)

var _ = Describe("ReportHandler", func() {
	var (
		router *gin.Engine
		svc    *mockReportReader
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		svc = &mockReportReader{}
		h := handler.NewReportHandler(svc)
		router.GET("/api/v1/reports", h.List)
		router.GET("/api/v1/reports/stats", h.Stats)
	})

	perform := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	Describe("List", func() {
		It("returns the stored reports", func() {
			svc.listFn = func(_ context.Context) ([]model.StoredReport, error) {
				return []model.StoredReport{
					{ID: "abc123", Title: "Harassment case", Status: model.ReportStatusOpen, Category: "Harassment", Date: "2025-07-10"},
				}, nil
			}

			w := perform("/api/v1/reports")

			Expect(w.Code).To(Equal(http.StatusOK))

			var resp []map[string]string
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp).To(HaveLen(1))
			Expect(resp[0]["status"]).To(Equal("open"))
		})

		It("returns 502 when the backend is unreachable", func() {
			svc.listFn = func(_ context.Context) ([]model.StoredReport, error) {
				return nil, errors.New("connection refused")
			}

			Expect(perform("/api/v1/reports").Code).To(Equal(http.StatusBadGateway))
		})
	})

	Describe("Stats", func() {
		It("returns the per-status counts", func() {
			svc.statsFn = func(_ context.Context) (model.ReportStats, error) {
				return model.ReportStats{Total: 3, Open: 1, InProgress: 1, Resolved: 1}, nil
			}

			w := perform("/api/v1/reports/stats")

			Expect(w.Code).To(Equal(http.StatusOK))

			var resp map[string]int
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["total"]).To(Equal(3))
			Expect(resp["in_progress"]).To(Equal(1))
		})

		It("returns 502 when the backend is unreachable", func() {
			svc.statsFn = func(_ context.Context) (model.ReportStats, error) {
				return model.ReportStats{}, errors.New("connection refused")
			}

			Expect(perform("/api/v1/reports/stats").Code).To(Equal(http.StatusBadGateway))
		})
	})
})
