package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"speakup.app/intake/internal/http/handler"
)

var _ = Describe("ClassifyHandler", func() {
	var (
		router     *gin.Engine
		classifier *mockClassifier
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		classifier = &mockClassifier{}
		h := handler.NewClassifyHandler(classifier)
		router.POST("/api/v1/classify", h.Classify)
	})

	perform := func(body any) *httptest.ResponseRecorder {
		raw, _ := json.Marshal(body)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/classify", bytes.NewBuffer(raw))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	It("returns the detected category", func() {
		classifier.classifyFn = func(_ context.Context, description string) (string, error) {
			Expect(description).To(Equal("someone took my laptop"))
			return "Theft", nil
		}

		w := perform(map[string]string{"description": "someone took my laptop"})

		Expect(w.Code).To(Equal(http.StatusOK))

		var resp map[string]string
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp["category"]).To(Equal("Theft"))
	})

	It("returns 400 when the description is missing", func() {
		w := perform(map[string]string{})
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("returns 500 when classification fails", func() {
		classifier.classifyFn = func(_ context.Context, _ string) (string, error) {
			return "", errors.New("model unavailable")
		}

		w := perform(map[string]string{"description": "something happened"})
		Expect(w.Code).To(Equal(http.StatusInternalServerError))
	})
})
