package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"speakup.app/intake/internal/conversation"
	"speakup.app/intake/internal/http/dto"
	"speakup.app/intake/internal/http/handler"
)

var _ = Describe("ChatHandler", func() {
	var (
		router     *gin.Engine
		classifier *mockClassifier
		submitter  *mockSubmitter
		cookie     string
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		classifier = &mockClassifier{}
		submitter = &mockSubmitter{}
		cookie = ""

		manager := conversation.NewManager(classifier, submitter, conversation.Config{
			TypingDelay: 0,
			ResetDelay:  time.Hour,
		}, time.Hour)
		h := handler.NewChatHandler(manager, false)

		chat := router.Group("/api/v1/chat")
		{
			chat.GET("", h.Get)
			chat.POST("/messages", h.Send)
			chat.POST("/retry", h.Retry)
			chat.DELETE("", h.Delete)
		}
	})

	perform := func(method, path string, body any) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			Expect(json.NewEncoder(&buf).Encode(body)).To(Succeed())
		}

		req := httptest.NewRequest(method, path, &buf)
		req.Header.Set("Content-Type", "application/json")
		if cookie != "" {
			req.Header.Set("Cookie", cookie)
		}
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if sc := w.Header().Get("Set-Cookie"); sc != "" {
			cookie = sc
		}
		return w
	}

	send := func(message string) *httptest.ResponseRecorder {
		return perform(http.MethodPost, "/api/v1/chat/messages", map[string]string{"message": message})
	}

	decode := func(w *httptest.ResponseRecorder) dto.ConversationResponse {
		var resp dto.ConversationResponse
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		return resp
	}

	Describe("Get", func() {
		It("creates the conversation and returns the greeting", func() {
			w := perform(http.MethodGet, "/api/v1/chat", nil)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("Set-Cookie")).To(ContainSubstring("speakup_session="))

			resp := decode(w)
			Expect(resp.Step).To(Equal("ask_incident"))
			Expect(resp.Messages).To(HaveLen(1))
			Expect(resp.Messages[0].Sender).To(Equal("assistant"))
		})

		It("reuses the session's conversation on later requests", func() {
			perform(http.MethodGet, "/api/v1/chat", nil)
			Expect(send("yes").Code).To(Equal(http.StatusOK))

			resp := decode(perform(http.MethodGet, "/api/v1/chat", nil))
			Expect(resp.Step).To(Equal("ask_date"))
		})
	})

	Describe("Send", func() {
		It("advances the flow and returns the updated transcript", func() {
			resp := decode(send("yes"))

			Expect(resp.Step).To(Equal("ask_date"))
			Expect(resp.Messages[len(resp.Messages)-1].Text).To(ContainSubstring("What day did the incident happen?"))
		})

		It("returns 400 for an empty message", func() {
			Expect(send("   ").Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 502 and keeps the draft when submission fails", func() {
			classifier.classifyFn = func(_ context.Context, _ string) (string, error) {
				return "Harassment", nil
			}
			submitter.submitFn = func(_ context.Context, _, _, _ string) error {
				return errors.New("backend down")
			}

			send("yes")
			send("July 10 2025")
			send("10am")
			send("I was harassed after class")
			w := send("no")

			Expect(w.Code).To(Equal(http.StatusBadGateway))

			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["conversation"]).NotTo(BeNil())
		})
	})

	Describe("Retry", func() {
		It("retries a failed submission", func() {
			submitted := 0
			submitter.submitFn = func(_ context.Context, _, _, _ string) error {
				submitted++
				if submitted == 1 {
					return errors.New("backend down")
				}
				return nil
			}

			send("yes")
			send("July 10 2025")
			send("10am")
			send("Something happened")
			Expect(send("no").Code).To(Equal(http.StatusBadGateway))

			w := perform(http.MethodPost, "/api/v1/chat/retry", nil)
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(decode(w).Step).To(Equal("completed"))
			Expect(submitted).To(Equal(2))
		})

		It("returns 409 when the session has no conversation", func() {
			w := perform(http.MethodPost, "/api/v1/chat/retry", nil)
			Expect(w.Code).To(Equal(http.StatusConflict))
		})

		It("returns 409 when no submission is pending", func() {
			send("yes")

			w := perform(http.MethodPost, "/api/v1/chat/retry", nil)
			Expect(w.Code).To(Equal(http.StatusConflict))
		})
	})

	Describe("Delete", func() {
		It("discards the conversation", func() {
			send("yes")

			Expect(perform(http.MethodDelete, "/api/v1/chat", nil).Code).To(Equal(http.StatusNoContent))

			resp := decode(perform(http.MethodGet, "/api/v1/chat", nil))
			Expect(resp.Step).To(Equal("ask_incident"))
			Expect(resp.Messages).To(HaveLen(1))
		})
	})
})
