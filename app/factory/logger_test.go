package factory

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

func TestNewModuleLogger(t *testing.T) {
	logger := NewModuleLogger("membership-expiry-notifier")
	entry, ok := logger.(*logrus.Entry)
	if !ok {
		t.Fatalf("expected *logrus.Entry, got %T", logger)
	}
	if entry.Data["module"] != "membership-expiry-notifier" {
		t.Fatalf("expected module field, got %+v", entry.Data)
	}
}

func TestLoggerWithContext(t *testing.T) {
	tests := []struct {
		name     string
		request  string
		response string
		want     string
	}{
		{name: "caller id", request: "rest-caller-1", response: "rest-generated-2", want: "rest-caller-1"},
		{name: "generated id", response: "rest-generated-2", want: "rest-generated-2"},
		{name: "none", want: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
			if tc.request != "" {
				req.Header.Set(echo.HeaderXRequestID, tc.request)
			}
			rec := httptest.NewRecorder()
			ctx := e.NewContext(req, rec)
			if tc.response != "" {
				ctx.Response().Header().Set(echo.HeaderXRequestID, tc.response)
			}

			logger := LoggerWithContext(logrus.NewEntry(logrus.StandardLogger()), ctx)
			entry, ok := logger.(*logrus.Entry)
			if !ok {
				t.Fatalf("expected *logrus.Entry, got %T", logger)
			}
			if entry.Data["request_id"] != tc.want {
				t.Fatalf("expected request_id %q, got %+v", tc.want, entry.Data)
			}
		})
	}
}
