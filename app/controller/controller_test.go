package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/vibast-solutions/ms-go-club/app/entity"
	"github.com/vibast-solutions/ms-go-club/app/middleware"
	"github.com/vibast-solutions/ms-go-club/app/service"
	"github.com/vibast-solutions/ms-go-club/app/types"
)

type fakeLoginService struct {
	loginFn func(ctx context.Context, req *types.LoginRequest, ipAddress string) (*service.LoginResult, error)
}

func (f *fakeLoginService) Login(ctx context.Context, req *types.LoginRequest, ipAddress string) (*service.LoginResult, error) {
	return f.loginFn(ctx, req, ipAddress)
}

type fakeNotificationService struct {
	listFn        func(ctx context.Context, userID uint64, limit int) (*service.NotificationList, error)
	markReadFn    func(ctx context.Context, userID, id uint64) (*entity.Notification, error)
	markAllReadFn func(ctx context.Context, userID uint64) (int64, error)
}

func (f *fakeNotificationService) List(ctx context.Context, userID uint64, limit int) (*service.NotificationList, error) {
	if f.listFn != nil {
		return f.listFn(ctx, userID, limit)
	}
	return &service.NotificationList{}, nil
}

func (f *fakeNotificationService) MarkRead(ctx context.Context, userID, id uint64) (*entity.Notification, error) {
	return f.markReadFn(ctx, userID, id)
}

func (f *fakeNotificationService) MarkAllRead(ctx context.Context, userID uint64) (int64, error) {
	return f.markAllReadFn(ctx, userID)
}

type fakeMembershipService struct {
	listOwnFn       func(ctx context.Context, userID uint64) ([]*entity.MemberSubscription, error)
	recordFn        func(ctx context.Context, actor entity.Actor, req *types.CreateSubscriptionRequest) (*entity.MemberSubscription, error)
	settlePaymentFn func(ctx context.Context, actor entity.Actor, req *types.VerifyPaymentRequest) (*entity.MemberSubscription, error)
}

func (f *fakeMembershipService) ListOwn(ctx context.Context, userID uint64) ([]*entity.MemberSubscription, error) {
	if f.listOwnFn != nil {
		return f.listOwnFn(ctx, userID)
	}
	return nil, nil
}

func (f *fakeMembershipService) List(context.Context, *types.ListSubscriptionsRequest) ([]*entity.MemberSubscription, error) {
	return nil, nil
}

func (f *fakeMembershipService) Record(ctx context.Context, actor entity.Actor, req *types.CreateSubscriptionRequest) (*entity.MemberSubscription, error) {
	return f.recordFn(ctx, actor, req)
}

func (f *fakeMembershipService) SettlePayment(ctx context.Context, actor entity.Actor, req *types.VerifyPaymentRequest) (*entity.MemberSubscription, error) {
	return f.settlePaymentFn(ctx, actor, req)
}

type fakeBookingService struct {
	createFn func(ctx context.Context, actor entity.Actor, req *types.CreateBookingRequest) (*entity.Booking, error)
	cancelFn func(ctx context.Context, actor entity.Actor, id uint64) (*entity.Booking, error)
}

func (f *fakeBookingService) ListOwn(context.Context, uint64) ([]*entity.Booking, error) {
	return nil, nil
}

func (f *fakeBookingService) Create(ctx context.Context, actor entity.Actor, req *types.CreateBookingRequest) (*entity.Booking, error) {
	return f.createFn(ctx, actor, req)
}

func (f *fakeBookingService) Cancel(ctx context.Context, actor entity.Actor, id uint64) (*entity.Booking, error) {
	return f.cancelFn(ctx, actor, id)
}

type fakeSettingService struct {
	updateFn func(ctx context.Context, actor entity.Actor, req *types.UpdateSettingRequest) (*entity.Setting, error)
}

func (f *fakeSettingService) List(context.Context) ([]*entity.Setting, error) {
	return []*entity.Setting{{Key: entity.SettingCourtHourlyRateCents, Value: "2000"}}, nil
}

func (f *fakeSettingService) Update(ctx context.Context, actor entity.Actor, req *types.UpdateSettingRequest) (*entity.Setting, error) {
	return f.updateFn(ctx, actor, req)
}

type fakeActivityReader struct{}

func (fakeActivityReader) Latest(context.Context, int) ([]*entity.ActivityLog, error) {
	return []*entity.ActivityLog{{ID: 1, Action: "auth.login"}}, nil
}

type fakeExpiryJob struct {
	result *service.ExpiryRunResult
	err    error
}

func (f *fakeExpiryJob) Run(context.Context) (*service.ExpiryRunResult, error) {
	return f.result, f.err
}

func newJSONContext(method, target, body string, user *entity.User) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, bytes.NewBufferString(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	if user != nil {
		middleware.SetCurrentUser(ctx, user)
	}
	return ctx, rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v (%s)", err, rec.Body.String())
	}
	return body
}

func TestHealth(t *testing.T) {
	ctx, rec := newJSONContext(http.MethodGet, "/health", "", nil)
	if err := Health(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Fatalf("unexpected response: %d %s", rec.Code, rec.Body.String())
	}
}

func TestRenderPageAnonymousAuth(t *testing.T) {
	ctx, rec := newJSONContext(http.MethodGet, "/login?next=%2Fdashboard", "", nil)
	if err := renderPage(ctx, "Auth/Login", nil); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	expected := `{"component":"Auth/Login","url":"/login?next=%2Fdashboard","props":{"auth":{"user":null,"permissions":null}}}`
	if strings.TrimSpace(rec.Body.String()) != expected {
		t.Fatalf("unexpected page:\n%s", rec.Body.String())
	}
}

func TestRenderPageProjectsPermissions(t *testing.T) {
	user := &entity.User{ID: 2, Name: "Sam", Email: "sam@club.test", Role: entity.RoleStaff}
	ctx, rec := newJSONContext(http.MethodGet, "/dashboard", "", user)
	if err := renderPage(ctx, "Dashboard", map[string]any{"auth": "spoofed", "x": 1}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	props := decodeBody(t, rec)["props"].(map[string]any)
	auth := props["auth"].(map[string]any)
	permissions := auth["permissions"].(map[string]any)
	if permissions["isStaff"] != true || permissions["hasStaffAccess"] != true || permissions["hasAdminAccess"] != false || permissions["hasMemberAccess"] != true {
		t.Fatalf("unexpected permissions: %+v", permissions)
	}
	if auth["user"].(map[string]any)["role"] != "staff" || props["x"] != float64(1) {
		t.Fatalf("unexpected props: %+v", props)
	}
}

func TestLoginSetsSessionCookie(t *testing.T) {
	expires := time.Date(2025, 2, 9, 20, 0, 0, 0, time.UTC)
	auth := &fakeLoginService{
		loginFn: func(_ context.Context, req *types.LoginRequest, _ string) (*service.LoginResult, error) {
			if req.Email != "ana@club.test" {
				t.Fatalf("unexpected email %q", req.Email)
			}
			return &service.LoginResult{
				User:      &entity.User{ID: 5, Name: "Ana", Role: entity.RoleMember},
				Token:     "signed",
				ExpiresAt: expires,
			}, nil
		},
	}
	ctrl := NewAuthController(auth, SessionCookie{Name: "club_session", Secure: true})

	ctx, rec := newJSONContext(http.MethodPost, "/login", `{"email":"Ana@club.test","password":"secret"}`, nil)
	if err := ctrl.Login(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "club_session" || cookies[0].Value != "signed" || !cookies[0].HttpOnly || !cookies[0].Secure {
		t.Fatalf("unexpected cookies: %+v", cookies)
	}
	body := decodeBody(t, rec)
	if body["token"] != "signed" || body["expires_at"] != "2025-02-09T20:00:00Z" {
		t.Fatalf("unexpected body: %+v", body)
	}
	if body["permissions"].(map[string]any)["hasMemberAccess"] != true {
		t.Fatalf("unexpected permissions: %+v", body["permissions"])
	}
}

func TestLoginErrors(t *testing.T) {
	ctrl := NewAuthController(&fakeLoginService{
		loginFn: func(context.Context, *types.LoginRequest, string) (*service.LoginResult, error) {
			return nil, service.ErrInvalidCredentials
		},
	}, SessionCookie{Name: "club_session"})

	ctx, rec := newJSONContext(http.MethodPost, "/login", `{"email":"ana@club.test"}`, nil)
	if err := ctrl.Login(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	ctx, rec = newJSONContext(http.MethodPost, "/login", `{"email":"ana@club.test","password":"nope"}`, nil)
	if err := ctrl.Login(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestLoginPageRedirectsAuthenticatedUsers(t *testing.T) {
	ctrl := NewAuthController(&fakeLoginService{}, SessionCookie{Name: "club_session"})

	ctx, rec := newJSONContext(http.MethodGet, "/login", "", &entity.User{ID: 1, Role: entity.RoleMember})
	if err := ctrl.LoginPage(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.Code != http.StatusFound || rec.Header().Get(echo.HeaderLocation) != "/dashboard" {
		t.Fatalf("expected redirect to dashboard, got %d", rec.Code)
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	ctrl := NewAuthController(&fakeLoginService{}, SessionCookie{Name: "club_session"})

	ctx, rec := newJSONContext(http.MethodPost, "/logout", "", nil)
	if err := ctrl.Logout(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Value != "" || cookies[0].MaxAge >= 0 {
		t.Fatalf("expected expired cookie, got %+v", cookies)
	}
}

func TestNotificationIndexRendersPage(t *testing.T) {
	notifications := &fakeNotificationService{
		listFn: func(_ context.Context, userID uint64, limit int) (*service.NotificationList, error) {
			if userID != 5 || limit != 0 {
				t.Fatalf("unexpected args: %d %d", userID, limit)
			}
			return &service.NotificationList{
				Items:  []*entity.Notification{{ID: 1, UserID: 5, Type: "membership_expiry", Title: "Membership Expiring Soon"}},
				Unread: 1,
			}, nil
		},
	}

	ctx, rec := newJSONContext(http.MethodGet, "/notifications", "", &entity.User{ID: 5, Role: entity.RoleMember})
	if err := NewNotificationController(notifications).Index(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	body := decodeBody(t, rec)
	if body["component"] != "Notifications/Index" {
		t.Fatalf("unexpected component: %v", body["component"])
	}
	props := body["props"].(map[string]any)
	if props["unreadCount"] != float64(1) || len(props["notifications"].([]any)) != 1 {
		t.Fatalf("unexpected props: %+v", props)
	}
}

func TestNotificationMarkReadNotFound(t *testing.T) {
	notifications := &fakeNotificationService{
		markReadFn: func(context.Context, uint64, uint64) (*entity.Notification, error) {
			return nil, service.ErrNotificationNotFound
		},
	}

	ctx, rec := newJSONContext(http.MethodPost, "/notifications/9/read", "", &entity.User{ID: 5, Role: entity.RoleMember})
	ctx.SetParamNames("id")
	ctx.SetParamValues("9")
	if err := NewNotificationController(notifications).MarkRead(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestNotificationMarkAllRead(t *testing.T) {
	notifications := &fakeNotificationService{
		markAllReadFn: func(context.Context, uint64) (int64, error) { return 3, nil },
	}

	ctx, rec := newJSONContext(http.MethodPost, "/notifications/read-all", "", &entity.User{ID: 5, Role: entity.RoleMember})
	if err := NewNotificationController(notifications).MarkAllRead(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if decodeBody(t, rec)["updated"] != float64(3) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestNotificationIndexWithoutUserRedirects(t *testing.T) {
	ctx, rec := newJSONContext(http.MethodGet, "/notifications", "", nil)
	if err := NewNotificationController(&fakeNotificationService{}).Index(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
}

func TestDashboardShow(t *testing.T) {
	memberships := &fakeMembershipService{
		listOwnFn: func(context.Context, uint64) ([]*entity.MemberSubscription, error) {
			return []*entity.MemberSubscription{{ID: 1, Type: "monthly"}}, nil
		},
	}

	ctx, rec := newJSONContext(http.MethodGet, "/dashboard", "", &entity.User{ID: 5, Role: entity.RoleMember})
	if err := NewDashboardController(&fakeNotificationService{}, memberships).Show(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	props := decodeBody(t, rec)["props"].(map[string]any)
	if len(props["subscriptions"].([]any)) != 1 {
		t.Fatalf("unexpected props: %+v", props)
	}
}

func TestMembershipStore(t *testing.T) {
	memberships := &fakeMembershipService{
		recordFn: func(_ context.Context, actor entity.Actor, req *types.CreateSubscriptionRequest) (*entity.MemberSubscription, error) {
			if actor.UserID == nil || *actor.UserID != 2 {
				t.Fatalf("unexpected actor: %+v", actor)
			}
			if req.EndDate == "2025-01-01" {
				return nil, service.ErrInvalidDateRange
			}
			return &entity.MemberSubscription{ID: 31, Type: req.Type, PaymentStatus: entity.PaymentStatusPending}, nil
		},
	}
	ctrl := NewMembershipController(memberships)
	staff := &entity.User{ID: 2, Role: entity.RoleStaff}

	body := `{"user_id":7,"type":"Monthly","start_date":"2025-01-11","end_date":"2025-02-11","amount_cents":2500,"payment_method":"cash"}`
	ctx, rec := newJSONContext(http.MethodPost, "/staff/subscriptions", body, staff)
	if err := ctrl.Store(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.Code != http.StatusCreated || !strings.Contains(rec.Body.String(), `"type":"monthly"`) {
		t.Fatalf("unexpected response: %d %s", rec.Code, rec.Body.String())
	}

	body = strings.Replace(body, "2025-02-11", "2025-01-01", 1)
	ctx, rec = newJSONContext(http.MethodPost, "/staff/subscriptions", body, staff)
	if err := ctrl.Store(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestMembershipVerifyPaymentConflict(t *testing.T) {
	memberships := &fakeMembershipService{
		settlePaymentFn: func(context.Context, entity.Actor, *types.VerifyPaymentRequest) (*entity.MemberSubscription, error) {
			return nil, service.ErrPaymentAlreadySettled
		},
	}

	ctx, rec := newJSONContext(http.MethodPost, "/staff/subscriptions/31/verify-payment", `{"status":"verified"}`, &entity.User{ID: 2, Role: entity.RoleStaff})
	ctx.SetParamNames("id")
	ctx.SetParamValues("31")
	if err := NewMembershipController(memberships).VerifyPayment(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestBookingStoreConflict(t *testing.T) {
	bookings := &fakeBookingService{
		createFn: func(context.Context, entity.Actor, *types.CreateBookingRequest) (*entity.Booking, error) {
			return nil, service.ErrBookingConflict
		},
	}

	ctx, rec := newJSONContext(http.MethodPost, "/bookings", `{"court":1,"start_at":"2025-02-09T10:00:00Z","end_at":"2025-02-09T11:00:00Z"}`, &entity.User{ID: 5, Role: entity.RoleMember})
	if err := NewBookingController(bookings).Store(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestBookingCancel(t *testing.T) {
	bookings := &fakeBookingService{
		cancelFn: func(_ context.Context, _ entity.Actor, id uint64) (*entity.Booking, error) {
			if id != 42 {
				return nil, service.ErrBookingNotFound
			}
			return &entity.Booking{ID: 42, Status: entity.BookingStatusCancelled}, nil
		},
	}
	ctrl := NewBookingController(bookings)
	user := &entity.User{ID: 5, Role: entity.RoleMember}

	ctx, rec := newJSONContext(http.MethodPost, "/bookings/42/cancel", "", user)
	ctx.SetParamNames("id")
	ctx.SetParamValues("42")
	if err := ctrl.Cancel(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"status":"cancelled"`) {
		t.Fatalf("unexpected response: %d %s", rec.Code, rec.Body.String())
	}

	ctx, rec = newJSONContext(http.MethodPost, "/bookings/43/cancel", "", user)
	ctx.SetParamNames("id")
	ctx.SetParamValues("43")
	if err := ctrl.Cancel(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAdminUpdateSettingValidation(t *testing.T) {
	settings := &fakeSettingService{
		updateFn: func(context.Context, entity.Actor, *types.UpdateSettingRequest) (*entity.Setting, error) {
			return nil, service.ErrSettingValueNotNumeric
		},
	}
	ctrl := NewAdminController(fakeActivityReader{}, settings, &fakeExpiryJob{})

	ctx, rec := newJSONContext(http.MethodPut, "/admin/settings/court_hourly_rate_cents", `{"value":"cheap"}`, &entity.User{ID: 1, Role: entity.RoleAdmin})
	ctx.SetParamNames("key")
	ctx.SetParamValues("court_hourly_rate_cents")
	if err := ctrl.UpdateSetting(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestAdminPages(t *testing.T) {
	ctrl := NewAdminController(fakeActivityReader{}, &fakeSettingService{}, &fakeExpiryJob{})
	admin := &entity.User{ID: 1, Role: entity.RoleAdmin}

	ctx, rec := newJSONContext(http.MethodGet, "/admin/activity-logs", "", admin)
	if err := ctrl.ActivityLogs(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if decodeBody(t, rec)["component"] != "Admin/ActivityLogs" {
		t.Fatalf("unexpected page: %s", rec.Body.String())
	}

	ctx, rec = newJSONContext(http.MethodGet, "/admin/settings", "", admin)
	if err := ctrl.Settings(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"key":"court_hourly_rate_cents"`) {
		t.Fatalf("unexpected page: %s", rec.Body.String())
	}
}

func TestAdminRunMembershipExpiry(t *testing.T) {
	job := &fakeExpiryJob{result: &service.ExpiryRunResult{
		Sent:        2,
		WindowStart: time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC),
		WindowEnd:   time.Date(2025, 2, 12, 0, 0, 0, 0, time.UTC),
	}}
	ctrl := NewAdminController(fakeActivityReader{}, &fakeSettingService{}, job)

	ctx, rec := newJSONContext(http.MethodPost, "/admin/jobs/membership-expiry", "", &entity.User{ID: 1, Role: entity.RoleAdmin})
	if err := ctrl.RunMembershipExpiry(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	body := decodeBody(t, rec)
	if body["sent"] != float64(2) || body["window_start"] != "2025-02-10" || body["window_end"] != "2025-02-12" {
		t.Fatalf("unexpected body: %+v", body)
	}

	job.err = errors.New("db down")
	ctx, rec = newJSONContext(http.MethodPost, "/admin/jobs/membership-expiry", "", &entity.User{ID: 1, Role: entity.RoleAdmin})
	if err := ctrl.RunMembershipExpiry(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
