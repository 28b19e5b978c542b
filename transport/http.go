package transport

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"

	"github.com/go-chi/cors"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/softglass/calculator-backend/application/auth"
	consultationapp "github.com/softglass/calculator-backend/application/consultation"
	orderapp "github.com/softglass/calculator-backend/application/order"
	submissionapp "github.com/softglass/calculator-backend/application/submission"
	userapp "github.com/softglass/calculator-backend/application/user"
	"github.com/softglass/calculator-backend/cmd/config"
	"github.com/softglass/calculator-backend/constant"
	"github.com/softglass/calculator-backend/model"
	utilsContext "github.com/softglass/calculator-backend/utils/context"
	"github.com/softglass/calculator-backend/utils/errors"
	httpSwagger "github.com/swaggo/http-swagger"
)

const (
	actionRegister = "register"
	actionLogin    = "login"
)

type RestHandler struct {
	UserApp         userapp.UserApp
	OrderApp        orderapp.OrderApp
	ConsultationApp consultationapp.ConsultationApp
	SubmissionApp   submissionapp.SubmissionApp
	Gateway         auth.Gateway
}

func NewTransport(cfg *config.Config, rh *RestHandler) http.Handler {
	mux := mux.NewRouter()
	mux.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)
	mux.NotFoundHandler = http.HandlerFunc(notFound)

	// Swagger UI
	mux.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)
	mux.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	mux.HandleFunc("/healthz", healthz).Methods(http.MethodGet)

	requireAuth := AuthMiddleware(rh.Gateway, constant.ErrMissingToken)
	requireProfileToken := AuthMiddleware(rh.Gateway, constant.ErrTokenNotProvided)

	// Auth
	mux.HandleFunc("/auth", rh.Auth).Methods(http.MethodPost)
	mux.Handle("/auth", requireProfileToken(http.HandlerFunc(rh.Profile))).Methods(http.MethodGet)
	mux.HandleFunc("/auth", preflight(cfg.CORS, "GET, POST, OPTIONS")).Methods(http.MethodOptions)

	// Orders, every verb requires a token
	mux.Handle("/orders", requireAuth(http.HandlerFunc(rh.CreateOrder))).Methods(http.MethodPost)
	mux.Handle("/orders", requireAuth(http.HandlerFunc(rh.ListOrders))).Methods(http.MethodGet)
	mux.HandleFunc("/orders", preflight(cfg.CORS, "GET, POST, OPTIONS")).Methods(http.MethodOptions)

	// Notifiers
	mux.HandleFunc("/consultation", rh.Consultation).Methods(http.MethodPost)
	mux.HandleFunc("/consultation", preflight(cfg.CORS, "POST, OPTIONS")).Methods(http.MethodOptions)
	mux.HandleFunc("/send-order", rh.SendOrder).Methods(http.MethodPost)
	mux.HandleFunc("/send-order", preflight(cfg.CORS, "POST, OPTIONS")).Methods(http.MethodOptions)

	// middleware
	mux.Use(LoggingMiddleware())
	mux.Use(MetricsMiddleware())
	mux.Use(TimeoutMiddleware(cfg.Server.RequestTimeout))
	mux.Use(BodyLimitMiddleware(cfg.Server.MaxBodyBytes))

	return cors.Handler(cors.Options{
		AllowedOrigins:     cfg.CORS.AllowedOrigins,
		AllowedMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:     []string{"Content-Type", constant.AuthTokenHeader},
		ExposedHeaders:     []string{requestIDHeader},
		MaxAge:             cfg.CORS.MaxAge,
		OptionsPassthrough: true,
	})(mux)
}

// Auth handler
// @Summary Register or log in
// @Description Dispatches on action: "register" creates an account, "login" checks credentials. Both return a token valid for 30 days.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.AuthRequest true "Auth Request"
// @Success 200 {object} model.AuthResponse
// @Failure 400 {object} transport.ErrorResponse
// @Failure 401 {object} transport.ErrorResponse
// @Router /auth [post]
func (s *RestHandler) Auth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.AuthRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if s.UserApp == nil {
		writeError(w, errors.SetCustomError(constant.ErrInternal))
		return
	}

	var (
		res *model.AuthResponse
		err error
	)
	switch req.Action {
	case actionRegister:
		res, err = s.UserApp.Register(ctx, &model.RegisterRequest{
			Email:    req.Email,
			Password: req.Password,
			FullName: req.FullName,
			Phone:    req.Phone,
		})
	case actionLogin:
		res, err = s.UserApp.Login(ctx, &model.LoginRequest{
			Email:    req.Email,
			Password: req.Password,
		})
	default:
		err = errors.SetCustomError(constant.ErrUnknownAction)
	}
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// Profile handler
// @Summary Current user
// @Description Returns the profile of the token holder
// @Tags Auth
// @Produce json
// @Security AuthToken
// @Success 200 {object} model.ProfileResponse
// @Failure 401 {object} transport.ErrorResponse
// @Failure 404 {object} transport.ErrorResponse
// @Router /auth [get]
func (s *RestHandler) Profile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrTokenNotProvided))
		return
	}

	res, err := s.UserApp.Profile(ctx, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// CreateOrder handler
// @Summary Create order
// @Description Stores an order owned by the token holder with status "new"
// @Tags Orders
// @Accept json
// @Produce json
// @Security AuthToken
// @Param request body model.OrderRequest true "Order Request"
// @Success 200 {object} model.OrderResponse
// @Failure 400 {object} transport.ErrorResponse
// @Failure 401 {object} transport.ErrorResponse
// @Router /orders [post]
func (s *RestHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.OrderRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	userID, _ := utilsContext.GetUserID(ctx)
	res, err := s.OrderApp.CreateOrder(ctx, userID, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ListOrders handler
// @Summary List orders
// @Description Orders of the token holder, newest first
// @Tags Orders
// @Produce json
// @Security AuthToken
// @Success 200 {object} model.OrderListResponse
// @Failure 401 {object} transport.ErrorResponse
// @Router /orders [get]
func (s *RestHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, _ := utilsContext.GetUserID(ctx)
	res, err := s.OrderApp.ListOrders(ctx, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// Consultation handler
// @Summary Request a consultation
// @Description Forwards the customer's name and phone to the staff Telegram chat
// @Tags Notifications
// @Accept json
// @Produce json
// @Param request body model.ConsultationRequest true "Consultation Request"
// @Success 200 {object} model.NotificationResponse
// @Failure 400 {object} transport.NotificationErrorResponse
// @Failure 500 {object} transport.NotificationErrorResponse
// @Router /consultation [post]
func (s *RestHandler) Consultation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.ConsultationRequest
	if err := decodeBody(r, &req); err != nil {
		writeNotificationError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.ConsultationApp.Submit(ctx, &req); err != nil {
		writeNotificationError(w, err)
		return
	}

	writeSuccess(w, model.NotificationResponse{Success: true, Message: "Заявка успешно отправлена"})
}

// SendOrder handler
// @Summary Submit a calculated order
// @Description Persists the calculator cart and emails it with photos and documents attached
// @Tags Notifications
// @Accept json
// @Produce json
// @Param request body model.SubmissionRequest true "Submission Request"
// @Success 200 {object} model.NotificationResponse
// @Failure 500 {object} transport.ErrorResponse
// @Router /send-order [post]
func (s *RestHandler) SendOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.SubmissionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.SubmissionApp.Submit(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

func healthz(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, map[string]string{"status": "ok"})
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, errors.SetCustomError(constant.ErrMethodNotAllowed))
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, errors.SetCustomError(constant.ErrRouteNotFound))
}

// decodeBody treats an empty body as an empty object.
func decodeBody(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(dst)
	if stderrors.Is(err, io.EOF) {
		return nil
	}
	return err
}
