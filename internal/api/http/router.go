package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Auth         *AuthHandler
	Registration *RegistrationHandler
	Member       *MemberHandler
	Payment      *PaymentHandler
	Leaving      *LeavingHandler
	Expense      *ExpenseHandler
	Dashboard    *DashboardHandler
	Report       *ReportHandler
	Room         *RoomHandler
	File         *FileHandler
}

// NewRouter assembles the /api/v1 route tree with per-group auth
// middleware: public (login, registration), admin-token, member-token,
// and any-token (file downloads).
func NewRouter(h Handlers, auth *AuthMiddleware) *mux.Router {
	root := mux.NewRouter()
	root.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := root.PathPrefix("/api/v1").Subrouter()

	// Public routes.
	api.HandleFunc("/auth/admin/login", h.Auth.AdminLogin).Methods(http.MethodPost)
	api.HandleFunc("/auth/member/login", h.Auth.MemberLogin).Methods(http.MethodPost)
	api.HandleFunc("/registrations", h.Registration.Register).Methods(http.MethodPost)

	// Admin routes.
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(auth.RequireAdmin)

	admin.HandleFunc("/dashboard", h.Dashboard.Get).Methods(http.MethodGet)

	admin.HandleFunc("/members", h.Member.List).Methods(http.MethodGet)
	admin.HandleFunc("/members/rent-type/{type}", h.Member.ListByRentType).Methods(http.MethodGet)
	admin.HandleFunc("/members/{id:[0-9]+}", h.Member.Get).Methods(http.MethodGet)
	admin.HandleFunc("/members/{id:[0-9]+}", h.Member.Update).Methods(http.MethodPut)
	admin.HandleFunc("/members/{id:[0-9]+}", h.Member.Deactivate).Methods(http.MethodDelete)

	admin.HandleFunc("/registrations", h.Registration.ListPending).Methods(http.MethodGet)
	admin.HandleFunc("/registrations/{id:[0-9]+}/approve", h.Registration.Approve).Methods(http.MethodPost)
	admin.HandleFunc("/registrations/{id:[0-9]+}/reject", h.Registration.Reject).Methods(http.MethodPost)

	admin.HandleFunc("/payments", h.Payment.List).Methods(http.MethodGet)
	admin.HandleFunc("/payments/{id:[0-9]+}/approve", h.Payment.Approve).Methods(http.MethodPost)
	admin.HandleFunc("/payments/{id:[0-9]+}/reject", h.Payment.Reject).Methods(http.MethodPost)

	admin.HandleFunc("/leaving-requests", h.Leaving.List).Methods(http.MethodGet)
	admin.HandleFunc("/leaving-requests/{id:[0-9]+}/approve", h.Leaving.Approve).Methods(http.MethodPost)
	admin.HandleFunc("/leaving-requests/{id:[0-9]+}/reject", h.Leaving.Reject).Methods(http.MethodPost)

	admin.HandleFunc("/expenses", h.Expense.List).Methods(http.MethodGet)
	admin.HandleFunc("/expenses", h.Expense.Add).Methods(http.MethodPost)
	admin.HandleFunc("/expenses/{id:[0-9]+}", h.Expense.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/stats/expenses", h.Expense.Stats).Methods(http.MethodGet)

	admin.HandleFunc("/reports/members", h.Report.Download).Methods(http.MethodGet)

	admin.HandleFunc("/rooms", h.Room.List).Methods(http.MethodGet)
	admin.HandleFunc("/rooms", h.Room.Add).Methods(http.MethodPost)

	// Member routes.
	member := api.PathPrefix("/member").Subrouter()
	member.Use(auth.RequireMember)

	member.HandleFunc("/profile", h.Member.Profile).Methods(http.MethodGet)
	member.HandleFunc("/payments", h.Payment.ListMine).Methods(http.MethodGet)
	member.HandleFunc("/payments", h.Payment.Upload).Methods(http.MethodPost)
	member.HandleFunc("/leaving-requests", h.Leaving.ListMine).Methods(http.MethodGet)
	member.HandleFunc("/leaving-requests", h.Leaving.Create).Methods(http.MethodPost)

	// Stored uploads, readable by both token types.
	api.Handle("/uploads/{category}/{file}", auth.RequireAny(http.HandlerFunc(h.File.Serve))).Methods(http.MethodGet)

	return root
}
