// internal/api/router.go
package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"matchpoint/internal/api/classification"
	"matchpoint/internal/api/club"
	"matchpoint/internal/api/competition"
	"matchpoint/internal/api/match"
	"matchpoint/internal/api/middleware"
	"matchpoint/internal/api/payments"
	"matchpoint/internal/api/users"
	"matchpoint/internal/common/logger"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Users          *users.Handler
	Classification *classification.Handler
	Club           *club.Handler
	Competition    *competition.Handler
	Payments       *payments.Handler
	Match          *match.Handler
}

// NewRouter builds the HTTP routing table. Trailing slashes are part of
// the public paths.
func NewRouter(h Handlers, authn *middleware.Authenticator, log logger.Logger) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.CORS)
	r.Use(middleware.Logging(log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.Metrics)

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	// identity
	r.HandleFunc("/auth/signup/", h.Users.Signup).Methods(http.MethodPost)
	r.HandleFunc("/auth/signup/check-phone/", h.Users.CheckPhone).Methods(http.MethodPost)
	r.HandleFunc("/auth/signin/", h.Users.Signin).Methods(http.MethodPost)
	r.HandleFunc("/auth/token/refresh/", h.Users.Refresh).Methods(http.MethodPost)
	r.HandleFunc("/auth/logout/", h.Users.Logout).Methods(http.MethodPost)

	r.Handle("/user/myprofile/", authn.Require(http.HandlerFunc(h.Users.MyProfile))).Methods(http.MethodGet)
	r.Handle("/user/myprofile/rankings/", authn.Require(http.HandlerFunc(h.Users.MyRankings))).Methods(http.MethodGet)
	r.Handle("/user/myprofile/mainranking/", authn.Require(http.HandlerFunc(h.Users.SetMainRanking))).Methods(http.MethodPatch)
	r.Handle("/user/{id}/", authn.Require(http.HandlerFunc(h.Users.Detail))).Methods(http.MethodGet)

	// classification catalogs
	r.HandleFunc("/matchtypes/", h.Classification.MatchTypes).Methods(http.MethodGet)
	r.HandleFunc("/tiers/", h.Classification.Tiers).Methods(http.MethodGet)

	// clubs
	r.Handle("/clubs/", authn.Require(http.HandlerFunc(h.Club.Create))).Methods(http.MethodPost)
	r.HandleFunc("/clubs/", h.Club.List).Methods(http.MethodGet)
	r.Handle("/clubs/applications/{id}/accept/", authn.Require(http.HandlerFunc(h.Club.Accept))).Methods(http.MethodPost)
	r.Handle("/clubs/applications/{id}/reject/", authn.Require(http.HandlerFunc(h.Club.Reject))).Methods(http.MethodPost)
	r.HandleFunc("/clubs/{id}/", h.Club.Detail).Methods(http.MethodGet)
	r.Handle("/clubs/{id}/teams/", authn.Require(http.HandlerFunc(h.Club.CreateTeam))).Methods(http.MethodPost)
	r.Handle("/clubs/{id}/apply/", authn.Require(http.HandlerFunc(h.Club.Apply))).Methods(http.MethodPost)
	r.Handle("/clubs/{id}/applicants/", authn.Require(http.HandlerFunc(h.Club.Admissions))).Methods(http.MethodGet)

	// competitions; listing and detail personalize when a token is present.
	// Apply uses optional auth so the code check can run before the auth
	// check.
	r.Handle("/competitions/", authn.Optional(http.HandlerFunc(h.Competition.List))).Methods(http.MethodGet)
	r.Handle("/competitions/{id}/details/", authn.Optional(http.HandlerFunc(h.Competition.Detail))).Methods(http.MethodGet)
	r.Handle("/competitions/{id}/apply/", authn.Optional(http.HandlerFunc(h.Competition.Apply))).Methods(http.MethodPost)
	r.Handle("/competitions/{id}/application/", authn.Require(http.HandlerFunc(h.Competition.Application))).Methods(http.MethodGet)
	r.Handle("/competitions/{id}/partnersearch/", authn.Require(http.HandlerFunc(h.Competition.PartnerSearch))).Methods(http.MethodGet)

	// bracket and scores
	r.HandleFunc("/competitions/{id}/matches/", h.Match.List).Methods(http.MethodGet)
	r.Handle("/competitions/{id}/matches/", authn.Require(http.HandlerFunc(h.Match.Create))).Methods(http.MethodPost)
	r.Handle("/matches/{id}/sets/", authn.Require(http.HandlerFunc(h.Match.RecordSet))).Methods(http.MethodPost)
	r.Handle("/matches/{id}/complete/", authn.Require(http.HandlerFunc(h.Match.Complete))).Methods(http.MethodPost)

	// payments
	r.Handle("/payments/", authn.Require(http.HandlerFunc(h.Payments.Create))).Methods(http.MethodPost)
	r.Handle("/payments/applications/{id}/confirm/", authn.Require(http.HandlerFunc(h.Payments.Confirm))).Methods(http.MethodPost)
	r.Handle("/payments/{id}/refund/", authn.Require(http.HandlerFunc(h.Payments.Refund))).Methods(http.MethodPost)

	return r
}
