package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/ecomove/routeplanner/pkg/datastructure"
	"github.com/ecomove/routeplanner/pkg/server"
	"github.com/ecomove/routeplanner/pkg/server/rest/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

type RoutingService interface {
	FastestRoute(ctx context.Context, sourceID, destID int32) (service.Route, error)
	AlternativeRoute(ctx context.Context, sourceID, destID int32) (service.Route, *service.Route, error)
	RestrictedRoute(ctx context.Context, sourceID, destID, includeID int32,
		avoidNodeIDs []int32, avoidSegmentIDs [][2]int32) (service.Route, error)
	EcoRoute(ctx context.Context, sourceID, destID int32, maxWalkTime float64,
		avoidNodeIDs []int32, avoidSegmentIDs [][2]int32) (service.EcoRouteResult, error)
	TravelTime(ctx context.Context, locationIDs []int32, mode datastructure.TravelMode) (float64, error)
}

type RoutePlannerHandler struct {
	svc     RoutingService
	metrics *Metrics
}

func RoutePlannerRouter(r *chi.Mux, svc RoutingService, m *Metrics) {
	handler := &RoutePlannerHandler{svc, m}

	r.Group(func(r chi.Router) {
		r.Route("/api/routes", func(r chi.Router) {
			r.Post("/fastest", handler.FastestRoute)
			r.Post("/alternative", handler.AlternativeRoute)
			r.Post("/restricted", handler.RestrictedRoute)
			r.Post("/eco", handler.EcoRoute)
			r.Post("/travel-time", handler.TravelTime)
		})
	})
}

type RouteRequest struct {
	SourceID      int32 `json:"source_id" validate:"required,gt=0"`
	DestinationID int32 `json:"destination_id" validate:"required,gt=0"`
}

func (s *RouteRequest) Bind(r *http.Request) error {
	if s.SourceID == 0 || s.DestinationID == 0 {
		return errors.New("invalid request")
	}
	return nil
}

type SegmentPair struct {
	From int32 `json:"from" validate:"required,gt=0"`
	To   int32 `json:"to" validate:"required,gt=0"`
}

type RestrictedRouteRequest struct {
	SourceID      int32         `json:"source_id" validate:"required,gt=0"`
	DestinationID int32         `json:"destination_id" validate:"required,gt=0"`
	IncludeNodeID int32         `json:"include_node_id,omitempty" validate:"omitempty,gt=0"`
	AvoidNodeIDs  []int32       `json:"avoid_node_ids,omitempty" validate:"omitempty,dive,gt=0"`
	AvoidSegments []SegmentPair `json:"avoid_segments,omitempty" validate:"omitempty,dive"`
}

func (s *RestrictedRouteRequest) Bind(r *http.Request) error {
	if s.SourceID == 0 || s.DestinationID == 0 {
		return errors.New("invalid request")
	}
	return nil
}

type EcoRouteRequest struct {
	SourceID      int32         `json:"source_id" validate:"required,gt=0"`
	DestinationID int32         `json:"destination_id" validate:"required,gt=0"`
	MaxWalkTime   float64       `json:"max_walk_time" validate:"required,gt=0"`
	AvoidNodeIDs  []int32       `json:"avoid_node_ids,omitempty" validate:"omitempty,dive,gt=0"`
	AvoidSegments []SegmentPair `json:"avoid_segments,omitempty" validate:"omitempty,dive"`
}

func (s *EcoRouteRequest) Bind(r *http.Request) error {
	if s.SourceID == 0 || s.DestinationID == 0 || s.MaxWalkTime == 0 {
		return errors.New("invalid request")
	}
	return nil
}

type RouteResponse struct {
	LocationIDs []int32 `json:"location_ids"`
	TravelTime  float64 `json:"travel_time"`
}

func RenderRouteResponse(route service.Route) *RouteResponse {
	return &RouteResponse{
		LocationIDs: route.LocationIDs,
		TravelTime:  route.TravelTime,
	}
}

type AlternativeRouteResponse struct {
	BestRoute        RouteResponse  `json:"best_route"`
	AlternativeRoute *RouteResponse `json:"alternative_route,omitempty"`
}

func RenderAlternativeRouteResponse(main service.Route, alt *service.Route) *AlternativeRouteResponse {
	resp := &AlternativeRouteResponse{BestRoute: *RenderRouteResponse(main)}
	if alt != nil {
		resp.AlternativeRoute = RenderRouteResponse(*alt)
	}
	return resp
}

type EcoRouteResponse struct {
	DrivingRoute  RouteResponse `json:"driving_route"`
	ParkingNodeID int32         `json:"parking_node_id"`
	WalkingRoute  RouteResponse `json:"walking_route"`
	TotalTime     float64       `json:"total_time"`
}

func RenderEcoRouteResponse(eco service.EcoRouteResult) *EcoRouteResponse {
	return &EcoRouteResponse{
		DrivingRoute:  *RenderRouteResponse(eco.DrivingRoute),
		ParkingNodeID: eco.ParkingNodeID,
		WalkingRoute:  *RenderRouteResponse(eco.WalkingRoute),
		TotalTime:     eco.TotalTime,
	}
}

func (h *RoutePlannerHandler) FastestRoute(w http.ResponseWriter, r *http.Request) {
	data := &RouteRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	validate := validator.New()
	if err := validate.Struct(*data); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		render.Render(w, r, ErrValidation(err, vv))
		return
	}

	route, err := h.svc.FastestRoute(r.Context(), data.SourceID, data.DestinationID)
	if err != nil {
		h.metrics.RouteQueryFailed("fastest")
		render.Render(w, r, errRenderer(err))
		return
	}
	h.metrics.RouteQueryServed("fastest")

	render.Status(r, http.StatusOK)
	render.JSON(w, r, RenderRouteResponse(route))
}

func (h *RoutePlannerHandler) AlternativeRoute(w http.ResponseWriter, r *http.Request) {
	data := &RouteRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	validate := validator.New()
	if err := validate.Struct(*data); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		render.Render(w, r, ErrValidation(err, vv))
		return
	}

	main, alt, err := h.svc.AlternativeRoute(r.Context(), data.SourceID, data.DestinationID)
	if err != nil {
		h.metrics.RouteQueryFailed("alternative")
		render.Render(w, r, errRenderer(err))
		return
	}
	h.metrics.RouteQueryServed("alternative")

	render.Status(r, http.StatusOK)
	render.JSON(w, r, RenderAlternativeRouteResponse(main, alt))
}

func (h *RoutePlannerHandler) RestrictedRoute(w http.ResponseWriter, r *http.Request) {
	data := &RestrictedRouteRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	validate := validator.New()
	if err := validate.Struct(*data); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		render.Render(w, r, ErrValidation(err, vv))
		return
	}

	includeID := data.IncludeNodeID
	if includeID == 0 {
		includeID = -1
	}
	route, err := h.svc.RestrictedRoute(r.Context(), data.SourceID, data.DestinationID,
		includeID, data.AvoidNodeIDs, segmentPairs(data.AvoidSegments))
	if err != nil {
		h.metrics.RouteQueryFailed("restricted")
		render.Render(w, r, errRenderer(err))
		return
	}
	h.metrics.RouteQueryServed("restricted")

	render.Status(r, http.StatusOK)
	render.JSON(w, r, RenderRouteResponse(route))
}

func (h *RoutePlannerHandler) EcoRoute(w http.ResponseWriter, r *http.Request) {
	data := &EcoRouteRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	validate := validator.New()
	if err := validate.Struct(*data); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		render.Render(w, r, ErrValidation(err, vv))
		return
	}

	eco, err := h.svc.EcoRoute(r.Context(), data.SourceID, data.DestinationID,
		data.MaxWalkTime, data.AvoidNodeIDs, segmentPairs(data.AvoidSegments))
	if err != nil {
		h.metrics.RouteQueryFailed("eco")
		render.Render(w, r, errRenderer(err))
		return
	}
	h.metrics.RouteQueryServed("eco")

	render.Status(r, http.StatusOK)
	render.JSON(w, r, RenderEcoRouteResponse(eco))
}

type TravelTimeRequest struct {
	LocationIDs []int32 `json:"location_ids" validate:"required,dive,gt=0"`
	Mode        string  `json:"mode" validate:"required,oneof=driving walking"`
}

func (s *TravelTimeRequest) Bind(r *http.Request) error {
	if len(s.LocationIDs) == 0 || s.Mode == "" {
		return errors.New("invalid request")
	}
	return nil
}

type TravelTimeResponse struct {
	TravelTime float64 `json:"travel_time"`
}

func (h *RoutePlannerHandler) TravelTime(w http.ResponseWriter, r *http.Request) {
	data := &TravelTimeRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	validate := validator.New()
	if err := validate.Struct(*data); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		render.Render(w, r, ErrValidation(err, vv))
		return
	}

	mode := datastructure.ModeDriving
	if data.Mode == "walking" {
		mode = datastructure.ModeWalking
	}
	t, err := h.svc.TravelTime(r.Context(), data.LocationIDs, mode)
	if err != nil {
		h.metrics.RouteQueryFailed("travel_time")
		render.Render(w, r, errRenderer(err))
		return
	}
	h.metrics.RouteQueryServed("travel_time")

	render.Status(r, http.StatusOK)
	render.JSON(w, r, &TravelTimeResponse{TravelTime: t})
}

func segmentPairs(segments []SegmentPair) [][2]int32 {
	pairs := make([][2]int32, 0, len(segments))
	for _, seg := range segments {
		pairs = append(pairs, [2]int32{seg.From, seg.To})
	}
	return pairs
}

// errRenderer maps service error codes to http responses.
func errRenderer(err error) render.Renderer {
	var svcErr *server.Error
	if errors.As(err, &svcErr) {
		switch svcErr.Code() {
		case server.ErrNotFound:
			return ErrNotFoundRend(err)
		case server.ErrBadParamInput:
			return ErrInvalidRequest(err)
		}
	}
	return ErrInternalServerErrorRend(errors.New("internal server error"))
}

func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 400,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
	}
}

type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	StatusText    string   `json:"status"`          // user-level status message
	AppCode       int64    `json:"code,omitempty"`  // application-specific error code
	ErrorText     string   `json:"error,omitempty"` // application-level error message, for debugging
	ErrValidation []string `json:"validation,omitempty"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func translateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	validatorErrs := err.(validator.ValidationErrors)
	for _, e := range validatorErrs {
		translatedErr := fmt.Errorf(e.Translate(trans))
		errs = append(errs, translatedErr)
	}
	return errs
}

func ErrValidation(err error, errV []error) render.Renderer {
	vv := []string{}
	for _, v := range errV {
		vv = append(vv, v.Error())
	}
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 400,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
		ErrValidation:  vv,
	}
}

func ErrNotFoundRend(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 404,
		StatusText:     "Resource not found.",
		ErrorText:      err.Error(),
	}
}

func ErrInternalServerErrorRend(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 500,
		StatusText:     "Internal server error.",
		ErrorText:      err.Error(),
	}
}
