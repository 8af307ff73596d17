package studio

import (
	"errors"
	"fmt"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/sigkit/binder"
	"github.com/dmitrymomot/sigkit/handler"
	"github.com/dmitrymomot/sigkit/pkg/emailhtml"
	"github.com/dmitrymomot/sigkit/pkg/signature"
)

func (s *Service) apiRoutes(r chi.Router) {
	r.Get("/templates", handler.Wrap(s.templates,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))
	r.Post("/signatures", handler.Wrap(s.saveSignature,
		handler.WithBinders[handler.Context, signatureRequest](binder.JSON()),
		handler.WithErrorHandler[handler.Context, signatureRequest](s.errorHandler),
	))
	r.Get("/signatures/{id}", handler.Wrap(s.getSignature,
		handler.WithBinders[handler.Context, savedRequest](binder.Path(chi.URLParam)),
		handler.WithErrorHandler[handler.Context, savedRequest](s.errorHandler),
	))
	r.With(s.throttle).Post("/signature-to-html", handler.Wrap(s.signatureToHTML,
		handler.WithBinders[handler.Context, signatureRequest](binder.JSON()),
		handler.WithErrorHandler[handler.Context, signatureRequest](s.errorHandler),
	))
}

// signatureRequest is the body shared by the save and email endpoints.
type signatureRequest struct {
	Data   *signature.Data  `json:"data"`
	Config *signature.Style `json:"config"`
}

func (r signatureRequest) payload() (signature.Data, signature.Style, error) {
	if r.Data == nil || r.Config == nil {
		return signature.Data{}, signature.Style{}, fmt.Errorf("%w: %v", handler.ErrBadRequest, signature.ErrMissingPayload)
	}
	return *r.Data, *r.Config, nil
}

type savedRequest struct {
	ID string `path:"id"`
}

func (s *Service) templates(_ handler.Context, _ struct{}) handler.Response {
	return handler.JSON(signature.Catalog())
}

// saveSignature answers with the stored record itself, not an envelope.
func (s *Service) saveSignature(ctx handler.Context, req signatureRequest) handler.Response {
	d, st, err := req.payload()
	if err != nil {
		return handler.Error(err)
	}
	saved, err := s.store.Save(ctx, d, st)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSONRaw(saved)
}

func (s *Service) getSignature(ctx handler.Context, req savedRequest) handler.Response {
	saved, err := s.store.Get(ctx, req.ID)
	if errors.Is(err, signature.ErrNotFound) {
		return handler.Error(fmt.Errorf("%w: %v", handler.ErrNotFound, err))
	}
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSONRaw(saved)
}

func (s *Service) signatureToHTML(_ handler.Context, req signatureRequest) handler.Response {
	d, st, err := req.payload()
	if err != nil {
		return handler.Error(err)
	}
	out, err := emailhtml.Generate(d, st)
	if errors.Is(err, emailhtml.ErrEmpty) {
		return handler.Error(fmt.Errorf("%w: %v", handler.ErrBadRequest, err))
	}
	if err != nil {
		return handler.Error(err)
	}
	return handler.Blob("text/html; charset=utf-8", []byte(out))
}
