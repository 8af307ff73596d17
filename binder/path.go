package binder

import (
	"fmt"
	"net/http"
)

// Path binds `path` tagged fields using a router's parameter lookup,
// typically chi.URLParam.
//
//	r.Get("/w/{workspace}/export/{kind}", handler.Wrap(h,
//		handler.WithBinders[handler.Context, exportRequest](binder.Path(chi.URLParam)),
//	))
func Path(param func(r *http.Request, name string) string) Func {
	return func(r *http.Request, v any) error {
		if param == nil {
			return fmt.Errorf("%w: nil parameter lookup", ErrInvalidPath)
		}
		rv, err := target(v, ErrInvalidPath)
		if err != nil {
			return err
		}
		values := make(map[string][]string)
		rt := rv.Type()
		for i := range rt.NumField() {
			if name, ok := fieldName(rt.Field(i), "path"); ok {
				if val := param(r, name); val != "" {
					values[name] = []string{val}
				}
			}
		}
		return bindValues(v, "path", values, ErrInvalidPath)
	}
}
