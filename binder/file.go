package binder

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"reflect"
	"strings"
)

// DefaultMaxMemory is the part of a multipart body kept in memory.
const DefaultMaxMemory = 10 << 20

var (
	fileHeaderType  = reflect.TypeFor[*multipart.FileHeader]()
	fileHeadersType = reflect.TypeFor[[]*multipart.FileHeader]()
)

// File binds `file` tagged fields of type *multipart.FileHeader or
// []*multipart.FileHeader. A `,required` option turns a missing part
// into ErrMissingFile. Non-multipart requests are not applicable.
//
//	type logoRequest struct {
//		Logo *multipart.FileHeader `file:"logo,required"`
//	}
func File() Func {
	return func(r *http.Request, v any) error {
		if mediaType(r) != "multipart/form-data" {
			return ErrNotApplicable
		}
		if err := parseMultipart(r); err != nil {
			return err
		}
		rv, err := target(v, ErrInvalidForm)
		if err != nil {
			return err
		}
		rt := rv.Type()
		for i := range rt.NumField() {
			sf, field := rt.Field(i), rv.Field(i)
			tag, ok := sf.Tag.Lookup("file")
			if !ok || tag == "-" || !field.CanSet() {
				continue
			}
			name, opts, _ := strings.Cut(tag, ",")
			headers := r.MultipartForm.File[name]
			if len(headers) == 0 {
				if opts == "required" {
					return fmt.Errorf("%w: %s", ErrMissingFile, name)
				}
				continue
			}
			switch sf.Type {
			case fileHeaderType:
				field.Set(reflect.ValueOf(headers[0]))
			case fileHeadersType:
				field.Set(reflect.ValueOf(headers))
			default:
				return fmt.Errorf("%w: field %s: unsupported type %s", ErrInvalidForm, sf.Name, sf.Type)
			}
		}
		return nil
	}
}

func parseMultipart(r *http.Request) error {
	if r.MultipartForm != nil {
		return nil
	}
	if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, tooLarge.Limit)
		}
		return fmt.Errorf("%w: %v", ErrInvalidForm, err)
	}
	return nil
}
