package web

import (
	"net/http"
	"net/url"

	httphandler "github.com/ericfisherdev/wizeportal/internal/adapter/driving/http"
	vm "github.com/ericfisherdev/wizeportal/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/wizeportal/internal/domain/model"
)

const (
	flashSuccessParam = "success"
	flashErrorParam   = "error"
)

// redirectSuccess redirects to path with a success banner.
func redirectSuccess(w http.ResponseWriter, r *http.Request, path, msg string) {
	httphandler.Redirect(w, r, withParam(path, flashSuccessParam, msg))
}

// redirectWithError redirects to path with an error banner.
func redirectWithError(w http.ResponseWriter, r *http.Request, path, msg string) {
	httphandler.Redirect(w, r, withParam(path, flashErrorParam, msg))
}

// redirectResult picks the banner from res. fallback is shown on success when
// the backend sent no message.
func redirectResult[T any](w http.ResponseWriter, r *http.Request, path string, res model.Result[T], fallback string) {
	if !res.OK() {
		redirectWithError(w, r, path, res.Message())
		return
	}
	redirectSuccess(w, r, path, messageOr(res, fallback))
}

// withParam sets key=value in path's query. An empty value leaves path as is.
func withParam(path, key, value string) string {
	if value == "" {
		return path
	}
	u, err := url.Parse(path)
	if err != nil {
		return path
	}
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()
	return u.String()
}

// flashFrom reads the banner parameters of the current request.
func flashFrom(r *http.Request) vm.Flash {
	q := r.URL.Query()
	return vm.Flash{
		Success: q.Get(flashSuccessParam),
		Error:   q.Get(flashErrorParam),
	}
}

func messageOr[T any](res model.Result[T], fallback string) string {
	if msg := res.Message(); msg != "" {
		return msg
	}
	return fallback
}
