package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/yanuaran892/perpusmpn1sedati/internal/domain"
	"github.com/yanuaran892/perpusmpn1sedati/internal/pagination"
	"github.com/yanuaran892/perpusmpn1sedati/internal/service"
	"github.com/yanuaran892/perpusmpn1sedati/internal/session"
	customError "github.com/yanuaran892/perpusmpn1sedati/pkg/errors"
	"github.com/yanuaran892/perpusmpn1sedati/pkg/response"
)

// Query parameters with a fixed meaning. Every other parameter on a list
// request is a filter.
var reservedParams = map[string]bool{
	"page":      true,
	"page_size": true,
	"search":    true,
	"format":    true,
}

// listQuery reads search, paging and filters from the URL. Paging values
// that do not parse are left at zero for the service to normalize.
func listQuery(r *http.Request) pagination.Query {
	values := r.URL.Query()

	q := pagination.Query{
		Search:  values.Get("search"),
		Filters: make(map[string]string),
	}
	q.Page, _ = strconv.Atoi(values.Get("page"))
	q.PageSize, _ = strconv.Atoi(values.Get("page_size"))

	for key := range values {
		if reservedParams[key] {
			continue
		}
		q.Filters[key] = values.Get(key)
	}
	return q
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, customError.WrapValidation(fmt.Errorf("invalid %s %q", name, raw))
	}
	return id, nil
}

// bind decodes the JSON body into dst and validates it.
func bind(v *validator.Validate, r *http.Request, dst any) error {
	if err := decode(r, dst); err != nil {
		return err
	}
	return validate(v, dst)
}

func decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return customError.WrapValidation(fmt.Errorf("decoding request body: %w", err))
	}
	return nil
}

func validate(v *validator.Validate, dst any) error {
	if err := v.Struct(dst); err != nil {
		return customError.WrapValidation(err)
	}
	return nil
}

func studentNIS(r *http.Request) (string, error) {
	sess, ok := SessionFrom(r.Context())
	if !ok || sess.Role != session.RoleStudent {
		return "", customError.WrapUnauthorized("student session required")
	}
	return sess.Subject, nil
}

func adminActor(r *http.Request) (domain.Actor, error) {
	sess, ok := SessionFrom(r.Context())
	if !ok || !sess.IsAdmin() {
		return domain.Actor{}, customError.WrapUnauthorized("admin session required")
	}
	return service.Actor(sess), nil
}

func writePage[T any](w http.ResponseWriter, page *pagination.Page[T]) {
	response.Paged(w, page.Rows, page.Meta())
}
