package handlers

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	xhttp "github.com/LekaAli/fes/pkg/http"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func writeJSON(ctx *xhttp.RequestCtx, status int, v any) {
	b, _ := json.Marshal(v)
	ctx.Response.Header.Set("Content-Type", "application/json; charset=utf-8")
	ctx.Response.SetStatusCode(status)
	ctx.Response.SetBodyRaw(b)
}

func writeError(ctx *xhttp.RequestCtx, status int, msg string) {
	writeJSON(ctx, status, map[string]string{"error": msg})
}

// writeFieldErrors re-renders a form submission as a per-field error set.
func writeFieldErrors(ctx *xhttp.RequestCtx, errs map[string]string) {
	writeJSON(ctx, xhttp.StatusBadRequest, map[string]any{"errors": errs})
}

func redirect(ctx *xhttp.RequestCtx, location string) {
	ctx.Redirect(location, xhttp.StatusFound)
}

func query(ctx *xhttp.RequestCtx, key string) string {
	return string(ctx.QueryArgs().Peek(key))
}

func queryInt(ctx *xhttp.RequestCtx, key string) int {
	n, err := strconv.Atoi(query(ctx, key))
	if err != nil {
		return 0
	}
	return n
}

func queryInt64(ctx *xhttp.RequestCtx, key string) int64 {
	n, err := strconv.ParseInt(query(ctx, key), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func formValue(ctx *xhttp.RequestCtx, key string) string {
	return string(ctx.PostArgs().Peek(key))
}

func pathID(ctx *xhttp.RequestCtx) (int64, error) {
	raw, _ := ctx.UserValue("id").(string)
	return strconv.ParseInt(raw, 10, 64)
}

// validateForm runs the struct tags and flattens failures into a
// field -> message set for re-rendering.
func validateForm(form any) map[string]string {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	errs := make(map[string]string)
	var verrs validator.ValidationErrors
	if ok := toValidationErrors(err, &verrs); !ok {
		errs["form"] = err.Error()
		return errs
	}
	for _, fe := range verrs {
		errs[fe.Field()] = "failed on " + fe.Tag()
	}
	return errs
}

func toValidationErrors(err error, dst *validator.ValidationErrors) bool {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return false
	}
	*dst = verrs
	return true
}

func parseTime(s string) (time.Time, error) {
	// Accept RFC3339 or YYYY-MM-DD
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
