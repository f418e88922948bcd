package response

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator"
)

const (
	StatusOK    = "OK"
	StatusError = "Error"
)

type Response struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data,omitempty"`
	Error  string      `json:"error,omitempty"`
}

func Error(msg string) Response {
	return Response{
		Status: StatusError,
		Error:  msg,
	}
}

func ValidationError(errs validator.ValidationErrors) Response {
	var errMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errMsgs = append(errMsgs, fmt.Sprintf("Field %s is a required field", err.Field()))
		default:
			errMsgs = append(errMsgs, fmt.Sprintf("Field %s is not valid", err.Field()))
		}
	}

	return Response{
		Status: StatusError,
		Error:  strings.Join(errMsgs, ", "),
	}
}

// WriteError renders an error envelope with the given HTTP status.
func WriteError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, Error(msg))
}

// Validate checks req against its validate tags and writes a 400 on failure.
func Validate(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	err := validator.New().Struct(req)
	if err == nil {
		return true
	}

	validateErr, ok := err.(validator.ValidationErrors)
	if !ok {
		WriteError(w, r, http.StatusBadRequest, "Invalid request")
		return false
	}

	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, ValidationError(validateErr))

	return false
}
