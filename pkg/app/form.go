package app

import (
	"strings"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	val "github.com/go-playground/validator/v10"
)

type ValidError struct {
	Key     string
	Message string
}

type ValidErrors []*ValidError

func (v *ValidError) Error() string {
	return v.Message
}

func (v ValidErrors) Error() string {
	return strings.Join(v.Errors(), ",")
}

func (v ValidErrors) Errors() []string {
	var errs []string
	for _, err := range v {
		errs = append(errs, err.Error())
	}
	return errs
}

// BindAndValid binds the request into v and translates validation
// failures using the translator placed in the context by the
// translations middleware.
func BindAndValid(c *gin.Context, v any) (bool, ValidErrors) {
	var errs ValidErrors

	err := c.ShouldBind(v)
	if err == nil {
		return true, nil
	}

	verrs, ok := err.(val.ValidationErrors)
	if !ok {
		errs = append(errs, &ValidError{
			Key:     "body",
			Message: err.Error(),
		})
		return false, errs
	}

	trans, _ := c.Value("trans").(ut.Translator)
	for _, verr := range verrs {
		message := verr.Error()
		if trans != nil {
			message = verr.Translate(trans)
		}
		errs = append(errs, &ValidError{
			Key:     verr.Field(),
			Message: message,
		})
	}
	return false, errs
}
