// Package code defines the registered response code table. Every API and
// websocket response carries one of these codes; registration panics on
// duplicates so collisions surface at startup.
package code

import (
	"fmt"
	"net/http"
)

type Code struct {
	code   int
	status bool
	// Lang holds the per-language message text
	Lang lang
	// optional payload
	data     interface{}
	haveData bool
	// optional detail strings
	details     []string
	haveDetails bool
}

var errCodes = map[int]string{}
var sussCodes = map[int]string{}

// NewError registers an error code. Panics if the code is already taken.
func NewError(code int, l lang) *Code {
	if _, ok := errCodes[code]; ok {
		panic(fmt.Sprintf("error code %d already exists, pick another one", code))
	}
	errCodes[code] = l.GetMessage()
	return &Code{code: code, status: false, Lang: l}
}

// NewSuss registers a success code. Panics if the code is already taken.
func NewSuss(code int, l lang) *Code {
	if _, ok := sussCodes[code]; ok {
		panic(fmt.Sprintf("success code %d already exists, pick another one", code))
	}
	sussCodes[code] = l.GetMessage()
	return &Code{code: code, status: true, Lang: l}
}

// Reset clears the per-request payload so registered codes can be reused.
func (e *Code) Reset() *Code {
	e.data = nil
	e.haveData = false
	e.details = nil
	e.haveDetails = false
	return e
}

// Clone returns a copy without payload, for use on concurrent paths where
// WithData on the shared registered instance would race.
func (e *Code) Clone() *Code {
	return &Code{
		code:   e.code,
		status: e.status,
		Lang:   e.Lang,
	}
}

func (e *Code) Error() string {
	return e.Msg()
}

func (e *Code) Code() int {
	return e.code
}

func (e *Code) Status() bool {
	return e.status
}

func (e *Code) Msg() string {
	return e.Lang.GetMessage()
}

func (e *Code) Data() interface{} {
	return e.data
}

func (e *Code) Details() []string {
	return e.details
}

func (e *Code) HaveData() bool {
	return e.haveData
}

func (e *Code) HaveDetails() bool {
	return e.haveDetails
}

func (e *Code) WithData(data interface{}) *Code {
	e.haveData = true
	e.data = data
	return e
}

func (e *Code) WithDetails(details ...string) *Code {
	e.haveDetails = true
	e.details = append([]string{}, details...)
	return e
}

// StatusCode maps every response to HTTP 200; the body code carries the
// real outcome. Matches the behavior the web client expects.
func (e *Code) StatusCode() int {
	return http.StatusOK
}
