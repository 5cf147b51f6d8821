package app

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/aigility/cloud-vault-service/pkg/code"
)

type Response struct {
	Ctx *gin.Context
}

type Pager struct {
	Page      int `json:"page"`
	PageSize  int `json:"pageSize"`
	TotalRows int `json:"totalRows"`
}

type ListRes struct {
	List  any   `json:"list"`
	Pager Pager `json:"pager"`
}

// Res is the unified response body: Code/Status/Message/Data, with
// optional Details. Fields with omitempty vanish when unset.
type Res struct {
	Code    int    `json:"code"`
	Status  bool   `json:"status"`
	Message any    `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Details string `json:"details,omitempty"`
}

func NewResponse(ctx *gin.Context) *Response {
	return &Response{
		Ctx: ctx,
	}
}

// GetRequestIP returns the client IP, normalizing the IPv6 loopback.
func GetRequestIP(c *gin.Context) string {
	reqIP := c.ClientIP()
	if reqIP == "::1" {
		reqIP = "127.0.0.1"
	}
	return reqIP
}

// GetAccessHost reconstructs the externally visible scheme://host pair,
// honoring X-Forwarded-Proto behind a reverse proxy.
func GetAccessHost(c *gin.Context) string {
	accessProto := ""
	if proto := c.Request.Header.Get("X-Forwarded-Proto"); proto == "" {
		accessProto = "http://"
	} else {
		accessProto = proto + "://"
	}
	return accessProto + c.Request.Host
}

func (r *Response) ToResponse(codeObj *code.Code) {
	r.Ctx.Set("status_code", codeObj.StatusCode())

	content := Res{
		Code:    codeObj.Code(),
		Status:  codeObj.Status(),
		Message: codeObj.Lang.GetMessage(),
		Data:    codeObj.Data(),
	}

	if codeObj.HaveDetails() {
		content.Details = strings.Join(codeObj.Details(), ",")
	}

	r.send(codeObj.StatusCode(), content)
	codeObj.Reset()
}

// ToResponseList wraps list plus pager into the Data field.
func (r *Response) ToResponseList(codeObj *code.Code, list any, totalRows int) {
	r.Ctx.Set("status_code", codeObj.StatusCode())

	content := Res{
		Code:    codeObj.Code(),
		Status:  codeObj.Status(),
		Message: codeObj.Lang.GetMessage(),
		Data: ListRes{
			List:  list,
			Pager: *NewPager(r.Ctx, totalRows),
		},
	}

	r.send(codeObj.StatusCode(), content)
	codeObj.Reset()
}

func (r *Response) send(statusCode int, content any) {
	r.Ctx.JSON(statusCode, content)
}
