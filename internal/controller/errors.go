package controller

import (
	"errors"
	"net/http"

	"skypath_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// errorStatus 业务错误对应的 HTTP 状态码
var errorStatus = []struct {
	err  error
	code int
}{
	{util.ErrEmailRegistered, http.StatusBadRequest},
	{util.ErrInvalidCredentials, http.StatusUnauthorized},
	{util.ErrWrongPassword, http.StatusUnauthorized},
	{util.ErrPasswordTooLong, http.StatusBadRequest},
	{util.ErrUserNotFound, http.StatusNotFound},
	{util.ErrVideoNotFound, http.StatusNotFound},
	{util.ErrScoreHistoryNotFound, http.StatusNotFound},
	{util.ErrVideoFileRequired, http.StatusBadRequest},
	{util.ErrVideoTooLarge, http.StatusBadRequest},
	{util.ErrInvalidVideoContent, http.StatusBadRequest},
	{util.ErrSearchQueryRequired, http.StatusBadRequest},
	{util.ErrScoreFieldsRequired, http.StatusBadRequest},
	{util.ErrInvalidPeriod, http.StatusBadRequest},
	{util.ErrScoreOutOfRange, http.StatusBadRequest},
	{util.ErrScoreDateExists, http.StatusBadRequest},
	{util.ErrInvalidProgress, http.StatusBadRequest},
}

// respondError 已知业务错误按映射返回，其余记录日志并返回 500
func respondError(ctx *gin.Context, err error, fallback string) {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			util.Error(ctx, e.code, e.err.Error())
			return
		}
	}
	util.LogInternalError(ctx, fallback, err)
}

// currentUserID 由 AuthMiddleware 写入的用户 ID
func currentUserID(ctx *gin.Context) string {
	if claims := util.GetUserFromContext(ctx); claims != nil {
		return claims.UserID
	}
	return ""
}
