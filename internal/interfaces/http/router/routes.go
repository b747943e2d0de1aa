package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterV1Routes 注册 v1 版本路由，limit 只作用于触发生成的接口
func RegisterV1Routes(v1 *gin.RouterGroup, h *Handlers, limit gin.HandlerFunc) {
	v1.GET("/options", h.Options.GetOptions)

	scripts := v1.Group("/scripts")
	{
		scripts.POST("/generate", limit, h.Script.Generate)
		scripts.POST("/assemble", h.Script.Assemble)
	}

	sessions := v1.Group("/sessions")
	{
		sessions.POST("", h.Session.CreateSession)
		sessions.GET("/:sid", h.Session.GetSession)
		sessions.POST("/:sid/submit", limit, h.Session.Submit)
		sessions.GET("/:sid/render", h.Session.Render)
		sessions.GET("/:sid/copy", h.Session.Copy)
	}
}
