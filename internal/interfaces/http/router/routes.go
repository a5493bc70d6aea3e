// Package router 提供 HTTP 路由配置
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterCRUDRoutes 注册读写类路由
func RegisterCRUDRoutes(g *gin.RouterGroup, h *RouterHandlers) {
	// 项目管理
	projects := g.Group("/projects")
	{
		projects.GET("", h.Project.ListProjects)
		projects.POST("", h.Project.CreateProject)
		projects.GET("/:pid", h.Project.GetProject)
		projects.PUT("/:pid/folders/:folder", h.Project.UpdateFolder)

		// 项目下的历史报告
		projects.GET("/:pid/audits", h.Report.ListAudits)
		projects.GET("/:pid/briefs", h.Report.ListBriefs)
		projects.GET("/:pid/simulations", h.Report.ListSimulations)

		// 项目下的外链联系对象
		projects.GET("/:pid/prospects", h.Prospect.ListProspects)
		projects.POST("/:pid/prospects", h.Prospect.CreateProspect)
	}

	prospects := g.Group("/prospects")
	{
		prospects.PATCH("/:id/status", h.Prospect.UpdateStatus)
	}
}

// RegisterGenerationRoutes 注册报告生成路由
func RegisterGenerationRoutes(g *gin.RouterGroup, h *RouterHandlers) {
	projects := g.Group("/projects")
	{
		projects.POST("/:pid/audits", h.Report.RunTechnicalAudit)
		projects.POST("/:pid/site-audits", h.Report.RunSiteAudit)
		projects.POST("/:pid/briefs", h.Report.GenerateBrief)
		projects.POST("/:pid/simulations", h.Report.RunSimulation)
	}

	prospects := g.Group("/prospects")
	{
		prospects.POST("/:id/email", h.Prospect.DraftEmail)
	}
}
