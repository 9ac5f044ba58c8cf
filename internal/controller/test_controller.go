package controller

import (
	"edu_testing_backend/internal/service"
	"edu_testing_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TestController struct {
	TestService   *service.TestService
	StatsService  *service.StatisticsService
	ExportService *service.ExportService
}

func NewTestController(testService *service.TestService, statsService *service.StatisticsService, exportService *service.ExportService) *TestController {
	return &TestController{
		TestService:   testService,
		StatsService:  statsService,
		ExportService: exportService,
	}
}

// CreateTest godoc
// @Summary 创建测验
// @Description 课程讲师或管理员创建测验，默认未发布；返回全部校验失败项
// @Tags 测验
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.CreateTestReq true "测验内容"
// @Success 201 {object} util.Response{data=model.Test}
// @Failure 400 {object} util.Response{data=util.ValidationError}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response "课程不存在"
// @Router /tests [post]
func (c *TestController) CreateTest(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req service.CreateTestReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	test, err := c.TestService.CreateTest(ctx.Request.Context(), claims.UserID, claims.Role, req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, test)
}

// GetTest godoc
// @Summary 测验详情（含答案）
// @Tags 测验
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "测验ID"
// @Success 200 {object} util.Response{data=model.Test}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /tests/{id} [get]
func (c *TestController) GetTest(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	test, err := c.TestService.GetTestForInstructor(ctx.Request.Context(), claims.UserID, claims.Role, ctx.Param("id"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, test)
}

// ListCourseTests godoc
// @Summary 课程下的测验
// @Description 学生只能看到已发布且启用的测验，列表不含题目
// @Tags 测验
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response{data=[]model.Test}
// @Router /courses/{id}/tests [get]
func (c *TestController) ListCourseTests(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courseID, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}

	tests, err := c.TestService.ListCourseTests(ctx.Request.Context(), claims.UserID, claims.Role, courseID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, tests)
}

// UpdateTest godoc
// @Summary 修改测验
// @Description 已有答题记录的测验不可修改
// @Tags 测验
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "测验ID"
// @Param   body body service.UpdateTestReq true "修改内容"
// @Success 200 {object} util.Response{data=model.Test}
// @Failure 400 {object} util.Response{data=util.ValidationError}
// @Failure 409 {object} util.Response "已锁定"
// @Router /tests/{id} [put]
func (c *TestController) UpdateTest(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req service.UpdateTestReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	test, err := c.TestService.UpdateTest(ctx.Request.Context(), claims.UserID, claims.Role, ctx.Param("id"), req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, test)
}

// PublishTest godoc
// @Summary 发布测验
// @Tags 测验
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "测验ID"
// @Success 200 {object} util.Response{data=model.Test}
// @Router /tests/{id}/publish [post]
func (c *TestController) PublishTest(ctx *gin.Context) {
	active := true
	c.setPublished(ctx, service.PublishReq{Published: true, Active: &active})
}

// UnpublishTest godoc
// @Summary 取消发布
// @Tags 测验
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "测验ID"
// @Success 200 {object} util.Response{data=model.Test}
// @Router /tests/{id}/unpublish [post]
func (c *TestController) UnpublishTest(ctx *gin.Context) {
	c.setPublished(ctx, service.PublishReq{Published: false})
}

func (c *TestController) setPublished(ctx *gin.Context, req service.PublishReq) {
	claims := util.GetUserFromContext(ctx)
	test, err := c.TestService.SetPublished(ctx.Request.Context(), claims.UserID, claims.Role, ctx.Param("id"), req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, test)
}

// DeleteTest godoc
// @Summary 删除测验
// @Tags 测验
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "测验ID"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response "已有答题记录"
// @Router /tests/{id} [delete]
func (c *TestController) DeleteTest(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if err := c.TestService.DeleteTest(ctx.Request.Context(), claims.UserID, claims.Role, ctx.Param("id")); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// GetStatistics godoc
// @Summary 测验统计
// @Tags 测验
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "测验ID"
// @Success 200 {object} util.Response{data=service.StatisticsReport}
// @Router /tests/{id}/statistics [get]
func (c *TestController) GetStatistics(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	test, err := c.TestService.GetTestForInstructor(ctx.Request.Context(), claims.UserID, claims.Role, ctx.Param("id"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	report, err := c.StatsService.Report(ctx.Request.Context(), test)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, report)
}

// RecomputeStatistics godoc
// @Summary 重新计算测验统计
// @Tags 测验
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "测验ID"
// @Success 200 {object} util.Response{data=model.TestStatistics}
// @Router /tests/{id}/statistics/recompute [post]
func (c *TestController) RecomputeStatistics(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id := ctx.Param("id")
	if _, err := c.TestService.GetTestForInstructor(ctx.Request.Context(), claims.UserID, claims.Role, id); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	stats, err := c.StatsService.Recompute(ctx.Request.Context(), id)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// ExportAttempts godoc
// @Summary 导出成绩 CSV
// @Tags 测验
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "测验ID"
// @Success 200 {object} util.Response{data=service.ExportResult}
// @Failure 503 {object} util.Response "存储不可用"
// @Router /tests/{id}/export [post]
func (c *TestController) ExportAttempts(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	result, err := c.ExportService.ExportAttempts(ctx.Request.Context(), ctx.Param("id"), claims.UserID, claims.Role)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
