package controller

import (
	"edu_testing_backend/internal/service"
	"edu_testing_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AttemptController struct {
	AttemptService *service.AttemptService
}

func NewAttemptController(attemptService *service.AttemptService) *AttemptController {
	return &AttemptController{AttemptService: attemptService}
}

// StartAttempt godoc
// @Summary 开始答题
// @Description 返回新的答题记录以及不含答案的题目视图
// @Tags 答题
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "测验ID"
// @Success 201 {object} util.Response{data=service.StartResult}
// @Failure 403 {object} util.Response "未选课"
// @Failure 404 {object} util.Response "测验不存在"
// @Failure 409 {object} util.Response "未开放 / 次数已满 / 已有进行中的答题"
// @Router /tests/{id}/attempts [post]
func (c *AttemptController) StartAttempt(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	result, err := c.AttemptService.StartAttempt(ctx.Request.Context(), claims.UserID, ctx.Param("id"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, result)
}

// GetAttempts godoc
// @Summary 答题记录列表
// @Description 学生只返回自己的记录，讲师与管理员返回全部
// @Tags 答题
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "测验ID"
// @Success 200 {object} util.Response{data=[]service.AttemptSummary}
// @Failure 403 {object} util.Response
// @Router /tests/{id}/attempts [get]
func (c *AttemptController) GetAttempts(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	attempts, err := c.AttemptService.GetAttempts(ctx.Request.Context(), ctx.Param("id"), claims.UserID, claims.Role)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, attempts)
}

// SubmitAnswer godoc
// @Summary 提交答案
// @Description 同一题目重复提交会覆盖原答案
// @Tags 答题
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "答题记录ID"
// @Param   body body service.SubmitAnswerReq true "答案"
// @Success 200 {object} util.Response{data=service.AnswerResult}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response "答题已结束"
// @Router /attempts/{id}/answers [post]
func (c *AttemptController) SubmitAnswer(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req service.SubmitAnswerReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.AttemptService.SubmitAnswer(ctx.Request.Context(), ctx.Param("id"), claims.UserID, req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// FinishAttempt godoc
// @Summary 交卷
// @Tags 答题
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "答题记录ID"
// @Success 200 {object} util.Response{data=service.AttemptSummary}
// @Failure 403 {object} util.Response
// @Failure 409 {object} util.Response "答题不在进行中"
// @Router /attempts/{id}/finish [post]
func (c *AttemptController) FinishAttempt(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	summary, err := c.AttemptService.FinishAttempt(ctx.Request.Context(), ctx.Param("id"), claims.UserID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}

// AbandonAttempt godoc
// @Summary 放弃答题
// @Tags 答题
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "答题记录ID"
// @Success 200 {object} util.Response{data=service.AttemptSummary}
// @Router /attempts/{id}/abandon [post]
func (c *AttemptController) AbandonAttempt(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	summary, err := c.AttemptService.AbandonAttempt(ctx.Request.Context(), ctx.Param("id"), claims.UserID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}

// GetAttempt godoc
// @Summary 答题详情
// @Description 是否展示对错、标准答案与解析取决于测验设置
// @Tags 答题
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "答题记录ID"
// @Success 200 {object} util.Response{data=service.AttemptDetail}
// @Router /attempts/{id} [get]
func (c *AttemptController) GetAttempt(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	detail, err := c.AttemptService.GetAttempt(ctx.Request.Context(), ctx.Param("id"), claims.UserID, claims.Role)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}
