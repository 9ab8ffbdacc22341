package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"risk_assessment_backend/internal/engine"
	"risk_assessment_backend/internal/repository"
	"risk_assessment_backend/internal/service"
	"risk_assessment_backend/internal/util"
	"risk_assessment_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AssessmentController struct {
	Service    *service.AssessmentService
	Reports    *service.ReportService
	Statistics *service.StatisticsService
}

func NewAssessmentController(s *service.AssessmentService, reports *service.ReportService, stats *service.StatisticsService) *AssessmentController {
	return &AssessmentController{Service: s, Reports: reports, Statistics: stats}
}

// respondError 校验错误 400，未找到 404，其余（含不变量破坏）500
func respondError(ctx *gin.Context, err error) {
	var verrs engine.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		util.ValidationFailed(ctx, "Datos de evaluación inválidos", verrs)
	case errors.Is(err, util.ErrNotFound):
		util.Error(ctx, http.StatusNotFound, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// CreateAssessment godoc
// @Summary 创建自杀风险评估
// @Description 按条件规则校验问卷、计算风险等级并保存。客户端提交的 riskLevel 会被忽略
// @Tags 风险评估
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.CreateAssessmentRequest true "评估内容"
// @Success 201 {object} util.Response{data=service.AssessmentRecord}
// @Failure 400 {object} util.Response{errors=[]engine.ValidationError} "字段校验失败"
// @Failure 404 {object} util.Response "学生不存在"
// @Failure 500 {object} util.Response "服务器内部错误"
// @Router /suicide-assessments [post]
func (c *AssessmentController) CreateAssessment(ctx *gin.Context) {
	var req service.CreateAssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	rec, err := c.Service.Create(ctx.Request.Context(), claims.UserID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, rec)
}

// ListAssessments godoc
// @Summary 评估列表
// @Tags 风险评估
// @Produce  json
// @Security ApiKeyAuth
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Param studentId query int false "学生ID"
// @Param psychologistId query int false "心理师ID"
// @Param riskLevel query string false "风险等级" Enums(BAJO, MODERADO-BAJO, MODERADO, ALTO, MUY_ALTO, EXTREMO)
// @Success 200 {object} util.Response{data=util.PageResponse{list=[]service.AssessmentRecord}}
// @Failure 400 {object} util.Response
// @Router /suicide-assessments [get]
func (c *AssessmentController) ListAssessments(ctx *gin.Context) {
	page, limit := util.Pagination(ctx)
	filter := repository.AssessmentFilter{
		RiskLevel: ctx.Query("riskLevel"),
		Page:      page,
		Limit:     limit,
	}

	var err error
	if filter.StudentID, err = optionalUint(ctx, "studentId"); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if filter.PsychologistID, err = optionalUint(ctx, "psychologistId"); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	list, total, err := c.Service.List(ctx.Request.Context(), filter)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  list,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// GetAssessment godoc
// @Summary 评估详情
// @Description 风险等级在读取时由记录内容重新推导
// @Tags 风险评估
// @Produce  json
// @Security ApiKeyAuth
// @Param id path int true "评估ID"
// @Success 200 {object} util.Response{data=service.AssessmentRecord}
// @Failure 404 {object} util.Response
// @Router /suicide-assessments/{id} [get]
func (c *AssessmentController) GetAssessment(ctx *gin.Context) {
	id, ok := util.ParseIDParam(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid id")
		return
	}

	rec, err := c.Service.Get(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, rec)
}

// GetReport godoc
// @Summary 导出评估报告
// @Description format=xlsx（默认）返回 Excel 工作簿，format=json 返回报告段落
// @Tags 风险评估
// @Produce  json
// @Produce  application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security ApiKeyAuth
// @Param id path int true "评估ID"
// @Param format query string false "报告格式" Enums(xlsx, json) default(xlsx)
// @Success 200 {object} util.Response{data=service.AssessmentReport}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /suicide-assessments/{id}/report [get]
func (c *AssessmentController) GetReport(ctx *gin.Context) {
	id, ok := util.ParseIDParam(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid id")
		return
	}

	format := ctx.DefaultQuery("format", util.ReportFormatXLSX)
	if format != util.ReportFormatXLSX && format != util.ReportFormatJSON {
		util.BadRequest(ctx, fmt.Sprintf("unsupported report format %q", format))
		return
	}

	report, err := c.Service.Report(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	if format == util.ReportFormatJSON {
		util.Success(ctx, service.AssessmentReport{
			Record:   report.Record,
			Sections: c.Reports.SectionsOnly(report),
		})
		return
	}

	buf, err := c.Reports.RenderWorkbook(report)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	url, err := c.Reports.ArchiveWorkbook(ctx.Request.Context(), report, buf.Bytes())
	if err != nil {
		// 归档失败不影响下载
		logger.Log.Error("report archive failed", zap.Uint("assessment_id", id), zap.Error(err))
	} else if url != "" {
		ctx.Header("X-Report-Archive", url)
	}

	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, c.Reports.Filename(report)))
	ctx.Data(http.StatusOK, util.MimeXLSX, buf.Bytes())
}

// GetStatistics godoc
// @Summary 评估统计
// @Description 总数、各风险等级数量、各分支数量、最近30天数量
// @Tags 风险评估
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.AssessmentStatistics}
// @Router /suicide-assessments/statistics [get]
func (c *AssessmentController) GetStatistics(ctx *gin.Context) {
	stats, err := c.Statistics.AssessmentStatistics(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

func optionalUint(ctx *gin.Context, name string) (uint, error) {
	raw := ctx.Query(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return uint(v), nil
}
