package controller

import (
	"errors"
	"net/http"

	"risk_assessment_backend/internal/service"
	"risk_assessment_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type StudentController struct {
	Service *service.StudentService
}

func NewStudentController(s *service.StudentService) *StudentController {
	return &StudentController{Service: s}
}

// CreateStudent godoc
// @Summary 登记学生
// @Tags 学生
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.CreateStudentRequest true "学生信息"
// @Success 201 {object} util.Response{data=model.Student}
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req service.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	student, err := c.Service.Create(ctx.Request.Context(), req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, student)
}

// ListStudents godoc
// @Summary 学生列表
// @Tags 学生
// @Produce  json
// @Security ApiKeyAuth
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Param search query string false "姓名或邮箱"
// @Success 200 {object} util.Response{data=util.PageResponse{list=[]model.Student}}
// @Router /students [get]
func (c *StudentController) ListStudents(ctx *gin.Context) {
	page, limit := util.Pagination(ctx)

	students, total, err := c.Service.List(ctx.Request.Context(), page, limit, ctx.Query("search"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  students,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// GetStudent godoc
// @Summary 学生详情
// @Tags 学生
// @Produce  json
// @Security ApiKeyAuth
// @Param id path int true "学生ID"
// @Success 200 {object} util.Response{data=model.Student}
// @Failure 404 {object} util.Response
// @Router /students/{id} [get]
func (c *StudentController) GetStudent(ctx *gin.Context) {
	id, ok := util.ParseIDParam(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid id")
		return
	}

	student, err := c.Service.Get(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			util.Error(ctx, http.StatusNotFound, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, student)
}
