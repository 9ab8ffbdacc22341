package controller

import (
	"errors"
	"net/http"

	"risk_assessment_backend/internal/model"
	"risk_assessment_backend/internal/service"
	"risk_assessment_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// UserController 管理员的用户管理与统计接口
type UserController struct {
	UserService *service.UserService
	Statistics  *service.StatisticsService
}

func NewUserController(userService *service.UserService, stats *service.StatisticsService) *UserController {
	return &UserController{
		UserService: userService,
		Statistics:  stats,
	}
}

// CreateUser godoc
// @Summary 创建系统用户
// @Description 管理员创建心理师或管理员账号
// @Tags 用户管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.CreateUserRequest true "用户信息"
// @Success 201 {object} util.Response{data=model.User}
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 409 {object} util.Response "邮箱已被注册"
// @Router /admin/users [post]
func (c *UserController) CreateUser(ctx *gin.Context) {
	var req service.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.Create(ctx.Request.Context(), req)
	if err != nil {
		if errors.Is(err, util.ErrEmailRegistered) {
			util.Error(ctx, http.StatusConflict, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, user)
}

// GetUsers godoc
// @Summary 获取用户列表
// @Tags 用户管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   page query int false "页码" default(1)
// @Param   limit query int false "每页条数" default(10)
// @Param   role query string false "角色筛选" Enums(psychologist, admin)
// @Success 200 {object} util.Response{data=util.PageResponse{list=[]model.User}} "成功"
// @Failure 400 {object} util.Response
// @Router /admin/users [get]
func (c *UserController) GetUsers(ctx *gin.Context) {
	page, limit := util.Pagination(ctx)

	role := model.UserRole(ctx.Query("role"))
	if role != "" && !role.Valid() {
		util.BadRequest(ctx, "invalid role")
		return
	}

	users, total, err := c.UserService.List(ctx.Request.Context(), page, limit, role)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  users,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// GetAdminStatistics godoc
// @Summary 管理员统计
// @Description totalUsers 为启用的系统用户与启用的学生之和
// @Tags 用户管理
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.AdminStatistics}
// @Router /statistics/admin [get]
func (c *UserController) GetAdminStatistics(ctx *gin.Context) {
	stats, err := c.Statistics.AdminStatistics(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}
