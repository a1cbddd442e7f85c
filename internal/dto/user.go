package dto

// ── 用户模块 DTO ──

// CreateUserRequest 管理员创建用户请求
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=30"`
	Email    string `json:"email"    binding:"required,email"`
	Name     string `json:"name"     binding:"required,min=2,max=50"`
	Password string `json:"password" binding:"required,min=8,max=64"`
	Role     string `json:"role"     binding:"required,oneof=admin staff student"`
}

// UpdateUserRequest 更新用户请求
// 管理员可改角色；本人只能改 name / email / password
type UpdateUserRequest struct {
	Email    *string `json:"email"    binding:"omitempty,email"`
	Name     *string `json:"name"     binding:"omitempty,min=2,max=50"`
	Password *string `json:"password" binding:"omitempty,min=8,max=64"`
	Role     *string `json:"role"     binding:"omitempty,oneof=admin staff student"`
}

// UserListRequest 用户列表查询参数
type UserListRequest struct {
	PaginationRequest
	Role string `form:"role" binding:"omitempty,oneof=admin staff student"`
}

// UserResponse 用户信息响应（脱敏）
type UserResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}
