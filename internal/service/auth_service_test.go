package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Bryan490125/Smart-Parking/config"
	"github.com/Bryan490125/Smart-Parking/internal/dto"
	"github.com/Bryan490125/Smart-Parking/internal/model"
	"github.com/Bryan490125/Smart-Parking/internal/repository"
	"github.com/Bryan490125/Smart-Parking/pkg/jwt"
)

// ── 测试辅助 ──

func testAuthConfig() *config.Config {
	return &config.Config{
		Database: config.DatabaseConfig{Timezone: "UTC"},
		Auth: config.AuthConfig{
			JWTSecret:               "test-secret-key-for-unit-tests",
			AccessTokenTTL:          15 * time.Minute,
			RefreshTokenTTLDefault:  7 * 24 * time.Hour,
			RefreshTokenTTLRemember: 30 * 24 * time.Hour,
		},
	}
}

func setupTestAuthService() (AuthService, *mockUserRepo, *jwt.Manager) {
	userRepo := newMockUserRepo()
	slotRepo := newMockSlotRepo()
	repo := &repository.Repository{
		User: userRepo,
		Zone: newMockZoneRepo(slotRepo),
		Slot: slotRepo,
	}
	cfg := testAuthConfig()
	jwtMgr := jwt.NewManager(&cfg.Auth)
	svc := NewAuthService(cfg, repo, jwtMgr, nil, zap.NewNop())
	return svc, userRepo, jwtMgr
}

func seedCredentialedUser(userRepo *mockUserRepo, id, email, password, role string) {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	userRepo.users[id] = &model.User{
		UserID:       id,
		Username:     "user_" + id,
		Email:        email,
		Name:         "测试用户",
		PasswordHash: string(hash),
		Role:         role,
	}
}

// ── Login 测试 ──

func TestAuthService_Login_Success(t *testing.T) {
	svc, userRepo, _ := setupTestAuthService()
	seedCredentialedUser(userRepo, "stu-001", "stu@campus.edu", "password123", model.RoleStudent)

	result, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "stu@campus.edu",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Error("应返回 Token 对")
	}
	if result.User.ID != "stu-001" {
		t.Errorf("期望User.ID=stu-001，实际=%s", result.User.ID)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, userRepo, _ := setupTestAuthService()
	seedCredentialedUser(userRepo, "stu-001", "stu@campus.edu", "password123", model.RoleStudent)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "stu@campus.edu",
		Password: "wrongpassword",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc, _, _ := setupTestAuthService()

	// 账号不存在与密码错误返回同一错误，不泄露账号存在性
	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@campus.edu",
		Password: "password123",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

// ── Register 测试 ──

func TestAuthService_Register_Success(t *testing.T) {
	svc, userRepo, _ := setupTestAuthService()

	result, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username: "zhangsan",
		Email:    "zhangsan@campus.edu",
		Name:     "张三",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Register 应成功: %v", err)
	}
	// 自助注册角色固定为 student
	if result.Role != model.RoleStudent {
		t.Errorf("期望Role=student，实际=%s", result.Role)
	}

	stored, err := userRepo.GetByUsername(context.Background(), "zhangsan")
	if err != nil {
		t.Fatalf("注册后应能查到用户: %v", err)
	}
	if stored.PasswordHash == "password123" {
		t.Error("密码不应明文存储")
	}
}

func TestAuthService_Register_UsernameExists(t *testing.T) {
	svc, userRepo, _ := setupTestAuthService()
	seedCredentialedUser(userRepo, "stu-001", "stu@campus.edu", "password123", model.RoleStudent)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username: "user_stu-001",
		Email:    "new@campus.edu",
		Name:     "新用户",
		Password: "password123",
	})
	if !errors.Is(err, ErrUsernameExists) {
		t.Errorf("期望 ErrUsernameExists，实际: %v", err)
	}
}

func TestAuthService_Register_EmailExists(t *testing.T) {
	svc, userRepo, _ := setupTestAuthService()
	seedCredentialedUser(userRepo, "stu-001", "stu@campus.edu", "password123", model.RoleStudent)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username: "newuser",
		Email:    "stu@campus.edu",
		Name:     "新用户",
		Password: "password123",
	})
	if !errors.Is(err, ErrEmailExists) {
		t.Errorf("期望 ErrEmailExists，实际: %v", err)
	}
}

// ── RefreshToken 测试 ──

func TestAuthService_RefreshToken_Success(t *testing.T) {
	svc, userRepo, jwtMgr := setupTestAuthService()
	seedCredentialedUser(userRepo, "stu-001", "stu@campus.edu", "password123", model.RoleStudent)

	refreshToken, err := jwtMgr.GenerateRefreshToken("stu-001", model.RoleStudent, false)
	if err != nil {
		t.Fatalf("生成 refresh token 失败: %v", err)
	}

	result, err := svc.RefreshToken(context.Background(), refreshToken)
	if err != nil {
		t.Fatalf("RefreshToken 应成功: %v", err)
	}
	if result.AccessToken == "" {
		t.Error("应返回新的 AccessToken")
	}
}

func TestAuthService_RefreshToken_AccessTokenRejected(t *testing.T) {
	svc, userRepo, jwtMgr := setupTestAuthService()
	seedCredentialedUser(userRepo, "stu-001", "stu@campus.edu", "password123", model.RoleStudent)

	// access token 不能用于刷新
	accessToken, err := jwtMgr.GenerateAccessToken("stu-001", model.RoleStudent)
	if err != nil {
		t.Fatalf("生成 access token 失败: %v", err)
	}

	_, err = svc.RefreshToken(context.Background(), accessToken)
	if !errors.Is(err, ErrRefreshInvalid) {
		t.Errorf("期望 ErrRefreshInvalid，实际: %v", err)
	}
}

func TestAuthService_RefreshToken_Garbage(t *testing.T) {
	svc, _, _ := setupTestAuthService()

	_, err := svc.RefreshToken(context.Background(), "not-a-jwt")
	if !errors.Is(err, ErrRefreshInvalid) {
		t.Errorf("期望 ErrRefreshInvalid，实际: %v", err)
	}
}

// ── Logout 测试 ──

func TestAuthService_Logout_NilRedisDegrades(t *testing.T) {
	svc, _, _ := setupTestAuthService()

	// Redis 不可用时登出降级为无操作
	if err := svc.Logout(context.Background(), "some-jti", time.Now().Add(time.Hour)); err != nil {
		t.Errorf("Redis 缺失时 Logout 应降级成功: %v", err)
	}
}

// ── GetCurrentUser 测试 ──

func TestAuthService_GetCurrentUser_Success(t *testing.T) {
	svc, userRepo, _ := setupTestAuthService()
	seedCredentialedUser(userRepo, "stu-001", "stu@campus.edu", "password123", model.RoleStudent)

	result, err := svc.GetCurrentUser(context.Background(), "stu-001")
	if err != nil {
		t.Fatalf("GetCurrentUser 应成功: %v", err)
	}
	if result.Email != "stu@campus.edu" {
		t.Errorf("期望Email=stu@campus.edu，实际=%s", result.Email)
	}
}

func TestAuthService_GetCurrentUser_NotFound(t *testing.T) {
	svc, _, _ := setupTestAuthService()

	_, err := svc.GetCurrentUser(context.Background(), "nonexistent")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
}

// ── ChangePassword 测试 ──

func TestAuthService_ChangePassword_Success(t *testing.T) {
	svc, userRepo, _ := setupTestAuthService()
	seedCredentialedUser(userRepo, "stu-001", "stu@campus.edu", "oldpassword", model.RoleStudent)

	err := svc.ChangePassword(context.Background(), "stu-001", &dto.ChangePasswordRequest{
		OldPassword: "oldpassword",
		NewPassword: "newpassword1",
	})
	if err != nil {
		t.Fatalf("ChangePassword 应成功: %v", err)
	}

	// 新密码生效
	if _, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "stu@campus.edu",
		Password: "newpassword1",
	}); err != nil {
		t.Errorf("改密后新密码应能登录: %v", err)
	}
}

func TestAuthService_ChangePassword_WrongOldPassword(t *testing.T) {
	svc, userRepo, _ := setupTestAuthService()
	seedCredentialedUser(userRepo, "stu-001", "stu@campus.edu", "oldpassword", model.RoleStudent)

	err := svc.ChangePassword(context.Background(), "stu-001", &dto.ChangePasswordRequest{
		OldPassword: "wrongold",
		NewPassword: "newpassword1",
	})
	if !errors.Is(err, ErrOldPasswordWrong) {
		t.Errorf("期望 ErrOldPasswordWrong，实际: %v", err)
	}
}
