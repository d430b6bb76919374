package utils

import (
	"testing"

	"CheerioGo/config"
)

func TestTokenRoundTrip(t *testing.T) {
	InitJWT(config.Config{JWTSecret: "test-secret"})

	token, err := GenerateToken("user-123")
	if err != nil {
		t.Fatalf("生成令牌失败: %v", err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("解析令牌失败: %v", err)
	}
	if claims.UserID != "user-123" {
		t.Fatalf("UserID 不匹配: %q", claims.UserID)
	}

	// 请求头里带 Bearer 前缀也能解析
	claims, err = ParseToken("Bearer " + token)
	if err != nil {
		t.Fatalf("带前缀解析失败: %v", err)
	}
	if claims.UserID != "user-123" {
		t.Fatalf("带前缀时 UserID 不匹配: %q", claims.UserID)
	}
}

func TestParseTokenRejectsTampered(t *testing.T) {
	InitJWT(config.Config{JWTSecret: "test-secret"})

	token, err := GenerateToken("user-123")
	if err != nil {
		t.Fatalf("生成令牌失败: %v", err)
	}

	if _, err := ParseToken(token + "x"); err == nil {
		t.Fatalf("篡改过的令牌应解析失败")
	}

	// 换了密钥之后旧令牌失效
	InitJWT(config.Config{JWTSecret: "another-secret"})
	if _, err := ParseToken(token); err == nil {
		t.Fatalf("密钥不匹配的令牌应解析失败")
	}
}
