package utils

import "testing"

func TestPasswordHashAndVerify(t *testing.T) {
	hash, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("加密失败: %v", err)
	}
	if hash == "secret123" {
		t.Fatalf("哈希不应等于明文")
	}

	if !VerifyPassword(hash, "secret123") {
		t.Fatalf("正确密码应校验通过")
	}
	if VerifyPassword(hash, "wrong-password") {
		t.Fatalf("错误密码不应校验通过")
	}
}

func TestHashPasswordSalted(t *testing.T) {
	a, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("加密失败: %v", err)
	}
	b, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("加密失败: %v", err)
	}
	if a == b {
		t.Fatalf("相同明文的两次哈希应因盐不同而不同")
	}
}
