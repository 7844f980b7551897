package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword 生成 bcrypt 摘要（默认 cost）。
func HashPassword(plain string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// CheckPassword 校验明文口令与摘要是否匹配。
func CheckPassword(digest, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
