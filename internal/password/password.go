// Package password はパスワードのハッシュ化と検証を提供します。
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hash は平文パスワードを bcrypt でハッシュ化します。
// ソルトは呼び出しごとに新しく生成されるため、同じ入力でも出力は毎回異なります。
func Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify は平文パスワードをハッシュと照合します。
// 不一致は false を返すだけでエラーにはしません。比較は bcrypt 内部で定数時間です。
func Verify(plain, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
