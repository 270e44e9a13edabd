package usecase

import "time"

// タイムスタンプは境界をエポックミリ秒の整数で渡す（日時オブジェクトは出さない）
func millis(t time.Time) int64 {
	return t.UnixMilli()
}

func millisPtr(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	v := t.UnixMilli()
	return &v
}
